package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ground-experiment/groundlink/internal/apperrors"
	"ground-experiment/groundlink/internal/auth"
	"ground-experiment/groundlink/internal/constants"
	"ground-experiment/groundlink/internal/models/dtos"
)

// ListRequests handles GET /api/requests?airport=&role=
func (h *Handlers) ListRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "", "Unauthorized")
			return
		}

		airport := r.URL.Query().Get("airport")
		role := constants.RequestRole(r.URL.Query().Get("role"))
		if role != constants.RolePilot && role != constants.RoleCrew {
			role = ""
		}

		reqs, err := h.deps.Services.Request.ListRequests(r.Context(), claims.UserID(), airport, role)
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &reqs)
	}
}

// ListOpenRequests handles GET /api/requests/open?airport=
func (h *Handlers) ListOpenRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqs, err := h.deps.Services.Request.ListOpenRequests(r.Context(), r.URL.Query().Get("airport"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &reqs)
	}
}

// CreateRequest handles POST /api/requests
func (h *Handlers) CreateRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "", "Unauthorized")
			return
		}

		var body dtos.CreateServiceRequestReq
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, apperrors.CodeValidation, "Invalid request body")
			return
		}

		req, err := h.deps.Services.Request.CreateRequest(r.Context(), claims.UserID(), &body)
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		h.deps.Metrics.RequestsCreatedTotal.WithLabelValues(req.ServiceType.String()).Inc()
		respondWithSuccess(w, http.StatusCreated, req)
	}
}

// ClaimRequest handles POST /api/requests/{id}/claim
func (h *Handlers) ClaimRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "", "Unauthorized")
			return
		}

		requestID := chi.URLParam(r, "id")

		req, err := h.deps.Services.Request.ClaimRequest(r.Context(), requestID, claims.UserID())
		if err != nil {
			switch apperrors.CodeOf(err) {
			case apperrors.CodeClaimConflict:
				h.deps.Metrics.ClaimsTotal.WithLabelValues("conflict").Inc()
			case apperrors.CodeNotFound:
				h.deps.Metrics.ClaimsTotal.WithLabelValues("not_found").Inc()
			}
			respondWithAppError(w, err)
			return
		}

		h.deps.Metrics.ClaimsTotal.WithLabelValues("won").Inc()
		respondWithSuccess(w, http.StatusOK, req)
	}
}

// UpdateRequestStatus handles POST /api/requests/{id}/status
func (h *Handlers) UpdateRequestStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "", "Unauthorized")
			return
		}

		requestID := chi.URLParam(r, "id")

		var body dtos.UpdateStatusReq
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, apperrors.CodeValidation, "Invalid request body")
			return
		}

		req, err := h.deps.Services.Request.UpdateStatus(
			r.Context(), requestID, claims.UserID(), constants.RequestStatus(body.Status))
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, req)
	}
}
