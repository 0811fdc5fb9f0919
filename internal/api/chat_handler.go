package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ground-experiment/groundlink/internal/apperrors"
	"ground-experiment/groundlink/internal/auth"
	"ground-experiment/groundlink/internal/models/dtos"
)

// ListMessages handles GET /api/requests/{id}/messages
func (h *Handlers) ListMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := chi.URLParam(r, "id")

		msgs, err := h.deps.Services.Chat.ListMessages(r.Context(), requestID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &msgs)
	}
}

// PostMessage handles POST /api/requests/{id}/messages
func (h *Handlers) PostMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "", "Unauthorized")
			return
		}

		requestID := chi.URLParam(r, "id")

		var body dtos.PostMessageReq
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, apperrors.CodeValidation, "Invalid request body")
			return
		}

		msg, err := h.deps.Services.Chat.PostMessage(r.Context(), requestID, claims.UserID(), body.Message)
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		h.deps.Metrics.ChatMessagesTotal.Inc()
		respondWithSuccess(w, http.StatusCreated, msg)
	}
}
