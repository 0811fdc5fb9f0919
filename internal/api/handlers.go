package api

import (
	"encoding/json"
	"net/http"
	"time"

	"ground-experiment/groundlink/internal/auth"
	"ground-experiment/groundlink/internal/common"
	"ground-experiment/groundlink/internal/logging"
	"ground-experiment/groundlink/internal/models/dtos"
	gormModels "ground-experiment/groundlink/internal/models/gorm"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// GetAuthUser handles GET /api/auth/user. The row is upserted from the
// asserted identity on first sight, so a fresh login always resolves.
func (h *Handlers) GetAuthUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "", "Unauthorized")
			return
		}

		user, err := h.deps.Services.User.UpsertFromIdentity(r.Context(), claims.UserID(), claims.DisplayName(), nil)
		if err != nil {
			logging.Error("Failed to upsert authenticated user", "user_id", claims.UserID(), "error", err.Error())
			respondWithAppError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, user)
	}
}

// CreateSession handles POST /api/auth/session: the trusted hand-off point
// where the external auth collaborator exchanges an asserted identity for a
// signed session token
func (h *Handlers) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.CreateSessionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "", "Invalid request body")
			return
		}
		if req.UserID == "" {
			respondWithError(w, http.StatusBadRequest, "", "userId is required")
			return
		}

		user := &gormModels.User{
			ID:              req.UserID,
			DisplayName:     req.DisplayName,
			ProfileImageURL: req.ProfileImageURL,
		}
		if _, err := h.deps.Services.User.UpsertFromIdentity(r.Context(), user.ID, user.DisplayName, user.ProfileImageURL); err != nil {
			logging.Error("Failed to upsert user at session creation", "user_id", req.UserID, "error", err.Error())
			respondWithAppError(w, err)
			return
		}

		sessionID := ""
		if h.deps.Services.Session != nil {
			session, err := h.deps.Services.Session.CreateSession(r.Context(), req.UserID, req.DisplayName)
			if err != nil {
				logging.Error("Failed to create session", "user_id", req.UserID, "error", err.Error())
				respondWithError(w, http.StatusInternalServerError, "", "Failed to create session")
				return
			}
			sessionID = session.SessionID
		}

		token, err := h.deps.Services.Signer.SignSessionToken(req.UserID, req.DisplayName, sessionID, common.SessionTTL)
		if err != nil {
			logging.Error("Failed to sign session token", "user_id", req.UserID, "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "", "Failed to sign session token")
			return
		}

		resp := dtos.SessionResponse{
			Token:     token,
			SessionID: sessionID,
			ExpiresAt: time.Now().Add(common.SessionTTL),
		}
		respondWithSuccess(w, http.StatusCreated, &resp)
	}
}
