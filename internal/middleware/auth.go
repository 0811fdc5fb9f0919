package middleware

import (
	"net/http"
	"strings"

	"ground-experiment/groundlink/internal/auth"
	"ground-experiment/groundlink/internal/common"
)

// AuthMiddleware validates the session token on every request and places
// the recovered identity claims in the request context. The token carries
// the stable user id asserted by the external auth collaborator; it is
// trusted once the signature and the backing session check out.
func AuthMiddleware(signer *common.TokenSignerService, sessions *common.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. Missing session token", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			session, err := signer.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid session token", http.StatusUnauthorized)
				return
			}

			// Tokens minted against a server-side session must still have
			// that session live; dev tokens carry no session id.
			if sessions != nil && session.SessionID != "" {
				if _, err := sessions.GetSession(r.Context(), session.SessionID); err != nil {
					http.Error(w, "Unauthorized. Session expired", http.StatusUnauthorized)
					return
				}
			}

			claims := &auth.SessionClaims{
				UserUUID:         session.UserID,
				DisplayNameValue: session.DisplayName,
				SessionID:        session.SessionID,
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
