package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

// Middleware creates authentication middleware around the given codec.
// Each request moves through: no token -> token present -> decoded ->
// authenticated; any failure terminates the request with 401. On success the
// request context carries the authenticated Identity and nothing else - no
// store access happens here.
func Middleware(codec *Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerToken(r)
			if err != nil {
				writeAuthError(w, err.Error())
				return
			}

			claims, err := codec.Decode(tokenString)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
				writeAuthError(w, "invalid authentication token")
				return
			}

			identity := Identity{
				UserID: claims.UserID,
				Role:   claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin rejects authenticated requests whose identity lacks the
// admin role. Must be mounted inside Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || !identity.IsAdmin() {
			writeAuthError(w, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// BearerToken extracts the token from an Authorization: Bearer header.
// A missing header is domain.ErrNoToken; a present but unusable header is
// domain.ErrInvalidToken.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", domain.ErrNoToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrInvalidToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrInvalidToken
	}
	return token, nil
}

// writeAuthError writes a minimal JSON 401 response.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
