package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/domain/repositories"
)

// exemptPrefixes lists the paths reachable without the login flag.
var exemptPrefixes = []string{
	"/api/auth/",
	"/health",
}

// AuthMiddleware is the route guard. Every API route except authentication
// and health requires the stored login flag; unauthenticated requests get a
// 401 with a redirect hint to the login page.
func AuthMiddleware(sessions repositories.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			loggedIn, err := sessions.IsLoggedIn(r.Context())
			if err != nil {
				log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to read login flag")
			}

			if !loggedIn {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error":    "authentication required",
					"redirect": "/login",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isExempt(path string) bool {
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
