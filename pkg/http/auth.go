package httpx

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// Authorizer is the access-control gate consulted before any request
// reaches the core. It only answers allow/deny; how identities are
// managed is not this package's concern.
type Authorizer interface {
	Authorize(token string) bool
}

// StaticTokenAuthorizer allows requests carrying one configured bearer
// token. An empty configured token allows everything, which is only
// sensible on a trusted network.
type StaticTokenAuthorizer struct {
	Token string
}

// Authorize implements Authorizer.
func (a *StaticTokenAuthorizer) Authorize(token string) bool {
	if a.Token == "" {
		return true
	}

	return subtle.ConstantTimeCompare([]byte(a.Token), []byte(token)) == 1
}

// AuthMiddleware gates every request behind the Authorizer. The token
// is taken from the Authorization header, or from a token query
// parameter for websocket clients that cannot set headers.
func AuthMiddleware(auth Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Authorize(requestToken(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)

				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "auth.invalid",
					"message": "Invalid or missing token",
				})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requestToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return r.URL.Query().Get("token")
}
