package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/ratespot/ratespot/internal/auth"
	"github.com/ratespot/ratespot/internal/domain"
)

// tokenHeader carries the signed session token on every protected request.
const tokenHeader = "X-Auth-Token"

type contextKey string

const identityKey contextKey = "identity"

// identityFrom extracts the authenticated identity attached by authenticate.
func identityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}

// authenticate verifies the session token and attaches the decoded identity
// to the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get(tokenHeader))
		if token == "" {
			s.respondMsg(w, http.StatusUnauthorized, "No token, authorization denied.")
			return
		}

		identity, err := s.tokens.Verify(token)
		if err != nil {
			s.respondMsg(w, http.StatusUnauthorized, "Token is not valid.")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates admin routes. It runs after authenticate; a missing
// identity is reported as a role problem rather than treated as a bug.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFrom(r.Context())
		if !ok || identity.Role == "" {
			s.respondMsg(w, http.StatusForbidden, "Access denied. User role not found.")
			return
		}
		if identity.Role != domain.RoleSystemAdmin {
			s.respondMsg(w, http.StatusForbidden, "Access denied. Administrator privileges required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
