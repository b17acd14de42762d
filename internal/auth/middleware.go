package auth

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// Authenticator is the HTTP middleware gating every resource route. It
// extracts the bearer token, resolves it to a Principal and stores the
// Principal in the request context.
type Authenticator struct {
	resolver *Resolver
}

func NewAuthenticator(resolver *Resolver) *Authenticator {
	return &Authenticator{resolver: resolver}
}

func (a *Authenticator) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken := r.Header.Get("Authorization")
		if !strings.HasPrefix(accessToken, bearerPrefix) {
			http.Error(w, "No token provided", http.StatusUnauthorized)
			return
		}

		principal, err := a.resolver.Resolve(r.Context(), strings.TrimPrefix(accessToken, bearerPrefix))
		if err != nil {
			http.Error(w, "authentication failed", http.StatusUnauthorized)
			return
		}

		ctx := NewPrincipalContext(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
