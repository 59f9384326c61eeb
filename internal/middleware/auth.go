// Package middleware provides the HTTP middleware chain: caller resolution,
// request logging, and request metrics.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// participantKey is the context key for the resolved caller.
const participantKey contextKey = "participant"

// AccessCookie is the cookie carrying the participant credential.
const AccessCookie = "tab_access_token"

// Caller extracts the resolved participant from the context.
// Returns nil if the request was not authenticated.
func Caller(ctx context.Context) *models.Participant {
	p, _ := ctx.Value(participantKey).(*models.Participant)
	return p
}

// WithCaller returns a context carrying the given participant. Exposed for
// handler tests.
func WithCaller(ctx context.Context, p *models.Participant) context.Context {
	return context.WithValue(ctx, participantKey, p)
}

// RequireAuth resolves the request credential — Authorization bearer token
// first, session cookie second — into a participant and stores it in the
// request context. Requests with no resolvable credential get a 401.
func RequireAuth(resolver session.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := bearerToken(r)
			if credential == "" {
				if cookie, err := r.Cookie(AccessCookie); err == nil {
					credential = cookie.Value
				}
			}

			p, err := resolver.ResolveParticipant(r.Context(), credential)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), p)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
