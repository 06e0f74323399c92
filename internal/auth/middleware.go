package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"jobly/internal/apperr"
	"jobly/internal/respond"
)

type ctxKey int

const identityKey ctxKey = 0

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the authenticated identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.Username == "" {
		return Identity{}, false
	}
	return id, true
}

// Authenticate stores the identity of a valid "Authorization: Bearer" token in the
// request context. Requests without a valid token continue anonymously.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if id, ok := v.Verify(token); ok {
				r = r.WithContext(WithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireLogin admits any authenticated identity. No current route needs it; it is kept for
// the users resource alongside RequireUserOrAdmin.
func RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			respond.Error(r.Context(), w, fmt.Errorf("%w: login required", apperr.ErrUnauthorized))
			return
		}
		next(w, r)
	}
}

func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok || !id.IsAdmin {
			respond.Error(r.Context(), w, fmt.Errorf("%w: admin required", apperr.ErrUnauthorized))
			return
		}
		next(w, r)
	}
}

// RequireUserOrAdmin admits admins and the user named by the path parameter param.
func RequireUserOrAdmin(param string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok || (!id.IsAdmin && id.Username != r.PathValue(param)) {
			respond.Error(r.Context(), w, fmt.Errorf("%w: admin or matching user required", apperr.ErrUnauthorized))
			return
		}
		next(w, r)
	}
}
