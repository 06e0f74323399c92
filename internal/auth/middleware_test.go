package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobly/internal/auth"
)

type stubVerifier map[string]auth.Identity

func (s stubVerifier) Verify(token string) (auth.Identity, bool) {
	id, ok := s[token]
	return id, ok
}

var verifier = stubVerifier{
	"user-token":  {Username: "test"},
	"admin-token": {Username: "testadmin", IsAdmin: true},
}

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	var got auth.Identity
	var present bool
	h := auth.Authenticate(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, present = auth.FromContext(r.Context())
	}))

	t.Run("ViaHeader", func(t *testing.T) {
		serve(h, "Bearer user-token")
		assert.True(t, present)
		assert.Equal(t, auth.Identity{Username: "test"}, got)
	})

	t.Run("LowercaseScheme", func(t *testing.T) {
		serve(h, "bearer admin-token")
		assert.True(t, present)
		assert.True(t, got.IsAdmin)
	})

	t.Run("NoHeader", func(t *testing.T) {
		w := serve(h, "")
		assert.False(t, present)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		w := serve(h, "Bearer bad")
		assert.False(t, present)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("WrongScheme", func(t *testing.T) {
		serve(h, "Basic user-token")
		assert.False(t, present)
	})
}

func TestRequireLogin(t *testing.T) {
	h := auth.Authenticate(verifier)(auth.RequireLogin(ok))

	assert.Equal(t, http.StatusOK, serve(h, "Bearer user-token").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer bad").Code)
}

func TestRequireLogin_EmptyIdentity(t *testing.T) {
	h := auth.Authenticate(stubVerifier{"empty": {}})(auth.RequireLogin(ok))
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer empty").Code)
}

func TestRequireAdmin(t *testing.T) {
	h := auth.Authenticate(verifier)(auth.RequireAdmin(ok))

	assert.Equal(t, http.StatusOK, serve(h, "Bearer admin-token").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer user-token").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
}

func TestRequireUserOrAdmin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{username}", auth.RequireUserOrAdmin("username", ok))
	h := auth.Authenticate(verifier)(mux)

	get := func(path, token string) int {
		req := httptest.NewRequest("GET", path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("/users/test", "admin-token"))
	assert.Equal(t, http.StatusOK, get("/users/test", "user-token"))
	assert.Equal(t, http.StatusUnauthorized, get("/users/anothertest", "user-token"))
	assert.Equal(t, http.StatusUnauthorized, get("/users/test", ""))
}
