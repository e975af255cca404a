package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// identityEcho records the identity the middleware injected.
func identityEcho(got *Identity, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if identity, ok := IdentityFromContext(r.Context()); ok {
			*got = identity
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_ValidToken(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)
	token, err := codec.Issue(42, RoleUser)
	require.NoError(t, err)

	var got Identity
	var called bool
	handler := Middleware(codec)(identityEcho(&got, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
	require.Equal(t, int64(42), got.UserID)
	require.Equal(t, RoleUser, got.Role)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	var got Identity
	var called bool
	handler := Middleware(codec)(identityEcho(&got, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
	require.JSONEq(t, `{"error":"missing authentication token"}`, rec.Body.String())
}

func TestMiddleware_BadHeader(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "garbage"} {
		var called bool
		var got Identity
		handler := Middleware(codec)(identityEcho(&got, &called))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		require.False(t, called, "header %q", header)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	expired := NewCodec(testSecret, -time.Minute)
	token, err := expired.Issue(1, RoleUser)
	require.NoError(t, err)

	var got Identity
	var called bool
	handler := Middleware(NewCodec(testSecret, time.Hour))(identityEcho(&got, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		identity   *Identity
		wantStatus int
	}{
		{name: "admin passes", identity: &Identity{UserID: 0, Role: RoleAdmin}, wantStatus: http.StatusOK},
		{name: "user rejected", identity: &Identity{UserID: 5, Role: RoleUser}, wantStatus: http.StatusUnauthorized},
		{name: "no identity rejected", identity: nil, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), *tt.identity))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAdminCredentials_Verify(t *testing.T) {
	creds := AdminCredentials{Username: "admin", Password: "hunter2"}

	require.NoError(t, creds.Verify("admin", "hunter2"))
	require.Error(t, creds.Verify("admin", "wrong"))
	require.Error(t, creds.Verify("other", "hunter2"))
	require.Error(t, creds.Verify("", ""))

	disabled := AdminCredentials{}
	require.False(t, disabled.Enabled())
	require.Error(t, disabled.Verify("", ""))
}
