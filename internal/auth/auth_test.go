package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/morphergyx/inquiry-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		AdminID:       "admin-001",
		AdminEmail:    "Admin@Morphergyx.com",
		AdminPassword: "correct horse",
		JWTSecret:     "test-secret",
		JWTIssuer:     "inquiry-api",
		JWTExpiry:     60,
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testAuthConfig())

	token, expiresAt, err := issuer.Issue(UserContext{AdminID: "admin-001", Email: "admin@morphergyx.com", Role: RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	user, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-001", user.AdminID)
	assert.Equal(t, "admin@morphergyx.com", user.Email)
	assert.Equal(t, RoleAdmin, user.Role)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer(testAuthConfig())
	token, _, err := issuer.Issue(UserContext{AdminID: "admin-001", Role: RoleAdmin})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.JWTSecret = "other"
		_, err := NewTokenIssuer(cfg).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.JWTIssuer = "someone-else"
		_, err := NewTokenIssuer(cfg).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenIssuer(testAuthConfig())
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAdminAccount_Authenticate(t *testing.T) {
	account := NewAdminAccount(testAuthConfig())

	user, ok := account.Authenticate(" admin@morphergyx.com ", "correct horse")
	require.True(t, ok)
	assert.Equal(t, "admin-001", user.AdminID)
	assert.Equal(t, RoleAdmin, user.Role)

	_, ok = account.Authenticate("admin@morphergyx.com", "wrong")
	assert.False(t, ok)
	_, ok = account.Authenticate("intruder@example.com", "correct horse")
	assert.False(t, ok)

	empty := NewAdminAccount(&config.AuthConfig{AdminID: "admin-001"})
	_, ok = empty.Authenticate("", "")
	assert.False(t, ok)
}

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer(testAuthConfig())
	m := NewMiddleware(issuer, zap.NewNop())
	token, _, err := issuer.Issue(UserContext{AdminID: "admin-001", Email: "admin@morphergyx.com", Role: RoleAdmin})
	require.NoError(t, err)

	var seen *UserContext
	protected := m.Authenticate(m.RequireRole(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/inquiries", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	require.NotNil(t, seen)
	assert.Equal(t, "admin-001", seen.AdminID)
}

func TestRequireRole_Forbidden(t *testing.T) {
	m := NewMiddleware(NewTokenIssuer(testAuthConfig()), zap.NewNop())
	h := m.RequireRole(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserContext(req.Context(), &UserContext{AdminID: "x", Role: "viewer"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthenticate(t *testing.T) {
	issuer := NewTokenIssuer(testAuthConfig())
	m := NewMiddleware(issuer, zap.NewNop())
	token, _, err := issuer.Issue(UserContext{AdminID: "admin-001", Role: RoleAdmin})
	require.NoError(t, err)

	var actor *string
	h := m.OptionalAuthenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = ActorID(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, actor)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, actor)
	assert.Equal(t, "admin-001", *actor)
}
