package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/entity"
	"taskboard/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	byEmail map[string]*entity.User
	err     error
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }

func (r *stubUserRepo) FindByID(context.Context, uint) (*entity.User, error) { return nil, nil }

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byEmail[email], nil
}

func (r *stubUserRepo) Update(context.Context, *entity.User) error { return nil }

func (r *stubUserRepo) List(context.Context) ([]entity.User, error) { return nil, nil }

func runGate(t *testing.T, gate AuthMiddleware, authorization string) (*httptest.ResponseRecorder, *Principal) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *Principal
	handler := gate.Authenticate(func(c echo.Context) error {
		if principal, ok := PrincipalFromContext(c); ok {
			seen = &principal
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestAuthenticate_ValidTokenSetsPrincipal(t *testing.T) {
	t.Parallel()

	manager := utils.JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	token, _, err := manager.Issue("alice@example.com", "USER")
	require.NoError(t, err)

	users := &stubUserRepo{byEmail: map[string]*entity.User{
		"alice@example.com": {Email: "alice@example.com", Role: entity.RoleUser},
	}}
	gate := AuthMiddleware{JWT: &manager, Users: users}

	rec, principal := runGate(t, gate, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "alice@example.com", principal.Email)
	assert.Equal(t, entity.RoleUser, principal.Role)
}

func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	t.Parallel()

	manager := utils.JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	gate := AuthMiddleware{JWT: &manager, Users: &stubUserRepo{}}

	tests := []struct {
		name          string
		authorization string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.token"},
		{"bare scheme", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, principal := runGate(t, gate, tt.authorization)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Nil(t, principal)
		})
	}
}

func TestAuthenticate_ExpiredTokenIsAnonymous(t *testing.T) {
	t.Parallel()

	manager := utils.JWTManager{Secret: []byte("test-secret"), TokenTTL: -time.Minute}
	token, _, err := manager.Issue("alice@example.com", "USER")
	require.NoError(t, err)

	gate := AuthMiddleware{JWT: &manager, Users: &stubUserRepo{byEmail: map[string]*entity.User{
		"alice@example.com": {Email: "alice@example.com", Role: entity.RoleUser},
	}}}

	rec, principal := runGate(t, gate, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, principal)
}

func TestAuthenticate_DeletedSubjectIsAnonymous(t *testing.T) {
	t.Parallel()

	manager := utils.JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	token, _, err := manager.Issue("gone@example.com", "USER")
	require.NoError(t, err)

	gate := AuthMiddleware{JWT: &manager, Users: &stubUserRepo{}}

	rec, principal := runGate(t, gate, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, principal)
}

func TestAuthenticate_RoleComesFromStoreNotToken(t *testing.T) {
	t.Parallel()

	manager := utils.JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	token, _, err := manager.Issue("bob@example.com", "MANAGER")
	require.NoError(t, err)

	// The account was demoted after the token was signed.
	gate := AuthMiddleware{JWT: &manager, Users: &stubUserRepo{byEmail: map[string]*entity.User{
		"bob@example.com": {Email: "bob@example.com", Role: entity.RoleUser},
	}}}

	_, principal := runGate(t, gate, "Bearer "+token)
	require.NotNil(t, principal)
	assert.Equal(t, entity.RoleUser, principal.Role)
}

func TestAuthenticate_StoreFailureIs500(t *testing.T) {
	t.Parallel()

	manager := utils.JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	token, _, err := manager.Issue("alice@example.com", "USER")
	require.NoError(t, err)

	gate := AuthMiddleware{JWT: &manager, Users: &stubUserRepo{err: errors.New("connection refused")}}

	rec, principal := runGate(t, gate, "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, principal)
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"case insensitive scheme", "bearer abc", "abc"},
		{"wrong scheme", "Token abc", ""},
		{"scheme only", "Bearer", ""},
		{"padded token", "Bearer   abc  ", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, extractBearerToken(req))
		})
	}
}
