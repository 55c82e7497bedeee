package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	jwt_internal "github.com/flvvius/hackathon-sisc-2025/shared/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserDirectory struct {
	ensureUserFunc func(ctx context.Context, identity domain.Identity) (*domain.User, error)
	calls          int
}

func (m *mockUserDirectory) EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	m.calls++
	if m.ensureUserFunc != nil {
		return m.ensureUserFunc(ctx, identity)
	}
	return &domain.User{Id: identity.Id, Email: domain.StrPtr(identity.Email)}, nil
}

func TestNeedAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", "", time.Hour)
	identity := domain.Identity{Id: "user_1", Email: "test@example.com"}
	token, err := jwtService.NewToken(identity)
	require.NoError(t, err)
	expired, err := jwt_internal.New("test_secret", "", -time.Minute).NewToken(identity)
	require.NoError(t, err)

	tests := []struct {
		name           string
		cookie         *http.Cookie
		header         string
		directory      *mockUserDirectory
		expectedStatus int
		expectUser     bool
		cookieCleared  bool
	}{
		{
			name:           "Valid cookie",
			cookie:         &http.Cookie{Name: "accessToken", Value: token},
			directory:      &mockUserDirectory{},
			expectedStatus: http.StatusOK,
			expectUser:     true,
		},
		{
			name:           "Valid bearer header",
			header:         "Bearer " + token,
			directory:      &mockUserDirectory{},
			expectedStatus: http.StatusOK,
			expectUser:     true,
		},
		{
			name:           "No token",
			directory:      &mockUserDirectory{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token",
			cookie:         &http.Cookie{Name: "accessToken", Value: "invalid_token"},
			directory:      &mockUserDirectory{},
			expectedStatus: http.StatusUnauthorized,
			cookieCleared:  true,
		},
		{
			name:           "Expired token",
			header:         "Bearer " + expired,
			directory:      &mockUserDirectory{},
			expectedStatus: http.StatusUnauthorized,
			cookieCleared:  true,
		},
		{
			name:   "User directory failure",
			cookie: &http.Cookie{Name: "accessToken", Value: token},
			directory: &mockUserDirectory{ensureUserFunc: func(ctx context.Context, identity domain.Identity) (*domain.User, error) {
				return nil, &internal_errors.StoreError{Op: "ensure user", Err: errors.New("db down")}
			}},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler := NewAuth(jwtService, tt.directory, false).NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user := GetUserFromContext(r)
				require.NotNil(t, user, "Auth should always propagate user thru context")
				assert.Equal(t, identity.Id, user.Id)
				w.WriteHeader(http.StatusOK)
			}))
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, "handler returned wrong status code")
			if tt.expectUser {
				assert.Equal(t, 1, tt.directory.calls)
			}
			if tt.cookieCleared {
				var c *http.Cookie
				for _, rc := range rr.Result().Cookies() {
					if rc.Name == "accessToken" {
						c = rc
					}
				}
				require.NotNil(t, c)
				assert.Equal(t, -1, c.MaxAge)
			}
		})
	}
}

func TestGetUserFromContext(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		assert.Nil(t, GetUserFromContext(req))
		_, err := ActorId(req)
		e, ok := internal_errors.As[*internal_errors.PermissionError](err)
		require.True(t, ok)
		assert.True(t, e.Unauthenticated)
	})

	t.Run("user in context", func(t *testing.T) {
		user := &domain.User{Id: "user_1"}
		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserClaimsKey, user))

		assert.Equal(t, user, GetUserFromContext(req))
		id, err := ActorId(req)
		require.NoError(t, err)
		assert.Equal(t, "user_1", id)
	})
}
