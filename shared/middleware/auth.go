package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	jwt_internal "github.com/flvvius/hackathon-sisc-2025/shared/jwt"
	"github.com/flvvius/hackathon-sisc-2025/shared/utils"
)

// UserDirectory mirrors a verified identity into a local user record.
type UserDirectory interface {
	EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error)
}

// Key to store the user in the request context
type key int

const UserClaimsKey key = 0

const accessTokenCookie = "accessToken"

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService    jwt_internal.JwtService
	users         UserDirectory
	secureCookies bool
}

func NewAuth(jwtService jwt_internal.JwtService, users UserDirectory, secureCookies bool) *Auth {
	return &Auth{
		jwtService:    jwtService,
		users:         users,
		secureCookies: secureCookies,
	}
}

// NeedAuth rejects requests without a valid identity token and stores the
// ensured user in the request context.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			identity, err := a.jwtService.DecodeToken(tokenString)
			if err != nil {
				a.clearCookie(w)
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			user, err := a.users.EnsureUser(r.Context(), identity)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Cookie first (browser clients), then the Authorization header.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(accessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return ""
}

func (a *Auth) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     accessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetUserFromContext retrieves the user from the context
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// ActorId is the authenticated user's id, or a PermissionError when the
// request carries no user.
func ActorId(r *http.Request) (domain.UserId, error) {
	user := GetUserFromContext(r)
	if user == nil || user.Id == "" {
		return "", &internal_errors.PermissionError{Message: "Please sign-in", Unauthenticated: true}
	}
	return user.Id, nil
}
