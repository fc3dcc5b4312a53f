package middleware

import (
	"net/http"
	"strings"

	"taskboard/internal/repository"
	"taskboard/internal/utils"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the per-request authentication gate. It runs on every
// route, public ones included: a missing or invalid token simply leaves the
// request anonymous and lets the policy decide whether that is acceptable.
//
// On a valid token the subject is re-resolved against the user store so the
// principal carries the role as it is now, not as it was when the token was
// signed. A role revoked mid-token-lifetime takes effect on the next request;
// a deleted user stops authenticating immediately.
type AuthMiddleware struct {
	JWT   *utils.JWTManager
	Users repository.UserRepository
}

func (m AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractBearerToken(c.Request())
		if token == "" || m.JWT == nil || m.Users == nil {
			return next(c)
		}

		claims, err := m.JWT.Parse(token)
		if err != nil {
			return next(c)
		}

		user, err := m.Users.FindByEmail(c.Request().Context(), claims.Email)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if user == nil {
			return next(c)
		}

		SetPrincipal(c, Principal{Email: user.Email, Role: user.Role})
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
