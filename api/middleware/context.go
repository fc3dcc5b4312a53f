package middleware

import (
	"taskboard/internal/entity"

	"github.com/labstack/echo/v4"
)

const contextPrincipalKey = "auth_principal"

// Principal is the authenticated identity for one request. It lives in the
// echo request context only, so concurrent requests never see each other's.
type Principal struct {
	Email string
	Role  entity.Role
}

func SetPrincipal(c echo.Context, p Principal) {
	c.Set(contextPrincipalKey, p)
}

func PrincipalFromContext(c echo.Context) (Principal, bool) {
	value := c.Get(contextPrincipalKey)
	principal, ok := value.(Principal)
	return principal, ok
}
