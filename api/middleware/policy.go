package middleware

import (
	"net/http"
	"strings"

	"taskboard/internal/entity"

	"github.com/labstack/echo/v4"
)

// Rule binds an HTTP verb and a path pattern to the role set allowed through.
// Patterns are segment-wise: "*" matches exactly one segment, a trailing "**"
// matches any remainder. Method "*" matches every verb.
//
// Public short-circuits everything; a nil role set means any authenticated
// principal. Role checks are exact-match: a rule listing MANAGER does not
// admit ADMIN unless ADMIN is listed too.
type Rule struct {
	Method  string
	Pattern string
	Roles   []entity.Role
	Public  bool
}

// Policy evaluates its rules in order and the first match wins, so the table
// must be ordered most-specific-first. An unauthenticated request hitting a
// non-public rule gets 401; an authenticated one with the wrong role gets 403.
type Policy struct {
	Rules []Rule
}

func (p Policy) Enforce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule, ok := p.match(c.Request().Method, c.Request().URL.Path)
			if !ok {
				// Unlisted routes still require authentication.
				rule = Rule{}
			}
			if rule.Public {
				return next(c)
			}

			principal, authenticated := PrincipalFromContext(c)
			if !authenticated {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if len(rule.Roles) == 0 {
				return next(c)
			}
			for _, role := range rule.Roles {
				if principal.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}

func (p Policy) match(method string, path string) (Rule, bool) {
	for _, rule := range p.Rules {
		if rule.Method != "*" && !strings.EqualFold(rule.Method, method) {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule, true
		}
	}
	return Rule{}, false
}

func matchPattern(pattern string, path string) bool {
	patternParts := splitPath(pattern)
	pathParts := splitPath(path)

	for i, part := range patternParts {
		if part == "**" {
			return true
		}
		if i >= len(pathParts) {
			return false
		}
		if part != "*" && part != pathParts[i] {
			return false
		}
	}
	return len(patternParts) == len(pathParts)
}

func splitPath(value string) []string {
	trimmed := strings.Trim(value, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
