package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// RBAC restricts a route to the listed roles. It reads the role claim set by
// the Auth middleware, so it must run after it. Privileged operations that
// cannot trust the token claim (user deletion) skip this middleware and
// re-resolve the role from the store instead.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" || !slices.Contains(roles, role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}
