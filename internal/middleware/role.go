package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// RequireRole enforces that the authenticated user holds one of the
// given workflow roles.  It assumes JWTAuth already stored the "role"
// claim in the context; a missing or disallowed role yields 403.
func RequireRole(roles ...workflow.Role) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
