package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

// RBAC rejects requests whose actor role is not in allowedRoles. It relies
// on Auth having stored the role in the context, so it must be registered
// after it.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
