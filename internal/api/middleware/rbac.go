package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// RBAC admits the request only when the role injected by Auth is one of
// roles. Other callers get domain.ErrForbidden, rendered as 403 by the
// central error handler.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := domain.Role(ctxRole(c))
			for _, r := range roles {
				if r == role {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}

func ctxRole(c echo.Context) string {
	s, _ := c.Get("role").(string)
	return s
}
