package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// AccountLookup loads an account by id.
type AccountLookup interface {
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

// CurrentRole replaces the role claim injected by Auth with the role stored
// for the account, so a demotion or deletion takes effect before the token
// expires. It must run after Auth and before RBAC.
func CurrentRole(accounts AccountLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get("account_id").(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			account, err := accounts.GetAccount(c.Request().Context(), id)
			if errors.Is(err, domain.ErrAccountNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
			}
			if err != nil {
				return err
			}

			c.Set("role", string(account.Role))
			return next(c)
		}
	}
}
