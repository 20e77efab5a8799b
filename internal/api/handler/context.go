package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

// ctxIdentity extracts the caller injected by the Auth middleware. An empty
// account id or role means the middleware did not run; reject with 401.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	id := ports.Identity{
		AccountID: ctxString(c, "account_id"),
		Email:     ctxString(c, "email"),
		Name:      ctxString(c, "name"),
		Role:      domain.Role(ctxString(c, "role")),
	}
	if id.AccountID == "" || id.Role == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

func ctxString(c echo.Context, key string) string {
	s, _ := c.Get(key).(string)
	return s
}

// queryInt parses a positive integer query parameter, falling back to def.
func queryInt(c echo.Context, name string, def int) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// bind decodes the request body and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
