package middleware

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/gestox/gestox/internal/platform/servercall"
	"github.com/gestox/gestox/internal/platform/tenant"
)

var clientIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Tenant resolves the request's tenant scope (session cookies, then the
// x-client-id header, then the default tenant) and stores it in the request
// context so every downstream backend call carries the right headers.
func Tenant(defaultClientID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cfg := servercall.TenantFromRequest(c, defaultClientID)

			if !clientIDPattern.MatchString(cfg.ClientID) {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid client identifier")
			}

			ctx := tenant.NewContext(c.Request().Context(), cfg)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("client_id", cfg.ClientID)

			return next(c)
		}
	}
}
