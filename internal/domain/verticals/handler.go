package verticals

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestox/gestox/internal/platform/servercall"
	"github.com/gestox/gestox/internal/platform/tenant"
)

// Handler serves the vertical catalog. Detection is pure local work, no
// backend round trip is involved.
type Handler struct {
	defaultClientID string
}

func NewHandler(defaultClientID string) *Handler {
	return &Handler{defaultClientID: defaultClientID}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/verticals", h.List)
	api.GET("/verticals/current", h.Current)
}

func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    All(),
	})
}

// Current resolves the caller's vertical from its tenant scope.
func (h *Handler) Current(c echo.Context) error {
	clientID := h.defaultClientID
	if cfg := tenant.FromContext(c.Request().Context()); cfg != nil && cfg.ClientID != "" {
		clientID = cfg.ClientID
	} else if cfg := servercall.TenantFromRequest(c, h.defaultClientID); cfg.ClientID != "" {
		clientID = cfg.ClientID
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    Detect(clientID),
	})
}
