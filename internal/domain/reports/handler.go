package reports

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestox/gestox/internal/domain/verticals"
	"github.com/gestox/gestox/internal/platform/servercall"
	"github.com/gestox/gestox/internal/platform/tenant"
)

type Handler struct {
	svc             *Service
	defaultClientID string
}

func NewHandler(svc *Service, defaultClientID string) *Handler {
	return &Handler{svc: svc, defaultClientID: defaultClientID}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/reports/summary", h.Summary)
}

func (h *Handler) Summary(c echo.Context) error {
	clientID := h.defaultClientID
	if cfg := tenant.FromContext(c.Request().Context()); cfg != nil && cfg.ClientID != "" {
		clientID = cfg.ClientID
	} else if cfg := servercall.TenantFromRequest(c, h.defaultClientID); cfg.ClientID != "" {
		clientID = cfg.ClientID
	}

	summary := h.svc.Summarize(c, verticals.Detect(clientID))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    summary,
	})
}
