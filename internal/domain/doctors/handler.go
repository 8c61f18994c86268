package doctors

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestox/gestox/internal/platform/action"
	"github.com/gestox/gestox/internal/platform/servercall"
	"github.com/gestox/gestox/pkg/pagination"
)

type Handler struct {
	svc      *Service
	loginURL string
}

func NewHandler(svc *Service, loginURL string) *Handler {
	return &Handler{svc: svc, loginURL: loginURL}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.List)
	api.GET("/doctors/:id", h.Get)
	api.POST("/doctors", h.Create)
	api.PUT("/doctors/:id", h.Update)
	api.DELETE("/doctors/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	query := pagination.FromContext(c).Query()
	if st := c.QueryParam("status"); st != "" {
		query["status"] = string(ParseDisplay(DisplayStatus(st)))
	}
	if esp := c.QueryParam("especialidade"); esp != "" {
		query["specialty"] = esp
	}

	res := h.svc.List(c.Request().Context(), query)
	if action.Expired(res.Code) {
		return servercall.ExpireSession(c, h.loginURL)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c echo.Context) error {
	res := h.svc.Get(c.Request().Context(), c.Param("id"))
	if action.Expired(res.Code) {
		return servercall.ExpireSession(c, h.loginURL)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Create(c echo.Context) error {
	var v View
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res := h.svc.Create(c.Request().Context(), v)
	if action.Expired(res.Code) {
		return servercall.ExpireSession(c, h.loginURL)
	}
	if !res.Success {
		return c.JSON(http.StatusOK, res)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) Update(c echo.Context) error {
	var v View
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res := h.svc.Update(c.Request().Context(), c.Param("id"), v)
	if action.Expired(res.Code) {
		return servercall.ExpireSession(c, h.loginURL)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c echo.Context) error {
	res := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if action.Expired(res.Code) {
		return servercall.ExpireSession(c, h.loginURL)
	}
	return c.JSON(http.StatusOK, res)
}
