package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestox/gestox/internal/platform/action"
	"github.com/gestox/gestox/internal/platform/servercall"
)

type Handler struct {
	svc      *Service
	loginURL string
}

func NewHandler(svc *Service, loginURL string) *Handler {
	return &Handler{svc: svc, loginURL: loginURL}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c echo.Context) error {
	var creds Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.svc.Login(c.Request().Context(), creds)
	if !res.Success {
		return c.JSON(http.StatusUnauthorized, res)
	}

	setSessionCookie(c, servercall.AuthTokenCookie, res.Data.Token)
	setSessionCookie(c, servercall.ClientIDCookie, res.Data.ClientID)
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Logout(c echo.Context) error {
	h.svc.Logout(c.Request().Context())
	for _, name := range []string{servercall.AuthTokenCookie, servercall.ClientIDCookie} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"redirect": h.loginURL,
	})
}

func (h *Handler) Me(c echo.Context) error {
	res := h.svc.Me(c.Request().Context())
	if action.Expired(res.Code) {
		return servercall.ExpireSession(c, h.loginURL)
	}
	return c.JSON(http.StatusOK, res)
}

func setSessionCookie(c echo.Context, name, value string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
