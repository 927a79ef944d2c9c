package pricing

import (
	"net/http"

	"storefront-delivery/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler exposes the admin configuration screen's backend: read, update and
// reload the per-service-line fee settings.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/admin/settings/:service", h.GetSettings)
	g.PUT("/admin/settings/:service", h.UpdateSettings)
	g.POST("/admin/settings/reload", h.ReloadSettings)
}

func (h *Handler) GetSettings(c echo.Context) error {
	service := c.Param("service")

	cfg, err := h.svc.Config(c.Request().Context(), service)
	if err != nil {
		if err == models.ErrUnknownServiceLine {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "unknown service line"})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to load settings"})
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateSettings(c echo.Context) error {
	service := c.Param("service")

	var cfg models.FeeConfig
	if err := c.Bind(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(cfg); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "validation failed: " + err.Error()})
	}

	updated, err := h.svc.UpdateConfig(c.Request().Context(), service, cfg)
	if err != nil {
		if err == models.ErrUnknownServiceLine {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "unknown service line"})
		}
		c.Logger().Error("Handler.UpdateSettings: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to update settings"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) ReloadSettings(c echo.Context) error {
	if err := h.svc.Reload(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to reload settings"})
	}
	return c.NoContent(http.StatusNoContent)
}
