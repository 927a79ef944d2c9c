package coverage

import (
	"net/http"

	"storefront-delivery/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

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
	g.POST("/coverage/check", h.CheckCoverage)
}

// CheckCoverage always answers 200: "outside the area" and "address not
// found" are soft validation outcomes the storefront renders inline, never
// errors.
func (h *Handler) CheckCoverage(c echo.Context) error {
	var req models.CoverageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "validation failed: " + err.Error()})
	}

	result := h.svc.Check(c.Request().Context(), req)
	return c.JSON(http.StatusOK, result)
}
