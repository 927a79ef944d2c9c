package quotes

import (
	"errors"
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
	g.POST("/quotes", h.CreateQuote)
}

// CreateQuote prices a delivery. An address that will not geocode is a soft
// validation failure (422), so the storefront can ask the customer to
// re-enter it; routing failures never surface here because the distance
// estimator falls back internally.
func (h *Handler) CreateQuote(c echo.Context) error {
	var req models.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "validation failed: " + err.Error()})
	}

	quote, err := h.svc.Quote(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAddressNotFound):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: "could not find address"})
		case errors.Is(err, models.ErrInvalidCoordinate),
			errors.Is(err, models.ErrMissingLocation),
			errors.Is(err, models.ErrUnknownServiceLine):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.CreateQuote: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to compute quote"})
	}

	return c.JSON(http.StatusOK, quote)
}
