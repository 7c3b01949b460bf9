package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

type CostEstimator interface {
	EstimateCosts(ctx context.Context, req models.TripRequest) (*models.CostEstimateResponse, error)
	Currency(destination string) (string, string)
}

type CostHandler struct {
	estimator CostEstimator
}

func NewCostHandler(e CostEstimator) *CostHandler {
	return &CostHandler{estimator: e}
}

// Estimate prices a trip and shows it in the local currency next to USD.
func (h *CostHandler) Estimate(c echo.Context) error {
	var req models.TripRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	resp, err := h.estimator.EstimateCosts(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CostHandler) ResolveCurrency(c echo.Context) error {
	destination := strings.TrimSpace(c.QueryParam("destination"))
	if destination == "" {
		return respondError(c, models.ErrMissingDestination)
	}

	code, symbol := h.estimator.Currency(destination)
	return c.JSON(http.StatusOK, models.CurrencyResponse{
		Destination: destination,
		Code:        code,
		Symbol:      symbol,
	})
}
