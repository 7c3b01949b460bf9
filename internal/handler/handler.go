package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/planner"
	"github.com/dharmasatrya/tripplanner/internal/storage"
)

func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    status,
	})
}

func bindError(c echo.Context, err error) error {
	return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request: "+err.Error())
}

// respondError maps domain errors to HTTP responses. Unknown errors are
// logged and answered with a generic 500.
func respondError(c echo.Context, err error) error {
	var validationErr models.ValidationError
	var genErr *planner.GenerationError

	switch {
	case errors.As(err, &validationErr):
		return errorJSON(c, http.StatusBadRequest, "validation_error", validationErr.Error())
	case errors.As(err, &genErr):
		return errorJSON(c, http.StatusBadGateway, "generation_error", genErr.Message())
	case errors.Is(err, storage.ErrInvalidPlanID):
		return errorJSON(c, http.StatusBadRequest, "invalid_plan_id", "Plan id must look like 20060102_150405.")
	case errors.Is(err, storage.ErrPlanNotFound):
		return errorJSON(c, http.StatusNotFound, "not_found", "Plan not found.")
	}

	log.Printf("%s %s failed: %v", c.Request().Method, c.Path(), err)
	return errorJSON(c, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again.")
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
