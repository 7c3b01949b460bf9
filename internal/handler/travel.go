package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripplanner/internal/checklist"
	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/places"
)

type PlaceFinder interface {
	Geocode(ctx context.Context, place string) (models.Coordinates, error)
	Nearby(ctx context.Context, coords models.Coordinates, radius int) ([]models.Place, error)
}

type FeedbackRecorder interface {
	Append(fb models.FeedbackRequest) (string, error)
}

type TravelHandler struct {
	places   PlaceFinder
	feedback FeedbackRecorder
}

func NewTravelHandler(p PlaceFinder, fb FeedbackRecorder) *TravelHandler {
	return &TravelHandler{
		places:   p,
		feedback: fb,
	}
}

func (h *TravelHandler) Checklist(c echo.Context) error {
	var req models.ChecklistRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	var season checklist.Season
	if strings.TrimSpace(req.Season) != "" {
		s, ok := checklist.ParseSeason(req.Season)
		if !ok {
			return respondError(c, models.ErrInvalidSeason)
		}
		season = s
	} else if req.StartDate != "" {
		start, _ := time.Parse(models.DateLayout, req.StartDate)
		season = checklist.SeasonOf(start)
	}

	return c.JSON(http.StatusOK, models.ChecklistResponse{
		Destination: strings.TrimSpace(req.Destination),
		Duration:    req.Duration,
		Season:      string(season),
		Categories:  checklist.Generate(req.Destination, req.Duration, req.Activities, season),
	})
}

func (h *TravelHandler) Nearby(c echo.Context) error {
	ctx := c.Request().Context()
	place := strings.TrimSpace(c.QueryParam("place"))
	if place == "" {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "place is required")
	}

	radius := places.DefaultRadius
	if raw := c.QueryParam("radius"); raw != "" {
		r, err := strconv.Atoi(raw)
		if err != nil || r <= 0 || r > places.MaxRadius {
			return errorJSON(c, http.StatusBadRequest, "invalid_request", places.ErrInvalidRadius.Error())
		}
		radius = r
	}

	coords, err := h.places.Geocode(ctx, place)
	switch {
	case errors.Is(err, places.ErrPlaceNotFound):
		return errorJSON(c, http.StatusNotFound, "not_found", "Could not find coordinates for "+place+".")
	case err != nil:
		log.Printf("Geocoding %q failed: %v", place, err)
		return errorJSON(c, http.StatusBadGateway, "upstream_error", "Map service is unavailable. Please try again later.")
	}

	found, err := h.places.Nearby(ctx, coords, radius)
	if err != nil {
		log.Printf("Nearby search around %q failed: %v", place, err)
		return errorJSON(c, http.StatusBadGateway, "upstream_error", "Map service is unavailable. Please try again later.")
	}

	return c.JSON(http.StatusOK, models.NearbyResponse{
		Place:       place,
		Coordinates: coords,
		Radius:      radius,
		Places:      found,
	})
}

func (h *TravelHandler) Feedback(c echo.Context) error {
	var req models.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	ts, err := h.feedback.Append(req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, models.FeedbackResponse{
		Saved:     true,
		Timestamp: ts,
	})
}
