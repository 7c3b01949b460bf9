package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripplanner/internal/export"
	"github.com/dharmasatrya/tripplanner/internal/filter"
	"github.com/dharmasatrya/tripplanner/internal/models"
)

type Planner interface {
	Plan(ctx context.Context, req models.PlanRequest) (*models.Plan, error)
}

type PlanRepository interface {
	Load(id string) (*models.Plan, error)
	List() ([]models.PlanSummary, error)
	Delete(id string) error
}

type PlanHandler struct {
	planner Planner
	plans   PlanRepository
}

func NewPlanHandler(p Planner, plans PlanRepository) *PlanHandler {
	return &PlanHandler{
		planner: p,
		plans:   plans,
	}
}

func (h *PlanHandler) Create(c echo.Context) error {
	var req models.PlanRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	plan, err := h.planner.Plan(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) List(c echo.Context) error {
	filters, err := parsePlanFilters(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", err.Error())
	}

	summaries, err := h.plans.List()
	if err != nil {
		return respondError(c, err)
	}

	sortBy, sortOrder := filter.Normalize(c.QueryParam("sort_by"), c.QueryParam("sort_order"))
	filtered := filter.Apply(summaries, filters, sortBy, sortOrder)

	return c.JSON(http.StatusOK, models.PlanListResponse{
		Metadata: models.PlanListMetadata{
			TotalResults: len(filtered),
			SortBy:       sortBy,
			SortOrder:    sortOrder,
		},
		Plans: filtered,
	})
}

func (h *PlanHandler) Get(c echo.Context) error {
	plan, err := h.plans.Load(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Delete(c echo.Context) error {
	if err := h.plans.Delete(c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Download serves a saved plan as Markdown (default) or PDF.
func (h *PlanHandler) Download(c echo.Context) error {
	plan, err := h.plans.Load(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	year := planYear(plan)

	switch c.QueryParam("format") {
	case "", "md", "markdown":
		c.Response().Header().Set(echo.HeaderContentDisposition,
			`attachment; filename="`+export.MarkdownFilename(plan.Request.Destination, year)+`"`)
		return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(plan.Markdown))
	case "pdf":
		data, err := export.PDF(plan)
		if err != nil {
			return respondError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			`attachment; filename="`+export.PDFFilename(plan.Request.Destination, year)+`"`)
		return c.Blob(http.StatusOK, "application/pdf", data)
	default:
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "format must be md or pdf")
	}
}

// planYear is the travel year when a start date was given, otherwise the
// year the plan was created.
func planYear(plan *models.Plan) int {
	if t, err := time.Parse(models.DateLayout, plan.Request.StartDate); err == nil {
		return t.Year()
	}
	return plan.CreatedAt.Year()
}

func parsePlanFilters(c echo.Context) (*models.PlanFilters, error) {
	f := &models.PlanFilters{
		Destination: c.QueryParam("destination"),
		Currency:    c.QueryParam("currency"),
	}

	var err error
	if f.MinTotalCost, err = optionalFloat(c, "min_total_cost"); err != nil {
		return nil, err
	}
	if f.MaxTotalCost, err = optionalFloat(c, "max_total_cost"); err != nil {
		return nil, err
	}
	if f.MinDuration, err = optionalInt(c, "min_duration"); err != nil {
		return nil, err
	}
	if f.MaxDuration, err = optionalInt(c, "max_duration"); err != nil {
		return nil, err
	}
	return f, nil
}

func optionalFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &queryError{name: name, value: raw}
	}
	return &v, nil
}

func optionalInt(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &queryError{name: name, value: raw}
	}
	return &v, nil
}

type queryError struct {
	name  string
	value string
}

func (e *queryError) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for " + e.name
}
