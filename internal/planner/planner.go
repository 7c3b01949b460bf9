package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/dharmasatrya/tripplanner/internal/costs"
	"github.com/dharmasatrya/tripplanner/internal/llm"
	"github.com/dharmasatrya/tripplanner/internal/markdown"
	"github.com/dharmasatrya/tripplanner/internal/metrics"
	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/report"
	"github.com/dharmasatrya/tripplanner/internal/search"
	"github.com/dharmasatrya/tripplanner/internal/weather"
	"github.com/dharmasatrya/tripplanner/pkg/currency"
)

const (
	DefaultGatherTimeout = 20 * time.Second

	SearchUnavailable = "Limited information available due to search error."
)

type Searcher interface {
	Destination(ctx context.Context, destination string) ([]search.Result, error)
}

type Forecaster interface {
	Forecast(ctx context.Context, city string, days int) (*models.Forecast, error)
}

type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Store interface {
	Save(plan *models.Plan) (string, error)
}

type Config struct {
	GatherTimeout time.Duration
}

type Planner struct {
	resolver  *currency.Resolver
	estimator *costs.Estimator
	presenter *report.Presenter
	searcher  Searcher
	weather   Forecaster
	generator Generator
	store     Store
	config    Config
	now       func() time.Time
}

func NewPlanner(
	resolver *currency.Resolver,
	estimator *costs.Estimator,
	presenter *report.Presenter,
	searcher Searcher,
	forecaster Forecaster,
	generator Generator,
	store Store,
	config Config,
) *Planner {
	if config.GatherTimeout <= 0 {
		config.GatherTimeout = DefaultGatherTimeout
	}
	return &Planner{
		resolver:  resolver,
		estimator: estimator,
		presenter: presenter,
		searcher:  searcher,
		weather:   forecaster,
		generator: generator,
		store:     store,
		config:    config,
		now:       time.Now,
	}
}

// GenerationError wraps a failure of the text-generation step. The trip
// request itself was valid; the caller may retry.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "plan generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Message is the user-facing explanation of the failure.
func (e *GenerationError) Message() string {
	switch {
	case errors.Is(e.Err, llm.ErrInvalidKey), errors.Is(e.Err, llm.ErrMissingAPIKey):
		return "Invalid OpenAI API key. Please check your configuration."
	case errors.Is(e.Err, llm.ErrRateLimited):
		return "OpenAI API rate limit exceeded. Please try again later."
	case errors.Is(e.Err, llm.ErrPlanTooShort):
		return "Generated plan is too short or empty. Please try again."
	case errors.Is(e.Err, llm.ErrEmptyResponse):
		return "No response generated from OpenAI."
	default:
		return "Error generating plan. Please try again."
	}
}

// Currency returns the local currency code and symbol for a destination.
func (p *Planner) Currency(destination string) (string, string) {
	code := p.resolver.Resolve(destination)
	return code, currency.Symbol(code)
}

// EstimateCosts validates req and returns the USD estimate with its
// two-currency breakdown. It never calls the text-generation service.
func (p *Planner) EstimateCosts(ctx context.Context, req models.TripRequest) (*models.CostEstimateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code, symbol := p.Currency(req.Destination)
	est, err := p.estimator.Estimate(req.Origin, req.Destination, req.Duration, req.Budget)
	if err != nil {
		return nil, err
	}
	breakdown := p.presenter.Present(ctx, est, code)

	return &models.CostEstimateResponse{
		Request:  req,
		Currency: code,
		Symbol:   symbol,
		Estimate: est,
		Costs:    breakdown,
		Warnings: breakdown.Warnings,
	}, nil
}

type gathered struct {
	research string
	forecast *models.Forecast
	warnings []string
}

// Plan runs the full pipeline. Validation errors are returned as
// models.ValidationError, text-generation failures as *GenerationError.
// Every other collaborator failure degrades to a warning on the plan.
func (p *Planner) Plan(ctx context.Context, req models.PlanRequest) (*models.Plan, error) {
	if err := req.Validate(); err != nil {
		metrics.PlanFinished("invalid")
		return nil, err
	}

	now := p.now()
	code, symbol := p.Currency(req.Destination)

	g := p.gather(ctx, req)

	est, err := p.estimator.Estimate(req.Origin, req.Destination, req.Duration, req.Budget)
	if err != nil {
		metrics.PlanFinished("invalid")
		return nil, err
	}
	breakdown := p.presenter.Present(ctx, est, code)

	research := g.research + weather.Section(g.forecast) + breakdown.Markdown()

	prompt := llm.PlanPrompt{
		Destination:  req.Destination,
		Duration:     req.Duration,
		Year:         now.Year(),
		Interests:    req.Interests,
		Pace:         req.Pace,
		Budget:       string(req.Budget),
		StartDate:    req.StartDate,
		CurrencyCode: code,
		Research:     research,
	}
	text, err := p.generator.Complete(ctx, prompt.String())
	if err != nil {
		metrics.PlanFinished("generation_failed")
		return nil, &GenerationError{Err: err}
	}

	plan := &models.Plan{
		CreatedAt:      now,
		Request:        req,
		Currency:       code,
		CurrencySymbol: symbol,
		Estimate:       est,
		Costs:          breakdown,
		Weather:        g.forecast,
		Markdown:       markdown.Clean(text),
	}

	warnings := append(g.warnings, breakdown.Warnings...)

	if p.store != nil {
		if _, err := p.store.Save(plan); err != nil {
			log.Printf("Failed to save plan for %s: %v", req.Destination, err)
			warnings = append(warnings, "The plan could not be saved; download it now to keep a copy.")
		}
	}

	plan.Warnings = uniqueStrings(warnings)
	metrics.PlanFinished("ok")
	return plan, nil
}

// gather fetches destination research and the forecast concurrently. Both
// are optional; failures become warnings.
func (p *Planner) gather(ctx context.Context, req models.PlanRequest) gathered {
	gatherCtx, cancel := context.WithTimeout(ctx, p.config.GatherTimeout)
	defer cancel()

	type sourceResult struct {
		source   string
		results  []search.Result
		forecast *models.Forecast
		err      error
	}

	resultCh := make(chan sourceResult, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if p.searcher == nil {
			resultCh <- sourceResult{source: "search", err: errors.New("search not configured")}
			return
		}
		results, err := p.searcher.Destination(gatherCtx, req.Destination)
		resultCh <- sourceResult{source: "search", results: results, err: err}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if p.weather == nil {
			resultCh <- sourceResult{source: "weather", err: errors.New("weather not configured")}
			return
		}
		days := req.Duration
		if days > weather.MaxDays {
			days = weather.MaxDays
		}
		forecast, err := p.weather.Forecast(gatherCtx, req.Destination, days)
		resultCh <- sourceResult{source: "weather", forecast: forecast, err: err}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	g := gathered{research: SearchUnavailable}
	for sr := range resultCh {
		switch sr.source {
		case "search":
			if sr.err != nil {
				log.Printf("Destination search for %s failed: %v", req.Destination, sr.err)
				g.warnings = append(g.warnings, SearchUnavailable)
				continue
			}
			g.research = search.Format(sr.results)
		case "weather":
			if sr.err != nil {
				log.Printf("Weather forecast for %s failed: %v", req.Destination, sr.err)
				g.warnings = append(g.warnings, fmt.Sprintf("Weather forecast unavailable for %s.", strings.TrimSpace(req.Destination)))
				continue
			}
			g.forecast = sr.forecast
		}
	}

	// Keep warning order stable regardless of which source finished first.
	if len(g.warnings) == 2 && g.warnings[0] != SearchUnavailable {
		g.warnings[0], g.warnings[1] = g.warnings[1], g.warnings[0]
	}
	return g
}

func uniqueStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
