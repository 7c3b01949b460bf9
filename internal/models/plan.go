package models

import "time"

type ForecastDay struct {
	Date        string  `json:"date"`
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon,omitempty"`
}

type Forecast struct {
	City    string        `json:"city"`
	Country string        `json:"country"`
	Days    []ForecastDay `json:"forecast"`
}

type Plan struct {
	ID             string        `json:"id"`
	CreatedAt      time.Time     `json:"created_at"`
	Request        PlanRequest   `json:"request"`
	Currency       string        `json:"currency"`
	CurrencySymbol string        `json:"currency_symbol"`
	Estimate       CostEstimate  `json:"estimate"`
	Costs          CostBreakdown `json:"costs"`
	Weather        *Forecast     `json:"weather,omitempty"`
	Markdown       string        `json:"plan"`
	Warnings       []string      `json:"warnings,omitempty"`
}

type PlanSummary struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Duration    int        `json:"duration"`
	Budget      BudgetTier `json:"budget"`
	Currency    string     `json:"currency"`
	TotalCost   float64    `json:"total_cost"`
}

func (p *Plan) Summary() PlanSummary {
	return PlanSummary{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt,
		Origin:      p.Request.Origin,
		Destination: p.Request.Destination,
		Duration:    p.Request.Duration,
		Budget:      p.Request.Budget,
		Currency:    p.Currency,
		TotalCost:   p.Estimate.TotalCost,
	}
}

type PlanFilters struct {
	Destination  string
	Currency     string
	MinTotalCost *float64
	MaxTotalCost *float64
	MinDuration  *int
	MaxDuration  *int
}

type Place struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
