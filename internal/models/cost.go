package models

import (
	"strings"

	"github.com/dharmasatrya/tripplanner/pkg/currency"
)

// CostEstimate amounts are USD.
type CostEstimate struct {
	FlightCost    float64 `json:"flight_cost"`
	HotelCost     float64 `json:"hotel_cost"`
	DailyExpenses float64 `json:"daily_expenses"`
	TotalCost     float64 `json:"total_cost"`
	DailyBudget   float64 `json:"daily_budget"`
}

const (
	LabelFlightCost    = "Flight Cost"
	LabelHotelCost     = "Hotel Cost"
	LabelDailyExpenses = "Daily Expenses"
	LabelDailyBudget   = "Daily Budget"
	LabelTotalCost     = "Total Cost"
)

type CostLine struct {
	Label     string  `json:"label"`
	USD       float64 `json:"usd"`
	Local     float64 `json:"local"`
	Converted bool    `json:"converted"`
	Failure   string  `json:"failure,omitempty"`
	Text      string  `json:"text"`
}

type CostBreakdown struct {
	Currency string     `json:"currency"`
	Symbol   string     `json:"symbol"`
	Lines    []CostLine `json:"lines"`
	Warnings []string   `json:"warnings,omitempty"`
}

// Markdown renders the section appended to the planning research text.
func (b CostBreakdown) Markdown() string {
	var sb strings.Builder
	sb.WriteString("\n\n### Cost Estimation (in ")
	sb.WriteString(b.Symbol)
	sb.WriteString(" and $)\n")
	for _, l := range b.Lines {
		sb.WriteString("- ")
		sb.WriteString(l.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Line returns the line with the given label, if present.
func (b CostBreakdown) Line(label string) (CostLine, bool) {
	for _, l := range b.Lines {
		if l.Label == label {
			return l, true
		}
	}
	return CostLine{}, false
}

// LocalTotal is the total in the local currency, falling back to USD when the
// breakdown has no total line.
func (b CostBreakdown) LocalTotal() string {
	if l, ok := b.Line(LabelTotalCost); ok {
		return currency.FormatWithSymbol(l.Local, b.Symbol)
	}
	return currency.FormatUSD(0)
}
