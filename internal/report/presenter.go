package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/dharmasatrya/tripplanner/internal/exchange"
	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/pkg/currency"
)

// UnconvertedNote is appended to a line whose local figure is really USD.
const UnconvertedNote = "[not converted: exchange rate unavailable, amount shown in USD]"

type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) exchange.Conversion
}

// Presenter renders an estimate in the destination currency next to USD.
type Presenter struct {
	converter Converter
}

func NewPresenter(converter Converter) *Presenter {
	return &Presenter{converter: converter}
}

// Present converts each line independently, in display order. A line whose
// conversion fails keeps its USD amount as the local figure and is marked
// unconverted; it is never blanked.
func (p *Presenter) Present(ctx context.Context, est models.CostEstimate, code string) models.CostBreakdown {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = currency.USD
	}
	symbol := currency.Symbol(code)

	items := []struct {
		label string
		usd   float64
	}{
		{models.LabelFlightCost, est.FlightCost},
		{models.LabelHotelCost, est.HotelCost},
		{models.LabelDailyExpenses, est.DailyExpenses},
		{models.LabelDailyBudget, est.DailyBudget},
		{models.LabelTotalCost, est.TotalCost},
	}

	b := models.CostBreakdown{
		Currency: code,
		Symbol:   symbol,
		Lines:    make([]models.CostLine, 0, len(items)),
	}
	seen := make(map[string]bool)

	for _, it := range items {
		line := models.CostLine{Label: it.label, USD: it.usd, Local: it.usd, Converted: true}

		if code != currency.USD {
			conv := p.converter.Convert(ctx, it.usd, currency.USD, code)
			if amount, ok := conv.Value(); ok {
				line.Local = amount
			} else {
				line.Converted = false
				line.Failure = string(conv.Failure.Reason)
				if w := conv.Failure.Warning(); !seen[w] {
					seen[w] = true
					b.Warnings = append(b.Warnings, w)
				}
			}
		}

		line.Text = fmt.Sprintf("%s: %s (%s)", it.label,
			currency.FormatWithSymbol(line.Local, symbol), currency.FormatUSD(line.USD))
		if !line.Converted {
			line.Text += " " + UnconvertedNote
		}
		b.Lines = append(b.Lines, line)
	}

	return b
}
