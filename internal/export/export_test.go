package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

func TestMarkdownFilename(t *testing.T) {
	assert.Equal(t, "Tokyo_travel_plan_2026.md", MarkdownFilename("Tokyo", 2026))
	assert.Equal(t, "New York NY_travel_plan_2027.md", MarkdownFilename(" New York, NY ", 2027))
	assert.Equal(t, "trip_travel_plan_2026.md", MarkdownFilename("東京", 2026))
	assert.Equal(t, "Tokyo_travel_plan_2026.pdf", PDFFilename("Tokyo", 2026))
}

func TestPDF(t *testing.T) {
	plan := &models.Plan{
		ID:        "20261017_093005",
		CreatedAt: time.Date(2026, 10, 17, 9, 30, 5, 0, time.UTC),
		Request: models.PlanRequest{
			TripRequest: models.TripRequest{Origin: "London", Destination: "Paris", Duration: 3, Budget: models.BudgetTierMidRange},
			Interests:   []string{"art", "food"},
			Pace:        models.PaceModerate,
			StartDate:   "2026-11-02",
		},
		Currency:       "EUR",
		CurrencySymbol: "€",
		Costs: models.CostBreakdown{
			Currency: "EUR",
			Symbol:   "€",
			Lines: []models.CostLine{
				{Label: models.LabelFlightCost, USD: 200, Local: 184, Converted: true, Text: "Flight Cost: €184.00 ($200.00)"},
			},
		},
		Markdown: "# Paris\n\n## Day 1\n- **Louvre** in the morning\n- Café de Flore\n\nEnjoy!",
	}

	out, err := PDF(plan)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 1000)
}

func TestCurrencySafe(t *testing.T) {
	base := gofpdf.New("P", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")

	tr, label := currencySafe(base, "₹", "INR")
	assert.Equal(t, "INR", label)
	assert.Equal(t, "Flight Cost: INR 66400.00 ($800.00)", tr("Flight Cost: ₹66400.00 ($800.00)"))
	assert.Equal(t, "Budget about INR 3000 a day", tr("Budget about ₹3000 a day"))

	tr, label = currencySafe(base, "€", "EUR")
	assert.Equal(t, "€", label)
	assert.Equal(t, "\x80800.00", tr("€800.00"))

	tr, label = currencySafe(base, "£", "GBP")
	assert.Equal(t, "£", label)
	assert.Equal(t, "\xa3800.00", tr("£800.00"))

	tr, label = currencySafe(base, "$", "USD")
	assert.Equal(t, "$", label)
	assert.Equal(t, "$800.00", tr("$800.00"))
}

func TestPDFRupeeCosts(t *testing.T) {
	plan := &models.Plan{
		ID:        "20261017_093005",
		CreatedAt: time.Date(2026, 10, 17, 9, 30, 5, 0, time.UTC),
		Request: models.PlanRequest{
			TripRequest: models.TripRequest{Origin: "London", Destination: "Mumbai", Duration: 4, Budget: models.BudgetTierBudget},
			Interests:   []string{"food"},
			Pace:        models.PaceRelaxed,
		},
		Currency:       "INR",
		CurrencySymbol: "₹",
		Costs: models.CostBreakdown{
			Currency: "INR",
			Symbol:   "₹",
			Lines: []models.CostLine{
				{Label: models.LabelFlightCost, USD: 800, Local: 66400, Converted: true, Text: "Flight Cost: ₹66400.00 ($800.00)"},
			},
		},
		Markdown: "## Day 1\n- Street food, about ₹500",
	}

	out, err := PDF(plan)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
