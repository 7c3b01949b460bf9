package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripplanner/internal/exchange"
	"github.com/dharmasatrya/tripplanner/internal/models"
)

type fakeConverter struct {
	rate    float64
	failure *exchange.Failure
	failOn  map[float64]bool
	calls   int
}

func (f *fakeConverter) Convert(_ context.Context, amount float64, from, to string) exchange.Conversion {
	f.calls++
	if f.failure != nil && (f.failOn == nil || f.failOn[amount]) {
		return exchange.Conversion{Failure: f.failure}
	}
	return exchange.Conversion{Amount: amount * f.rate, Rate: f.rate}
}

var londonWeek = models.CostEstimate{
	FlightCost:    800,
	HotelCost:     1120,
	DailyExpenses: 560,
	TotalCost:     2480,
	DailyBudget:   240,
}

func TestPresentConverted(t *testing.T) {
	conv := &fakeConverter{rate: 0.5}
	b := NewPresenter(conv).Present(context.Background(), londonWeek, "gbp")

	assert.Equal(t, "GBP", b.Currency)
	assert.Equal(t, "£", b.Symbol)
	assert.Empty(t, b.Warnings)
	assert.Equal(t, 5, conv.calls)

	require.Len(t, b.Lines, 5)
	want := []string{
		"Flight Cost: £400.00 ($800.00)",
		"Hotel Cost: £560.00 ($1120.00)",
		"Daily Expenses: £280.00 ($560.00)",
		"Daily Budget: £120.00 ($240.00)",
		"Total Cost: £1240.00 ($2480.00)",
	}
	for i, l := range b.Lines {
		assert.True(t, l.Converted)
		assert.Equal(t, want[i], l.Text)
	}
}

func TestPresentFallsBackToUSD(t *testing.T) {
	conv := &fakeConverter{failure: &exchange.Failure{
		Reason: exchange.ReasonBadStatus, From: "USD", To: "JPY", Err: errors.New("503"),
	}}
	b := NewPresenter(conv).Present(context.Background(), londonWeek, "JPY")

	assert.Equal(t, 5, conv.calls)
	require.Len(t, b.Lines, 5)
	for _, l := range b.Lines {
		assert.False(t, l.Converted)
		assert.Equal(t, l.USD, l.Local)
		assert.Equal(t, string(exchange.ReasonBadStatus), l.Failure)
		assert.Contains(t, l.Text, UnconvertedNote)
	}
	assert.Equal(t, "Flight Cost: ¥800.00 ($800.00) "+UnconvertedNote, b.Lines[0].Text)
	// one warning, not five
	assert.Equal(t, []string{"Currency conversion failed."}, b.Warnings)
}

func TestPresentPartialFailure(t *testing.T) {
	conv := &fakeConverter{
		rate:    2,
		failure: &exchange.Failure{Reason: exchange.ReasonTransport, From: "USD", To: "AUD", Err: errors.New("reset")},
		failOn:  map[float64]bool{240: true},
	}
	b := NewPresenter(conv).Present(context.Background(), londonWeek, "AUD")

	daily, ok := b.Line(models.LabelDailyBudget)
	require.True(t, ok)
	assert.False(t, daily.Converted)
	assert.Equal(t, 240.0, daily.Local)

	total, ok := b.Line(models.LabelTotalCost)
	require.True(t, ok)
	assert.True(t, total.Converted)
	assert.Equal(t, 4960.0, total.Local)
	assert.Equal(t, "Total Cost: A$4960.00 ($2480.00)", total.Text)
	assert.Len(t, b.Warnings, 1)
}

func TestPresentUSDSkipsConversion(t *testing.T) {
	conv := &fakeConverter{rate: 99}
	b := NewPresenter(conv).Present(context.Background(), londonWeek, "USD")

	assert.Zero(t, conv.calls)
	for _, l := range b.Lines {
		assert.True(t, l.Converted)
		assert.Equal(t, l.USD, l.Local)
	}
	assert.Equal(t, "Total Cost: $2480.00 ($2480.00)", b.Lines[4].Text)
	assert.Contains(t, b.Markdown(), "### Cost Estimation (in $ and $)")
}
