package costs

import (
	"errors"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

var ErrInvalidDuration = errors.New("duration must be at least 1 day")

type Estimator struct {
	tables *Tables
}

func NewEstimator(tables *Tables) *Estimator {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Estimator{tables: tables}
}

// Estimate never fails for unknown places or tiers; those price at the
// fallback rates. Only a non-positive duration is rejected.
func (e *Estimator) Estimate(origin, destination string, duration int, tier models.BudgetTier) (models.CostEstimate, error) {
	if duration < 1 {
		return models.CostEstimate{}, ErrInvalidDuration
	}

	days := float64(duration)
	flight := e.tables.FlightCost(origin, destination)
	hotel := e.tables.NightlyRate(destination, tier.Key()) * days
	daily := e.tables.DailyRate(destination, tier.Key()) * days

	return models.CostEstimate{
		FlightCost:    flight,
		HotelCost:     hotel,
		DailyExpenses: daily,
		TotalCost:     flight + hotel + daily,
		DailyBudget:   (hotel + daily) / days,
	}, nil
}
