package costs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	FallbackFlightCost  = 1000.0
	FallbackNightlyRate = 150.0
	FallbackDailyRate   = 75.0
)

// Tables holds the static USD price lists. Keys are case-folded and nothing
// else; "new york" and "new york city" are different entries. Flight prices
// are directional: origin -> destination.
type Tables struct {
	flights map[string]map[string]float64
	hotels  map[string]map[string]float64
	daily   map[string]map[string]float64
}

// TablesFile is the on-disk shape accepted by LoadTables.
type TablesFile struct {
	Flights map[string]map[string]float64 `json:"flights"`
	Hotels  map[string]map[string]float64 `json:"hotels"`
	Daily   map[string]map[string]float64 `json:"daily"`
}

func NewTables(flights, hotels, daily map[string]map[string]float64) *Tables {
	return &Tables{
		flights: fold(flights),
		hotels:  fold(hotels),
		daily:   fold(daily),
	}
}

func DefaultTables() *Tables {
	return NewTables(
		map[string]map[string]float64{
			"new york": {"london": 800, "tokyo": 1200, "paris": 900},
			"london":   {"new york": 800, "tokyo": 1000, "paris": 200},
			"tokyo":    {"new york": 1200, "london": 1000, "paris": 1100},
			"paris":    {"new york": 900, "london": 200, "tokyo": 1100},
		},
		map[string]map[string]float64{
			"new york": {"budget": 100, "mid-range": 200, "luxury": 400},
			"london":   {"budget": 80, "mid-range": 160, "luxury": 320},
			"tokyo":    {"budget": 70, "mid-range": 140, "luxury": 280},
			"paris":    {"budget": 90, "mid-range": 180, "luxury": 360},
		},
		map[string]map[string]float64{
			"new york": {"budget": 50, "mid-range": 100, "luxury": 200},
			"london":   {"budget": 40, "mid-range": 80, "luxury": 160},
			"tokyo":    {"budget": 35, "mid-range": 70, "luxury": 140},
			"paris":    {"budget": 45, "mid-range": 90, "luxury": 180},
		},
	)
}

// LoadTables reads a JSON price list. Sections missing from the file keep the
// default entries.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cost tables: %w", err)
	}

	var f TablesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse cost tables %s: %w", path, err)
	}

	def := DefaultTables()
	t := &Tables{flights: def.flights, hotels: def.hotels, daily: def.daily}
	if f.Flights != nil {
		t.flights = fold(f.Flights)
	}
	if f.Hotels != nil {
		t.hotels = fold(f.Hotels)
	}
	if f.Daily != nil {
		t.daily = fold(f.Daily)
	}
	return t, nil
}

func (t *Tables) FlightCost(origin, destination string) float64 {
	return lookup(t.flights, origin, destination, FallbackFlightCost)
}

// NightlyRate is the per-night hotel price for the destination and tier.
func (t *Tables) NightlyRate(destination, tier string) float64 {
	return lookup(t.hotels, destination, tier, FallbackNightlyRate)
}

// DailyRate is the per-day spend for the destination and tier.
func (t *Tables) DailyRate(destination, tier string) float64 {
	return lookup(t.daily, destination, tier, FallbackDailyRate)
}

func lookup(table map[string]map[string]float64, outer, inner string, fallback float64) float64 {
	if row, ok := table[strings.ToLower(outer)]; ok {
		if v, ok := row[strings.ToLower(inner)]; ok {
			return v
		}
	}
	return fallback
}

func fold(src map[string]map[string]float64) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(src))
	for k, row := range src {
		key := strings.ToLower(k)
		if out[key] == nil {
			out[key] = make(map[string]float64, len(row))
		}
		for rk, v := range row {
			out[key][strings.ToLower(rk)] = v
		}
	}
	return out
}
