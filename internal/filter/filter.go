package filter

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

const (
	SortCreatedAt   = "created_at"
	SortTotalCost   = "total_cost"
	SortDuration    = "duration"
	SortDestination = "destination"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Normalize resolves the sort key and order actually applied. Unknown keys
// fall back to created_at; created_at defaults to newest first, every other
// key to ascending.
func Normalize(sortBy, sortOrder string) (string, string) {
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	switch sortBy {
	case SortCreatedAt, SortTotalCost, SortDuration, SortDestination:
	default:
		sortBy = SortCreatedAt
	}

	switch strings.ToLower(strings.TrimSpace(sortOrder)) {
	case OrderAsc:
		return sortBy, OrderAsc
	case OrderDesc:
		return sortBy, OrderDesc
	}
	if sortBy == SortCreatedAt {
		return sortBy, OrderDesc
	}
	return sortBy, OrderAsc
}

func Apply(plans []models.PlanSummary, filters *models.PlanFilters, sortBy, sortOrder string) []models.PlanSummary {
	filtered := applyFilters(plans, filters)
	sortBy, sortOrder = Normalize(sortBy, sortOrder)
	return applySort(filtered, sortBy, sortOrder == OrderAsc)
}

func applyFilters(plans []models.PlanSummary, filters *models.PlanFilters) []models.PlanSummary {
	if filters == nil {
		return plans
	}

	result := make([]models.PlanSummary, 0, len(plans))

	for _, p := range plans {
		if matchesFilters(p, filters) {
			result = append(result, p)
		}
	}

	return result
}

func matchesFilters(p models.PlanSummary, filters *models.PlanFilters) bool {
	if d := strings.TrimSpace(filters.Destination); d != "" &&
		!strings.Contains(strings.ToLower(p.Destination), strings.ToLower(d)) {
		return false
	}

	if filters.Currency != "" && !strings.EqualFold(p.Currency, strings.TrimSpace(filters.Currency)) {
		return false
	}

	if filters.MinTotalCost != nil && p.TotalCost < *filters.MinTotalCost {
		return false
	}
	if filters.MaxTotalCost != nil && p.TotalCost > *filters.MaxTotalCost {
		return false
	}

	if filters.MinDuration != nil && p.Duration < *filters.MinDuration {
		return false
	}
	if filters.MaxDuration != nil && p.Duration > *filters.MaxDuration {
		return false
	}

	return true
}

func applySort(plans []models.PlanSummary, sortBy string, ascending bool) []models.PlanSummary {
	if len(plans) == 0 {
		return plans
	}

	switch sortBy {
	case SortTotalCost:
		sort.SliceStable(plans, func(i, j int) bool {
			if ascending {
				return plans[i].TotalCost < plans[j].TotalCost
			}
			return plans[i].TotalCost > plans[j].TotalCost
		})

	case SortDuration:
		sort.SliceStable(plans, func(i, j int) bool {
			if ascending {
				return plans[i].Duration < plans[j].Duration
			}
			return plans[i].Duration > plans[j].Duration
		})

	case SortDestination:
		sort.SliceStable(plans, func(i, j int) bool {
			a, b := strings.ToLower(plans[i].Destination), strings.ToLower(plans[j].Destination)
			if ascending {
				return a < b
			}
			return a > b
		})

	default:
		sort.SliceStable(plans, func(i, j int) bool {
			if ascending {
				return plans[i].CreatedAt.Before(plans[j].CreatedAt)
			}
			return plans[i].CreatedAt.After(plans[j].CreatedAt)
		})
	}

	return plans
}
