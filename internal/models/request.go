package models

import (
	"strings"
	"time"
)

type BudgetTier string

const (
	BudgetTierBudget   BudgetTier = "Budget"
	BudgetTierMidRange BudgetTier = "Mid-Range"
	BudgetTierLuxury   BudgetTier = "Luxury"
)

var budgetTiers = []BudgetTier{BudgetTierBudget, BudgetTierMidRange, BudgetTierLuxury}

// ParseBudgetTier accepts any casing of the three tiers.
func ParseBudgetTier(s string) (BudgetTier, bool) {
	s = strings.TrimSpace(s)
	for _, t := range budgetTiers {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Key is the cost-table key for the tier.
func (t BudgetTier) Key() string {
	return strings.ToLower(string(t))
}

const (
	PaceRelaxed  = "Relaxed"
	PaceModerate = "Moderate"
	PacePacked   = "Packed"
)

const (
	MinDuration = 1
	MaxDuration = 30
)

const DateLayout = "2006-01-02"

type TripRequest struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Duration    int        `json:"duration"`
	Budget      BudgetTier `json:"budget"`
}

func (r *TripRequest) Validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return ErrMissingOrigin
	}
	if strings.TrimSpace(r.Destination) == "" {
		return ErrMissingDestination
	}
	if strings.ToLower(r.Origin) == strings.ToLower(r.Destination) {
		return ErrSameOriginDestination
	}
	if r.Duration < MinDuration {
		return ErrDurationTooShort
	}
	if r.Duration > MaxDuration {
		return ErrDurationTooLong
	}
	tier, ok := ParseBudgetTier(string(r.Budget))
	if !ok {
		return ErrInvalidBudgetTier
	}
	r.Budget = tier
	return nil
}

type PlanRequest struct {
	TripRequest
	Interests []string `json:"interests"`
	Pace      string   `json:"pace,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
}

func (r *PlanRequest) Validate() error {
	if err := r.TripRequest.Validate(); err != nil {
		return err
	}

	interests := make([]string, 0, len(r.Interests))
	for _, i := range r.Interests {
		if i = strings.TrimSpace(i); i != "" {
			interests = append(interests, i)
		}
	}
	if len(interests) == 0 {
		return ErrMissingInterests
	}
	r.Interests = interests

	switch strings.ToLower(strings.TrimSpace(r.Pace)) {
	case "", "relaxed":
		r.Pace = PaceRelaxed
	case "moderate":
		r.Pace = PaceModerate
	case "packed":
		r.Pace = PacePacked
	default:
		return ErrInvalidPace
	}

	if r.StartDate != "" {
		if _, err := time.Parse(DateLayout, r.StartDate); err != nil {
			return ErrInvalidStartDate
		}
	}
	return nil
}

type FeedbackRequest struct {
	Destination string `json:"destination"`
	Duration    int    `json:"duration"`
	Rating      int    `json:"rating"`
	Comments    string `json:"comments"`
}

func (r *FeedbackRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(r.Comments) == "" {
		return ErrEmptyComments
	}
	return nil
}

type ChecklistRequest struct {
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	Activities  []string `json:"activities,omitempty"`
	Season      string   `json:"season,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
}

func (r *ChecklistRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return ErrMissingDestination
	}
	if r.Duration < MinDuration {
		return ErrDurationTooShort
	}
	if r.StartDate != "" {
		if _, err := time.Parse(DateLayout, r.StartDate); err != nil {
			return ErrInvalidStartDate
		}
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         ValidationError = "Please enter a valid starting city."
	ErrMissingDestination    ValidationError = "Please enter a valid destination."
	ErrSameOriginDestination ValidationError = "Origin and destination cannot be the same."
	ErrDurationTooShort      ValidationError = "Duration must be at least 1 day."
	ErrDurationTooLong       ValidationError = "Duration cannot exceed 30 days."
	ErrInvalidBudgetTier     ValidationError = "Budget level must be one of Budget, Mid-Range or Luxury."
	ErrMissingInterests      ValidationError = "Please select at least one interest."
	ErrInvalidPace           ValidationError = "Pace must be one of Relaxed, Moderate or Packed."
	ErrInvalidStartDate      ValidationError = "start_date must use the YYYY-MM-DD format."
	ErrInvalidSeason         ValidationError = "Season must be one of spring, summer, fall or winter."
	ErrInvalidRating         ValidationError = "Invalid rating value"
	ErrEmptyComments         ValidationError = "Comments cannot be empty"
)
