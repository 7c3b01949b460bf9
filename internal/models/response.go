package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type CostEstimateResponse struct {
	Request  TripRequest   `json:"request"`
	Currency string        `json:"currency"`
	Symbol   string        `json:"symbol"`
	Estimate CostEstimate  `json:"estimate"`
	Costs    CostBreakdown `json:"costs"`
	Warnings []string      `json:"warnings,omitempty"`
}

type PlanListMetadata struct {
	TotalResults int    `json:"total_results"`
	SortBy       string `json:"sort_by"`
	SortOrder    string `json:"sort_order"`
}

type PlanListResponse struct {
	Metadata PlanListMetadata `json:"metadata"`
	Plans    []PlanSummary    `json:"plans"`
}

type CurrencyResponse struct {
	Destination string `json:"destination"`
	Code        string `json:"code"`
	Symbol      string `json:"symbol"`
}

type FeedbackResponse struct {
	Saved     bool   `json:"saved"`
	Timestamp string `json:"timestamp"`
}

type NearbyResponse struct {
	Place       string      `json:"place"`
	Coordinates Coordinates `json:"coordinates"`
	Radius      int         `json:"radius"`
	Places      []Place     `json:"places"`
}

type ChecklistCategory struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type ChecklistResponse struct {
	Destination string              `json:"destination"`
	Duration    int                 `json:"duration"`
	Season      string              `json:"season,omitempty"`
	Categories  []ChecklistCategory `json:"categories"`
}
