package llm

import (
	"fmt"
	"strings"
)

// PlanPrompt carries everything the planning request mentions.
type PlanPrompt struct {
	Destination  string
	Duration     int
	Year         int
	Interests    []string
	Pace         string
	Budget       string
	StartDate    string
	CurrencyCode string
	Research     string
}

func (p PlanPrompt) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed travel plan for %s for %d days in %d.\n", p.Destination, p.Duration, p.Year)
	fmt.Fprintf(&b, "User preferences: interests: %s; pace: %s; budget: %s",
		strings.Join(p.Interests, ", "), p.Pace, p.Budget)
	if p.StartDate != "" {
		fmt.Fprintf(&b, "; starting %s", p.StartDate)
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Incorporate this research data: %s\n", p.Research)
	b.WriteString("Include:\n")
	b.WriteString("- Best time to visit\n")
	b.WriteString("- Top attractions and activities tailored to preferences\n")
	b.WriteString("- Recommended hotels matching budget\n")
	b.WriteString("- Local transportation options and tips\n")
	if p.CurrencyCode == "" || p.CurrencyCode == "USD" {
		b.WriteString("- Estimated daily budget breakdown in USD\n")
	} else {
		fmt.Fprintf(&b, "- Estimated daily budget breakdown in %s and USD, using the cost estimation above\n", p.CurrencyCode)
	}
	b.WriteString("Format in clean Markdown. Ensure all sections are complete and tailored to preferences.")

	return b.String()
}
