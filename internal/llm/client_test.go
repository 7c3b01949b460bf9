package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripplanner/internal/httpclient"
)

var longPlan = "# Lisbon in 3 days\n\n" + strings.Repeat("Walk the hills of Alfama and ride tram 28. ", 5)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(httpclient.New(httpclient.Config{Timeout: time.Second}), Config{
		BaseURL: srv.URL,
		APIKey:  "sk-test",
	})
}

func answer(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}
}

func TestComplete(t *testing.T) {
	var got completionRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		answer("  "+longPlan+"\n\n")(w, r)
	})

	plan, err := c.Complete(context.Background(), "plan Lisbon")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(longPlan), plan)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, MaxTokens, got.MaxTokens)
	assert.Equal(t, Temperature, got.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, SystemMessage, got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "plan Lisbon", got.Messages[1].Content)
}

func TestCompleteFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name:    "short plan",
			handler: answer("Visit the castle."),
			want:    ErrPlanTooShort,
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[]}`))
			},
			want: ErrEmptyResponse,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			want: ErrInvalidKey,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			want: ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Complete(context.Background(), "plan")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompleteWithoutKey(t *testing.T) {
	c := NewClient(httpclient.New(httpclient.Config{}), Config{})
	_, err := c.Complete(context.Background(), "plan")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestPlanPrompt(t *testing.T) {
	p := PlanPrompt{
		Destination:  "Tokyo",
		Duration:     4,
		Year:         2026,
		Interests:    []string{"food", "temples"},
		Pace:         "Moderate",
		Budget:       "Luxury",
		CurrencyCode: "JPY",
		Research:     "### Tokyo\nCapital of Japan.",
	}
	out := p.String()

	assert.Contains(t, out, "Create a detailed travel plan for Tokyo for 4 days in 2026.")
	assert.Contains(t, out, "interests: food, temples; pace: Moderate; budget: Luxury.")
	assert.Contains(t, out, "### Tokyo\nCapital of Japan.")
	assert.Contains(t, out, "in JPY and USD")
	assert.NotContains(t, out, "starting")

	p.CurrencyCode = "USD"
	p.StartDate = "2026-11-02"
	out = p.String()
	assert.Contains(t, out, "budget breakdown in USD\n")
	assert.Contains(t, out, "; starting 2026-11-02.")
}
