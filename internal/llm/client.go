package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/dharmasatrya/tripplanner/internal/httpclient"
)

const (
	ServiceName    = "openai"
	DefaultBaseURL = "https://api.openai.com/v1/chat/completions"
	DefaultModel   = "gpt-3.5-turbo"

	MaxTokens     = 2500
	Temperature   = 0.7
	MinPlanLength = 100

	SystemMessage = "You are a professional travel planner. Generate detailed, personalized travel plans in Markdown format."
)

var (
	ErrMissingAPIKey = errors.New("openai API key not configured")
	ErrInvalidKey    = errors.New("invalid OpenAI API key")
	ErrRateLimited   = errors.New("OpenAI API rate limit exceeded")
	ErrEmptyResponse = errors.New("no response generated")
	ErrPlanTooShort  = errors.New("generated plan is too short or empty")
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

type Client struct {
	http    *httpclient.Client
	baseURL string
	apiKey  string
	model   string
}

func NewClient(h *httpclient.Client, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{http: h, baseURL: cfg.BaseURL, apiKey: cfg.APIKey, model: cfg.Model}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion and returns the trimmed answer.
// Answers shorter than MinPlanLength are rejected with ErrPlanTooShort.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	req := completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: SystemMessage},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var resp completionResponse
	if err := c.http.PostJSON(ctx, ServiceName, c.baseURL, req, headers, &resp); err != nil {
		log.Printf("Plan generation request failed: %v", err)
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	plan := strings.TrimSpace(resp.Choices[0].Message.Content)
	if len(plan) < MinPlanLength {
		return "", ErrPlanTooShort
	}
	return plan, nil
}

func classify(err error) error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrInvalidKey, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}
	return err
}
