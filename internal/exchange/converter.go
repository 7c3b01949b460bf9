package exchange

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/dharmasatrya/tripplanner/internal/httpclient"
	"github.com/dharmasatrya/tripplanner/internal/metrics"
)

const (
	ServiceName    = "exchangerates"
	DefaultBaseURL = "https://api.exchangeratesapi.io/v1/latest"
)

type Reason string

const (
	ReasonCredentialMissing Reason = "credential_missing"
	ReasonTransport         Reason = "transport_error"
	ReasonBadStatus         Reason = "bad_status"
	ReasonMalformedResponse Reason = "malformed_response"
)

var ErrMissingAPIKey = errors.New("exchange rates API key not configured")

// Failure explains why a conversion produced no amount.
type Failure struct {
	Reason Reason
	From   string
	To     string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("convert %s->%s: %s: %v", f.From, f.To, f.Reason, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Warning is the non-fatal message shown to the user.
func (f *Failure) Warning() string {
	switch f.Reason {
	case ReasonCredentialMissing:
		return "Exchange Rates API key not found. Currency conversion will not be available."
	case ReasonBadStatus:
		var se *httpclient.StatusError
		if errors.As(f.Err, &se) {
			return fmt.Sprintf("Currency conversion failed. Error: %d", se.Code)
		}
		return "Currency conversion failed."
	case ReasonMalformedResponse:
		return fmt.Sprintf("Currency conversion not available for %s to %s", f.From, f.To)
	default:
		return fmt.Sprintf("Error converting currency: %v", f.Err)
	}
}

// Conversion holds either a converted amount or the failure that prevented
// it. A zero Amount with a nil Failure is a real zero.
type Conversion struct {
	Amount  float64
	Rate    float64
	Failure *Failure
}

func (c Conversion) OK() bool {
	return c.Failure == nil
}

func (c Conversion) Value() (float64, bool) {
	return c.Amount, c.Failure == nil
}

type Config struct {
	BaseURL string
	APIKey  string
}

type Converter struct {
	client  *httpclient.Client
	baseURL string
	apiKey  string
}

func NewConverter(client *httpclient.Client, cfg Config) *Converter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Converter{
		client:  client,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type latestResponse struct {
	Success *bool              `json:"success,omitempty"`
	Base    string             `json:"base"`
	Rates   map[string]float64 `json:"rates"`
}

// Convert makes exactly one request to the rate service. Every failure is
// returned inside the Conversion; nothing is retried or cached.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) Conversion {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if c.apiKey == "" {
		return c.fail(ReasonCredentialMissing, from, to, ErrMissingAPIKey)
	}

	query := url.Values{}
	query.Set("access_key", c.apiKey)
	query.Set("base", from)
	query.Set("symbols", to)

	var resp latestResponse
	if err := c.client.GetJSON(ctx, ServiceName, c.baseURL, query, nil, &resp); err != nil {
		var se *httpclient.StatusError
		switch {
		case errors.As(err, &se):
			return c.fail(ReasonBadStatus, from, to, err)
		case errors.Is(err, httpclient.ErrDecode):
			return c.fail(ReasonMalformedResponse, from, to, err)
		default:
			return c.fail(ReasonTransport, from, to, err)
		}
	}

	if resp.Success != nil && !*resp.Success {
		return c.fail(ReasonMalformedResponse, from, to, errors.New("rate service reported failure"))
	}
	rate, ok := resp.Rates[to]
	if !ok {
		return c.fail(ReasonMalformedResponse, from, to, fmt.Errorf("rate for %s missing from response", to))
	}
	if rate <= 0 {
		return c.fail(ReasonMalformedResponse, from, to, fmt.Errorf("invalid rate %.6f", rate))
	}

	return Conversion{Amount: amount * rate, Rate: rate}
}

func (c *Converter) fail(reason Reason, from, to string, err error) Conversion {
	f := &Failure{Reason: reason, From: from, To: to, Err: err}
	metrics.ConversionFailed(string(reason))
	log.Printf("Currency conversion %s->%s failed (%s): %v", from, to, reason, err)
	return Conversion{Failure: f}
}
