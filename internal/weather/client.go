package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/dharmasatrya/tripplanner/internal/cache"
	"github.com/dharmasatrya/tripplanner/internal/httpclient"
	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/timezone"
)

const (
	ServiceName    = "openweather"
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

	// The free forecast endpoint covers five days.
	MaxDays = 5
)

var (
	ErrMissingAPIKey = errors.New("openweather API key not configured")
	ErrNoForecast    = errors.New("forecast response contained no entries")
)

type Config struct {
	BaseURL string
	APIKey  string
}

type Client struct {
	http    *httpclient.Client
	cache   cache.Cache
	baseURL string
	apiKey  string
}

func NewClient(h *httpclient.Client, c cache.Cache, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Client{http: h, cache: c, baseURL: cfg.BaseURL, apiKey: cfg.APIKey}
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// Forecast returns at most days entries, one per local calendar day, taking
// the first reading of each day.
func (c *Client) Forecast(ctx context.Context, city string, days int) (*models.Forecast, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if days <= 0 || days > MaxDays {
		days = MaxDays
	}

	key := cache.Key("weather", strings.ToLower(strings.TrimSpace(city)), days)
	var cached models.Forecast
	if c.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	var resp forecastResponse
	if err := c.http.GetJSON(ctx, ServiceName, c.baseURL, query, nil, &resp); err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("weather data not available for %s: status %d", city, se.Code)
		}
		return nil, fmt.Errorf("get weather for %s: %w", city, err)
	}
	if len(resp.List) == 0 {
		return nil, ErrNoForecast
	}

	f := &models.Forecast{
		City:    resp.City.Name,
		Country: resp.City.Country,
		Days:    make([]models.ForecastDay, 0, days),
	}
	seen := make(map[string]bool)
	for _, item := range resp.List {
		if len(f.Days) >= days {
			break
		}
		date := timezone.LocalDate(item.Dt, resp.City.Timezone)
		if seen[date] {
			continue
		}
		seen[date] = true

		day := models.ForecastDay{Date: date, Temp: item.Main.Temp}
		if len(item.Weather) > 0 {
			day.Description = item.Weather[0].Description
			day.Icon = item.Weather[0].Icon
		}
		f.Days = append(f.Days, day)
	}

	if err := c.cache.Set(ctx, key, f); err != nil {
		log.Printf("Weather cache write failed: %v", err)
	}
	return f, nil
}

// Section renders the forecast block added to the planning research text.
func Section(f *models.Forecast) string {
	if f == nil || len(f.Days) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\n### Weather Forecast\n")
	for _, d := range f.Days {
		fmt.Fprintf(&sb, "- %s: %g°C, %s\n", d.Date, d.Temp, d.Description)
	}
	return sb.String()
}
