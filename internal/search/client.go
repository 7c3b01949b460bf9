package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/dharmasatrya/tripplanner/internal/cache"
	"github.com/dharmasatrya/tripplanner/internal/httpclient"
)

const (
	ServiceName       = "duckduckgo"
	DefaultBaseURL    = "https://api.duckduckgo.com/"
	DefaultMaxResults = 5
)

var (
	ErrInvalidQuery = errors.New("invalid search query")
	ErrNoResults    = errors.New("no search results found")
)

type Result struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

type Config struct {
	BaseURL    string
	MaxResults int
}

type Client struct {
	http       *httpclient.Client
	cache      cache.Cache
	baseURL    string
	maxResults int
}

func NewClient(h *httpclient.Client, c cache.Cache, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Client{http: h, cache: c, baseURL: cfg.BaseURL, maxResults: cfg.MaxResults}
}

type topic struct {
	Text     string  `json:"Text"`
	FirstURL string  `json:"FirstURL"`
	Name     string  `json:"Name"`
	Topics   []topic `json:"Topics"`
}

type instantAnswer struct {
	Heading       string  `json:"Heading"`
	AbstractText  string  `json:"AbstractText"`
	AbstractURL   string  `json:"AbstractURL"`
	RelatedTopics []topic `json:"RelatedTopics"`
}

// Destination looks up background material for a destination.
func (c *Client) Destination(ctx context.Context, destination string) ([]Result, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, ErrInvalidQuery
	}

	key := cache.Key("search", strings.ToLower(destination), c.maxResults)
	var cached []Result
	if c.cache.Get(ctx, key, &cached) && len(cached) > 0 {
		return cached, nil
	}

	query := url.Values{}
	query.Set("q", destination)
	query.Set("format", "json")
	query.Set("no_html", "1")
	query.Set("skip_disambig", "1")

	var ia instantAnswer
	if err := c.http.GetJSON(ctx, ServiceName, c.baseURL, query, nil, &ia); err != nil {
		return nil, fmt.Errorf("search %q: %w", destination, err)
	}

	results := make([]Result, 0, c.maxResults)
	if ia.AbstractText != "" {
		title := ia.Heading
		if title == "" {
			title = destination
		}
		results = append(results, Result{Title: title, Body: ia.AbstractText, URL: ia.AbstractURL})
	}
	for _, t := range flatten(ia.RelatedTopics) {
		if len(results) >= c.maxResults {
			break
		}
		results = append(results, Result{Title: titleOf(t), Body: t.Text, URL: t.FirstURL})
	}

	if len(results) == 0 {
		return nil, ErrNoResults
	}

	if err := c.cache.Set(ctx, key, results); err != nil {
		log.Printf("Search cache write failed: %v", err)
	}
	return results, nil
}

// Format renders results as "### title\nbody" blocks separated by blank lines.
func Format(results []Result) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, "### "+r.Title+"\n"+r.Body)
	}
	return strings.Join(blocks, "\n\n")
}

func flatten(topics []topic) []topic {
	var out []topic
	for _, t := range topics {
		if len(t.Topics) > 0 {
			out = append(out, flatten(t.Topics)...)
			continue
		}
		if t.Text != "" {
			out = append(out, t)
		}
	}
	return out
}

func titleOf(t topic) string {
	if head, _, ok := strings.Cut(t.Text, " - "); ok {
		return head
	}
	if u, err := url.Parse(t.FirstURL); err == nil && u.Path != "" {
		seg := u.Path[strings.LastIndex(u.Path, "/")+1:]
		if seg != "" {
			return strings.ReplaceAll(seg, "_", " ")
		}
	}
	return t.Text
}
