package places

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/dharmasatrya/tripplanner/internal/cache"
	"github.com/dharmasatrya/tripplanner/internal/httpclient"
	"github.com/dharmasatrya/tripplanner/internal/models"
)

const (
	GeocodeService  = "nominatim"
	OverpassService = "overpass"

	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	DefaultOverpassURL  = "https://overpass-api.de/api/interpreter"

	DefaultRadius = 1000
	MaxRadius     = 5000

	UnnamedPlace = "Unnamed Place"
)

var (
	ErrEmptyPlace    = errors.New("place is required")
	ErrPlaceNotFound = errors.New("place not found")
	ErrInvalidRadius = fmt.Errorf("radius must be between 1 and %d meters", MaxRadius)
)

type Config struct {
	NominatimURL string
	OverpassURL  string
}

type Client struct {
	http         *httpclient.Client
	cache        cache.Cache
	nominatimURL string
	overpassURL  string
}

func NewClient(h *httpclient.Client, c cache.Cache, cfg Config) *Client {
	if cfg.NominatimURL == "" {
		cfg.NominatimURL = DefaultNominatimURL
	}
	if cfg.OverpassURL == "" {
		cfg.OverpassURL = DefaultOverpassURL
	}
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Client{http: h, cache: c, nominatimURL: cfg.NominatimURL, overpassURL: cfg.OverpassURL}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the coordinates of the best Nominatim match for place.
func (c *Client) Geocode(ctx context.Context, place string) (models.Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return models.Coordinates{}, ErrEmptyPlace
	}

	key := cache.Key("geocode", strings.ToLower(place))
	var coords models.Coordinates
	if c.cache.Get(ctx, key, &coords) {
		return coords, nil
	}

	query := url.Values{}
	query.Set("q", place)
	query.Set("format", "json")
	query.Set("limit", "1")

	var results []nominatimResult
	if err := c.http.GetJSON(ctx, GeocodeService, c.nominatimURL, query, nil, &results); err != nil {
		return models.Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	if len(results) == 0 {
		return models.Coordinates{}, ErrPlaceNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocode %q: %w: lat %q", place, httpclient.ErrDecode, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocode %q: %w: lon %q", place, httpclient.ErrDecode, results[0].Lon)
	}
	coords = models.Coordinates{Lat: lat, Lon: lon}

	if err := c.cache.Set(ctx, key, coords); err != nil {
		log.Printf("Geocode cache write failed: %v", err)
	}
	return coords, nil
}

type overpassResponse struct {
	Elements []struct {
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Nearby lists tourism and amenity nodes within radius meters of coords.
// Elements without tags are skipped.
func (c *Client) Nearby(ctx context.Context, coords models.Coordinates, radius int) ([]models.Place, error) {
	if radius == 0 {
		radius = DefaultRadius
	}
	if radius < 0 || radius > MaxRadius {
		return nil, ErrInvalidRadius
	}

	form := url.Values{}
	form.Set("data", overpassQuery(coords, radius))

	var resp overpassResponse
	if err := c.http.PostForm(ctx, OverpassService, c.overpassURL, form, &resp); err != nil {
		return nil, fmt.Errorf("nearby places: %w", err)
	}

	places := make([]models.Place, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		if len(el.Tags) == 0 {
			continue
		}
		name := el.Tags["name"]
		if name == "" {
			name = UnnamedPlace
		}
		kind := el.Tags["tourism"]
		if kind == "" {
			kind = el.Tags["amenity"]
		}
		places = append(places, models.Place{Name: name, Type: kind, Lat: el.Lat, Lon: el.Lon})
	}
	return places, nil
}

func overpassQuery(coords models.Coordinates, radius int) string {
	around := fmt.Sprintf("around:%d,%s,%s", radius,
		strconv.FormatFloat(coords.Lat, 'f', -1, 64),
		strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	return "[out:json];\n(\n" +
		"  node[\"tourism\"](" + around + ");\n" +
		"  node[\"amenity\"](" + around + ");\n" +
		");\nout body;"
}
