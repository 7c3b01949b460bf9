package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripplanner/internal/cache"
	"github.com/dharmasatrya/tripplanner/internal/httpclient"
	"github.com/dharmasatrya/tripplanner/internal/models"
)

// Three-hourly readings for a city at UTC+9; the second reading is local midnight.
const tokyoForecast = `{
  "list": [
    {"dt": 1792152000, "main": {"temp": 18.2}, "weather": [{"description": "light rain", "icon": "10n"}]},
    {"dt": 1792162800, "main": {"temp": 21.5}, "weather": [{"description": "clear sky", "icon": "01n"}]},
    {"dt": 1792173600, "main": {"temp": 17.0}, "weather": [{"description": "overcast clouds", "icon": "04n"}]},
    {"dt": 1792249200, "main": {"temp": 16.0}, "weather": []}
  ],
  "city": {"name": "Tokyo", "country": "JP", "timezone": 32400}
}`

func newTestClient(t *testing.T, body string, status int, c cache.Cache) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "Tokyo", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "key", r.URL.Query().Get("appid"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	h := httpclient.New(httpclient.Config{Timeout: time.Second})
	return NewClient(h, c, Config{BaseURL: srv.URL, APIKey: "key"}), &calls
}

func TestForecastOnePerLocalDay(t *testing.T) {
	client, _ := newTestClient(t, tokyoForecast, http.StatusOK, nil)

	f, err := client.Forecast(context.Background(), "Tokyo", 5)
	require.NoError(t, err)

	assert.Equal(t, "Tokyo", f.City)
	assert.Equal(t, "JP", f.Country)
	require.Len(t, f.Days, 3)
	assert.Equal(t, models.ForecastDay{Date: "2026-10-16", Temp: 18.2, Description: "light rain", Icon: "10n"}, f.Days[0])
	assert.Equal(t, "2026-10-17", f.Days[1].Date)
	assert.Equal(t, 21.5, f.Days[1].Temp)
	assert.Equal(t, "", f.Days[2].Description)
}

func TestForecastLimitsDays(t *testing.T) {
	client, _ := newTestClient(t, tokyoForecast, http.StatusOK, nil)

	f, err := client.Forecast(context.Background(), "Tokyo", 1)
	require.NoError(t, err)
	assert.Len(t, f.Days, 1)
}

func TestForecastErrors(t *testing.T) {
	client, _ := newTestClient(t, `{"cod":"404"}`, http.StatusNotFound, nil)
	_, err := client.Forecast(context.Background(), "Tokyo", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	client, _ = newTestClient(t, `{"list": [], "city": {}}`, http.StatusOK, nil)
	_, err = client.Forecast(context.Background(), "Tokyo", 3)
	assert.ErrorIs(t, err, ErrNoForecast)

	noKey := NewClient(httpclient.New(httpclient.Config{}), nil, Config{})
	_, err = noKey.Forecast(context.Background(), "Tokyo", 3)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestForecastIsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisCache(cache.RedisConfig{Host: mr.Host(), Port: mr.Port(), TTL: time.Minute})
	require.NoError(t, err)
	defer rc.Close()

	client, calls := newTestClient(t, tokyoForecast, http.StatusOK, rc)

	first, err := client.Forecast(context.Background(), "Tokyo", 5)
	require.NoError(t, err)
	second, err := client.Forecast(context.Background(), "Tokyo", 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestSection(t *testing.T) {
	assert.Equal(t, "", Section(nil))

	f := &models.Forecast{Days: []models.ForecastDay{
		{Date: "2026-10-16", Temp: 18.2, Description: "light rain"},
		{Date: "2026-10-17", Temp: 21, Description: "clear sky"},
	}}
	assert.Equal(t,
		"\n\n### Weather Forecast\n- 2026-10-16: 18.2°C, light rain\n- 2026-10-17: 21°C, clear sky\n",
		Section(f))
}
