package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripplanner/internal/httpclient"
)

func newTestConverter(t *testing.T, apiKey string, h http.HandlerFunc) (*Converter, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	client := httpclient.New(httpclient.Config{Timeout: time.Second})
	return NewConverter(client, Config{BaseURL: srv.URL, APIKey: apiKey}), &calls
}

func TestConvertSuccess(t *testing.T) {
	c, calls := newTestConverter(t, "key", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "key", q.Get("access_key"))
		assert.Equal(t, "USD", q.Get("base"))
		assert.Equal(t, "GBP", q.Get("symbols"))
		w.Write([]byte(`{"success":true,"base":"USD","rates":{"GBP":0.8}}`))
	})

	conv := c.Convert(context.Background(), 100, "usd", "gbp")
	require.True(t, conv.OK())
	amount, ok := conv.Value()
	assert.True(t, ok)
	assert.InDelta(t, 80.0, amount, 1e-9)
	assert.Equal(t, 0.8, conv.Rate)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestConvertIdentityRate(t *testing.T) {
	c, _ := newTestConverter(t, "key", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"USD":1.0}}`))
	})

	conv := c.Convert(context.Background(), 100, "USD", "USD")
	amount, ok := conv.Value()
	require.True(t, ok)
	assert.Equal(t, 100.0, amount)
}

func TestConvertEveryCallHitsService(t *testing.T) {
	c, calls := newTestConverter(t, "key", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{"EUR":0.9}}`))
	})

	for i := 0; i < 5; i++ {
		require.True(t, c.Convert(context.Background(), 10, "USD", "EUR").OK())
	}
	assert.EqualValues(t, 5, atomic.LoadInt32(calls))
}

func TestConvertFailures(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		handler http.HandlerFunc
		reason  Reason
		warning string
	}{
		{
			name:    "missing credential",
			apiKey:  "",
			handler: func(w http.ResponseWriter, r *http.Request) { t.Error("no request expected") },
			reason:  ReasonCredentialMissing,
			warning: "Exchange Rates API key not found. Currency conversion will not be available.",
		},
		{
			name:   "non-200",
			apiKey: "key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			reason:  ReasonBadStatus,
			warning: "Currency conversion failed. Error: 401",
		},
		{
			name:   "missing rate",
			apiKey: "key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"rates":{"EUR":0.9}}`))
			},
			reason:  ReasonMalformedResponse,
			warning: "Currency conversion not available for USD to JPY",
		},
		{
			name:   "success false",
			apiKey: "key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"error":{"code":104}}`))
			},
			reason: ReasonMalformedResponse,
		},
		{
			name:   "zero rate",
			apiKey: "key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"rates":{"JPY":0}}`))
			},
			reason: ReasonMalformedResponse,
		},
		{
			name:   "not json",
			apiKey: "key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`oops`))
			},
			reason: ReasonMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConverter(t, tt.apiKey, tt.handler)

			conv := c.Convert(context.Background(), 100, "USD", "JPY")
			amount, ok := conv.Value()
			assert.False(t, ok)
			assert.Zero(t, amount)
			require.NotNil(t, conv.Failure)
			assert.Equal(t, tt.reason, conv.Failure.Reason)
			if tt.warning != "" {
				assert.Equal(t, tt.warning, conv.Failure.Warning())
			}
		})
	}
}

func TestConvertTransportFailure(t *testing.T) {
	client := httpclient.New(httpclient.Config{Timeout: time.Second})
	c := NewConverter(client, Config{BaseURL: "http://127.0.0.1:1/latest", APIKey: "key"})

	conv := c.Convert(context.Background(), 100, "USD", "EUR")
	require.NotNil(t, conv.Failure)
	assert.Equal(t, ReasonTransport, conv.Failure.Reason)
	assert.Contains(t, conv.Failure.Warning(), "Error converting currency")
	assert.True(t, errors.Is(conv.Failure, conv.Failure.Err))
}
