package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"TickerBoard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc) (*GeminiFetcher, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	f := NewGeminiFetcher(srv.URL, "")
	f.Now = func() time.Time { return time.Unix(1700000000, 0) }
	return f, &hits
}

func TestGeminiFetcher_Success(t *testing.T) {
	var gotPath string
	f, hits := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"bid":"42000.5","ask":"42010.0","last":"42005.25",
			"volume":{"BTC":"120.4","USD":"5060000.0","timestamp":1700000000000}}`))
	})

	snap, err := f.FetchTicker(context.Background(), model.PairBTCUSD)
	require.NoError(t, err)
	assert.Equal(t, "/v1/pubticker/btcusd", gotPath)
	assert.Equal(t, 1, *hits)
	assert.Equal(t, model.PairBTCUSD, snap.Pair)
	assert.Equal(t, time.Unix(1700000000, 0), snap.Timestamp)
	assert.Equal(t, "42000.5", snap.Bid.String())
	assert.Equal(t, "42010", snap.Ask.String())
	assert.Equal(t, "42005.25", snap.Last.String())
	assert.Equal(t, "120.4", snap.VolumeBase.String())
	assert.Equal(t, "5060000", snap.VolumeQuote.String())
}

func TestGeminiFetcher_NumericFieldsAndPairAssets(t *testing.T) {
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bid":2500.1,"ask":2500.3,"last":2500.2,"volume":{"ETH":"10","USD":"25002"}}`))
	})

	snap, err := f.FetchTicker(context.Background(), model.PairETHUSD)
	require.NoError(t, err)
	assert.Equal(t, "2500.1", snap.Bid.String())
	assert.Equal(t, "10", snap.VolumeBase.String())
	assert.Equal(t, "25002", snap.VolumeQuote.String())
}

func TestGeminiFetcher_NonSuccessStatus(t *testing.T) {
	f, hits := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"result":"error","reason":"InvalidSymbol"}`))
	})

	snap, err := f.FetchTicker(context.Background(), model.Pair("dogeusd"))
	assert.Nil(t, snap)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadRequest, fe.StatusCode)
	assert.Equal(t, model.Pair("dogeusd"), fe.Pair)
	assert.Equal(t, 1, *hits, "no retry on failure")
}

func TestGeminiFetcher_MalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"missing bid", `{"ask":"1","last":"1","volume":{"BTC":"1","USD":"1"}}`},
		{"missing last", `{"bid":"1","ask":"1","volume":{"BTC":"1","USD":"1"}}`},
		{"non-numeric ask", `{"bid":"1","ask":"n/a","last":"1","volume":{"BTC":"1","USD":"1"}}`},
		{"missing base volume", `{"bid":"1","ask":"1","last":"1","volume":{"USD":"1"}}`},
		{"missing quote volume", `{"bid":"1","ask":"1","last":"1","volume":{"BTC":"1"}}`},
		{"non-numeric volume", `{"bid":"1","ask":"1","last":"1","volume":{"BTC":"x","USD":"1"}}`},
		{"null bid", `{"bid":null,"ask":"1","last":"1","volume":{"BTC":"1","USD":"1"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			snap, err := f.FetchTicker(context.Background(), model.PairBTCUSD)
			assert.Nil(t, snap)
			var fe *FetchError
			assert.True(t, errors.As(err, &fe), "expected FetchError, got %v", err)
		})
	}
}

func TestGeminiFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := NewGeminiFetcher(url, "")
	_, err := f.FetchTicker(context.Background(), model.PairBTCUSD)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
}

func TestNewGeminiFetcher_Defaults(t *testing.T) {
	f := NewGeminiFetcher("", "http://127.0.0.1:3128")
	assert.Equal(t, DefaultGeminiURL, f.BaseURL)
	assert.Equal(t, "gemini", f.Name())
	assert.Equal(t, 30*time.Second, f.Client.Timeout)
}
