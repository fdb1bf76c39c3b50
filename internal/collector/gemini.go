package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TickerBoard/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultGeminiURL is the public Gemini REST API host.
const DefaultGeminiURL = "https://api.gemini.com"

// GeminiFetcher implements Fetcher using the Gemini public ticker endpoint.
type GeminiFetcher struct {
	BaseURL string
	Client  *http.Client
	Now     func() time.Time
}

// NewGeminiFetcher creates a fetcher with optional proxy support.
func NewGeminiFetcher(baseURL, proxyURL string) *GeminiFetcher {
	if baseURL == "" {
		baseURL = DefaultGeminiURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GeminiFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Now: time.Now,
	}
}

func (f *GeminiFetcher) Name() string { return "gemini" }

// geminiTicker is the JSON shape of /v1/pubticker/<pair>. Prices arrive as
// strings; decimal.Decimal accepts both quoted and bare numbers.
type geminiTicker struct {
	Bid    *decimal.Decimal           `json:"bid"`
	Ask    *decimal.Decimal           `json:"ask"`
	Last   *decimal.Decimal           `json:"last"`
	Volume map[string]json.RawMessage `json:"volume"`
}

func (f *GeminiFetcher) FetchTicker(ctx context.Context, pair model.Pair) (*model.Snapshot, error) {
	endpoint := fmt.Sprintf("%s/v1/pubticker/%s", f.BaseURL, url.PathEscape(string(pair)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Pair: pair, Err: err}
	}
	// Receipt time is taken when the call is made.
	receivedAt := f.now()

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Pair: pair, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			Pair:       pair,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body))),
		}
	}

	var t geminiTicker
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, &FetchError{Pair: pair, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode ticker: %w", err)}
	}
	snap, err := t.snapshot(pair, receivedAt)
	if err != nil {
		return nil, &FetchError{Pair: pair, StatusCode: resp.StatusCode, Err: err}
	}
	return snap, nil
}

func (f *GeminiFetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (t *geminiTicker) snapshot(pair model.Pair, ts time.Time) (*model.Snapshot, error) {
	switch {
	case t.Bid == nil:
		return nil, errors.New("missing field bid")
	case t.Ask == nil:
		return nil, errors.New("missing field ask")
	case t.Last == nil:
		return nil, errors.New("missing field last")
	}
	volBase, err := t.volume(pair.Base())
	if err != nil {
		return nil, err
	}
	volQuote, err := t.volume(pair.Quote())
	if err != nil {
		return nil, err
	}
	return &model.Snapshot{
		Pair:        pair,
		Timestamp:   ts,
		Bid:         *t.Bid,
		Ask:         *t.Ask,
		Last:        *t.Last,
		VolumeBase:  volBase,
		VolumeQuote: volQuote,
	}, nil
}

func (t *geminiTicker) volume(asset string) (decimal.Decimal, error) {
	raw, ok := t.Volume[asset]
	if !ok || string(raw) == "null" {
		return decimal.Zero, fmt.Errorf("missing field volume.%s", asset)
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return decimal.Zero, fmt.Errorf("volume.%s: %w", asset, err)
	}
	return d, nil
}
