package collector

import (
	"context"
	"errors"
	"sync"
	"time"

	"TickerBoard/internal/model"

	"github.com/shopspring/decimal"
)

// MockFetcher returns controllable data for development and testing.
// Queued results are served first; after that it synthesizes a ticker
// around Price, or fails with Err when set.
type MockFetcher struct {
	Price decimal.Decimal
	Err   error
	Now   func() time.Time

	mu     sync.Mutex
	queue  []mockResult
	calls  []model.Pair
	offset int64
}

type mockResult struct {
	snap *model.Snapshot
	err  error
}

func (m *MockFetcher) Name() string { return "mock" }

// Push queues a successful response.
func (m *MockFetcher) Push(snap model.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := snap
	m.queue = append(m.queue, mockResult{snap: &s})
}

// PushError queues a failed response.
func (m *MockFetcher) PushError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockResult{err: err})
}

// Calls returns the pairs requested so far, in order.
func (m *MockFetcher) Calls() []model.Pair {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Pair, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockFetcher) FetchTicker(ctx context.Context, pair model.Pair) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Pair: pair, Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, pair)

	if len(m.queue) > 0 {
		r := m.queue[0]
		m.queue = m.queue[1:]
		if r.err != nil {
			var fe *FetchError
			if errors.As(r.err, &fe) {
				return nil, r.err
			}
			return nil, &FetchError{Pair: pair, Err: r.err}
		}
		s := *r.snap
		s.Pair = pair
		if s.Timestamp.IsZero() {
			s.Timestamp = m.now()
		}
		return &s, nil
	}
	if m.Err != nil {
		return nil, &FetchError{Pair: pair, Err: m.Err}
	}
	return m.generate(pair), nil
}

func (m *MockFetcher) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// generate drifts the price by a tenth of a percent per call.
func (m *MockFetcher) generate(pair model.Pair) *model.Snapshot {
	base := m.Price
	if base.IsZero() {
		base = decimal.NewFromInt(100)
	}
	m.offset++
	step := decimal.NewFromInt((m.offset%21)-10).Div(decimal.NewFromInt(10000))
	last := base.Mul(decimal.NewFromInt(1).Add(step)).Round(2)
	half := last.Mul(decimal.RequireFromString("0.0005")).Round(2)
	return &model.Snapshot{
		Pair:        pair,
		Timestamp:   m.now(),
		Bid:         last.Sub(half),
		Ask:         last.Add(half),
		Last:        last,
		VolumeBase:  decimal.NewFromInt(1000),
		VolumeQuote: last.Mul(decimal.NewFromInt(1000)),
	}
}
