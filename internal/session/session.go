// Package session owns the sliding window and runs one refresh cycle at a
// time: read selection, fetch, update the window, publish the render.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"TickerBoard/internal/collector"
	"TickerBoard/internal/model"
	"TickerBoard/internal/presenter"
	"TickerBoard/internal/recorder"
	"TickerBoard/internal/window"

	"go.uber.org/zap"
)

// State is the refresh loop state.
type State string

const (
	StateIdle     State = "IDLE"
	StateFetching State = "FETCHING"
)

// Publisher receives every cycle's output.
type Publisher interface {
	Publish(out presenter.Output)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(out presenter.Output)

func (f PublisherFunc) Publish(out presenter.Output) { f(out) }

// Session is the single owner of the sliding window.
type Session struct {
	Fetcher   collector.Fetcher
	Selection *Selection
	Publisher Publisher
	Recorder  recorder.Recorder
	Logger    *zap.Logger

	mu     sync.Mutex // serializes cycles; guards window
	window *window.SlidingWindow

	stateMu sync.RWMutex
	state   State
}

// New creates a Session with an empty window for the current selection.
func New(fetcher collector.Fetcher, sel *Selection, pub Publisher, rec recorder.Recorder, logger *zap.Logger) *Session {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		Fetcher:   fetcher,
		Selection: sel,
		Publisher: pub,
		Recorder:  rec,
		Logger:    logger,
		window:    window.New(sel.Get(), window.DefaultCapacity),
		state:     StateIdle,
	}
}

// State returns the current loop state.
func (s *Session) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.stateMu.Lock()
	s.state = st
	s.stateMu.Unlock()
}

// Window returns a copy of the retained snapshots and the pair they belong to.
func (s *Session) Window() (model.Pair, []model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Pair(), s.window.Snapshots()
}

// Tick runs one refresh cycle. Fetch failures are reported in the output
// and never returned; the next cycle proceeds as usual.
func (s *Session) Tick(ctx context.Context) presenter.Output {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair := s.Selection.Get()
	if pair != s.window.Pair() {
		dropped := s.window.Len()
		s.Logger.Info("selection changed, resetting window",
			zap.String("from", string(s.window.Pair())),
			zap.String("to", string(pair)),
			zap.Int("dropped", dropped))
		if err := s.Recorder.RecordSelectionChange(&recorder.SelectionChange{
			From: string(s.window.Pair()), To: string(pair), Dropped: dropped,
		}); err != nil {
			s.Logger.Error("record selection change", zap.Error(err))
		}
		s.window.Reset(pair)
	}

	s.setState(StateFetching)
	start := time.Now()
	snap, err := s.Fetcher.FetchTicker(ctx, pair)
	latency := time.Since(start)
	s.setState(StateIdle)

	out := presenter.OnTick(pair, s.window, snap, err)
	if err != nil {
		s.Logger.Warn("fetch failed", zap.String("pair", string(pair)), zap.Error(err))
	} else {
		if out.Evicted != nil {
			s.Logger.Debug("evicted oldest snapshot",
				zap.String("pair", string(pair)),
				zap.Time("timestamp", out.Evicted.Timestamp))
		}
		if ce := s.Logger.Check(zap.DebugLevel, "cycle complete"); ce != nil {
			ce.Write(
				zap.String("pair", string(pair)),
				zap.Int("window", out.WindowLen),
				zap.Duration("latency", latency),
				zap.String("render", presenter.FormatText(out)))
		}
	}

	if s.Publisher != nil {
		s.Publisher.Publish(out)
	}
	s.record(pair, out, err, latency)
	return out
}

func (s *Session) record(pair model.Pair, out presenter.Output, fetchErr error, latency time.Duration) {
	evt := &recorder.CycleEvent{
		Pair:      string(pair),
		Outcome:   recorder.OutcomeOK,
		WindowLen: out.WindowLen,
		LatencyMS: latency.Milliseconds(),
	}
	if fetchErr != nil {
		evt.Outcome = recorder.OutcomeFetchError
		evt.Error = fetchErr.Error()
		var fe *collector.FetchError
		if errors.As(fetchErr, &fe) {
			evt.StatusCode = fe.StatusCode
		}
	}
	if err := s.Recorder.RecordCycle(evt); err != nil {
		s.Logger.Error("record cycle", zap.Error(err))
	}
}
