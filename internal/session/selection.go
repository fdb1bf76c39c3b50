package session

import (
	"fmt"
	"sync"

	"TickerBoard/internal/model"
)

// Selection is the user's currently chosen pair. Written by the display
// surface and read once per refresh cycle.
type Selection struct {
	mu   sync.RWMutex
	pair model.Pair
}

// NewSelection starts with pair, or model.DefaultPair if pair is invalid.
func NewSelection(pair model.Pair) *Selection {
	if !pair.Valid() {
		pair = model.DefaultPair
	}
	return &Selection{pair: pair}
}

// Get returns the selected pair.
func (s *Selection) Get() model.Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair
}

// Set changes the selection. It returns the previous pair and whether the
// selection actually changed.
func (s *Selection) Set(pair model.Pair) (prev model.Pair, changed bool, err error) {
	if !pair.Valid() {
		return "", false, fmt.Errorf("unsupported pair %q", pair)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev = s.pair
	s.pair = pair
	return prev, prev != pair, nil
}
