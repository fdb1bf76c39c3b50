// Package window holds the bounded, arrival-ordered buffer of snapshots the
// dashboard charts.
package window

import (
	"TickerBoard/internal/model"
)

// DefaultCapacity is the number of snapshots kept per pair.
const DefaultCapacity = 50

// SlidingWindow keeps at most Capacity snapshots of a single pair, oldest
// first. It is not safe for concurrent use; the owning session serializes
// access.
type SlidingWindow struct {
	pair     model.Pair
	capacity int
	items    []model.Snapshot
}

// New creates an empty window for pair. A non-positive capacity falls back
// to DefaultCapacity.
func New(pair model.Pair, capacity int) *SlidingWindow {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SlidingWindow{
		pair:     pair,
		capacity: capacity,
		items:    make([]model.Snapshot, 0, capacity),
	}
}

// Pair returns the pair the window currently tracks.
func (w *SlidingWindow) Pair() model.Pair { return w.pair }

// Capacity returns the maximum number of retained snapshots.
func (w *SlidingWindow) Capacity() int { return w.capacity }

// Len returns the number of retained snapshots.
func (w *SlidingWindow) Len() int { return len(w.items) }

// Append adds s at the newest end and, if that overflows the capacity,
// drops the single oldest snapshot. It returns the evicted snapshot, if any.
func (w *SlidingWindow) Append(s model.Snapshot) (evicted *model.Snapshot) {
	if len(w.items) == w.capacity {
		old := w.items[0]
		evicted = &old
		// Shift in place so the backing array never grows past capacity.
		copy(w.items, w.items[1:])
		w.items = w.items[:len(w.items)-1]
	}
	w.items = append(w.items, s)
	return evicted
}

// Reset empties the window and retargets it at pair.
func (w *SlidingWindow) Reset(pair model.Pair) {
	w.pair = pair
	w.items = w.items[:0]
}

// Snapshots returns a copy of the retained snapshots, oldest first.
func (w *SlidingWindow) Snapshots() []model.Snapshot {
	out := make([]model.Snapshot, len(w.items))
	copy(out, w.items)
	return out
}
