// Package presenter turns fetch results into display output and maintains
// the sliding window on each refresh cycle.
package presenter

import (
	"fmt"

	"TickerBoard/internal/calculator"
	"TickerBoard/internal/model"
	"TickerBoard/internal/window"
)

const (
	PageTitle    = "Real-Time Cryptocurrency Data"
	NoDataNotice = "No data available for the selected cryptocurrency pair."
	XAxisTitle   = "Time"
	YAxisTitle   = "Price (USD)"
	SeriesBid    = "Bid Price"
	SeriesAsk    = "Ask Price"
	SeriesLast   = "Last Price"
	ColorBid     = "blue"
	ColorAsk     = "red"
	ColorLast    = "green"
)

// Subheading returns the pair-specific heading.
func Subheading(pair model.Pair) string {
	return fmt.Sprintf("Market Information for %s", pair.Display())
}

// ChartTitle returns the chart title for pair.
func ChartTitle(pair model.Pair) string {
	return "Live Prices for " + pair.Display()
}

// OnTick applies one cycle's fetch result to w and renders it. On success
// snap is appended (evicting the oldest entry past capacity). On failure,
// or when snap is nil, w is left untouched and only a notice is returned.
func OnTick(pair model.Pair, w *window.SlidingWindow, snap *model.Snapshot, fetchErr error) Output {
	out := Output{
		Pair:       pair,
		Title:      PageTitle,
		Subheading: Subheading(pair),
	}
	if fetchErr != nil || snap == nil {
		out.Notice = NoDataNotice
		out.WindowLen = w.Len()
		out.WindowCap = w.Capacity()
		return out
	}

	out.Evicted = w.Append(*snap)
	snaps := w.Snapshots()

	out.Summary = FormatSummary(*snap)
	if st, ok := calculator.Compute(snaps); ok {
		out.Stats = FormatStats(st, w.Capacity())
	}
	out.Chart = buildChart(pair, snaps)
	out.WindowLen = len(snaps)
	out.WindowCap = w.Capacity()
	out.UpdatedAt = snap.Timestamp
	return out
}

func buildChart(pair model.Pair, snaps []model.Snapshot) *Chart {
	bid := Series{Name: SeriesBid, Color: ColorBid, Points: make([]Point, len(snaps))}
	ask := Series{Name: SeriesAsk, Color: ColorAsk, Points: make([]Point, len(snaps))}
	last := Series{Name: SeriesLast, Color: ColorLast, Points: make([]Point, len(snaps))}
	for i, s := range snaps {
		bid.Points[i] = Point{Time: s.Timestamp, Value: s.Bid.InexactFloat64()}
		ask.Points[i] = Point{Time: s.Timestamp, Value: s.Ask.InexactFloat64()}
		last.Points[i] = Point{Time: s.Timestamp, Value: s.Last.InexactFloat64()}
	}
	return &Chart{
		Title:      ChartTitle(pair),
		XAxisTitle: XAxisTitle,
		YAxisTitle: YAxisTitle,
		Series:     []Series{bid, ask, last},
	}
}
