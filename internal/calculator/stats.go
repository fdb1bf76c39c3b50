package calculator

import (
	"TickerBoard/internal/model"

	"github.com/shopspring/decimal"
)

// RSIPeriod is the lookback used for the window momentum figure.
const RSIPeriod = 14

// WindowStats summarizes the retained snapshots of one pair.
type WindowStats struct {
	Samples   int
	Spread    decimal.Decimal
	SpreadPct decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Mean      decimal.Decimal
	Position  float64 // latest last price within [Low, High]
	RSI       float64
}

// Compute returns statistics for snaps (oldest first). ok is false when
// snaps is empty.
func Compute(snaps []model.Snapshot) (stats WindowStats, ok bool) {
	if len(snaps) == 0 {
		return WindowStats{}, false
	}
	latest := snaps[len(snaps)-1]
	stats.Samples = len(snaps)
	stats.Spread, stats.SpreadPct = CalculateSpread(latest)
	stats.High, stats.Low, _ = CalculateLastRange(snaps)
	stats.Mean, _ = CalculateMeanLast(snaps)
	stats.Position, _ = CalculateRangePosition(latest.Last, stats.High, stats.Low)
	stats.RSI, _ = CalculateRSI(snaps, RSIPeriod)
	return stats, true
}
