package calculator

import (
	"errors"

	"TickerBoard/internal/model"

	"github.com/shopspring/decimal"
)

// CalculateLastRange returns the highest and lowest last-trade price in snaps.
func CalculateLastRange(snaps []model.Snapshot) (high, low decimal.Decimal, err error) {
	if len(snaps) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no snapshots provided")
	}
	lasts := extractLasts(snaps)
	return decimal.Max(lasts[0], lasts[1:]...), decimal.Min(lasts[0], lasts[1:]...), nil
}

// CalculateSpread returns ask minus bid and that spread as a percentage of
// the mid price. A negative spread is returned as-is.
func CalculateSpread(s model.Snapshot) (spread, pct decimal.Decimal) {
	spread = s.Ask.Sub(s.Bid)
	mid := s.Ask.Add(s.Bid).Div(decimal.NewFromInt(2))
	if mid.IsZero() {
		return spread, decimal.Zero
	}
	return spread, spread.Div(mid).Mul(decimal.NewFromInt(100))
}

// CalculateRangePosition returns where current sits within [low, high] (0.0~1.0).
func CalculateRangePosition(current, high, low decimal.Decimal) (float64, error) {
	if high.Equal(low) {
		return 0.5, nil
	}
	if high.LessThan(low) {
		return 0, errors.New("high must be >= low")
	}
	pos := current.Sub(low).Div(high.Sub(low)).InexactFloat64()
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
