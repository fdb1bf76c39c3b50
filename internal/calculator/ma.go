package calculator

import (
	"errors"

	"TickerBoard/internal/model"

	"github.com/shopspring/decimal"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []decimal.Decimal, period int) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, errors.New("period must be positive")
	}
	if len(prices) < period {
		return decimal.Zero, errors.New("not enough data for SMA calculation")
	}
	sum := decimal.Sum(decimal.Zero, prices[len(prices)-period:]...)
	return sum.Div(decimal.NewFromInt(int64(period))), nil
}

// CalculateMeanLast returns the average last-trade price across snaps.
func CalculateMeanLast(snaps []model.Snapshot) (decimal.Decimal, error) {
	return CalculateSMA(extractLasts(snaps), len(snaps))
}

func extractLasts(snaps []model.Snapshot) []decimal.Decimal {
	lasts := make([]decimal.Decimal, len(snaps))
	for i, s := range snaps {
		lasts[i] = s.Last
	}
	return lasts
}
