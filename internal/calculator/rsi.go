package calculator

import (
	"errors"

	"TickerBoard/internal/model"
)

// CalculateRSI computes the Wilder-smoothed RSI of last-trade prices over
// the given period. Returns 50 when there are fewer than period+1 snapshots.
func CalculateRSI(snaps []model.Snapshot, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(snaps) < period+1 {
		return 50.0, nil
	}

	closes := make([]float64, len(snaps))
	for i, s := range snaps {
		closes[i] = s.Last.InexactFloat64()
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0, nil
		}
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
