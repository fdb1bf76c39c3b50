package collector

import (
	"context"

	"TickerBoard/internal/model"
)

// Fetcher retrieves the current ticker for a pair. Implementations issue
// exactly one upstream request per call and never retry.
type Fetcher interface {
	FetchTicker(ctx context.Context, pair model.Pair) (*model.Snapshot, error)
	Name() string
}
