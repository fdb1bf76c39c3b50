package collector

import (
	"fmt"

	"TickerBoard/internal/model"
)

// FetchError is the only failure a Fetcher reports. It covers transport
// errors, non-200 responses and bodies that do not match the ticker shape.
type FetchError struct {
	Pair       model.Pair
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Pair, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Pair, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
