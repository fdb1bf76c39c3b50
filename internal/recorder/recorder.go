package recorder

// Cycle outcomes.
const (
	OutcomeOK         = "OK"
	OutcomeFetchError = "FETCH_ERROR"
)

// CycleEvent records the outcome of one refresh cycle. Market values are
// deliberately absent: observations live only in the in-memory window.
type CycleEvent struct {
	Pair       string
	Outcome    string // OutcomeOK or OutcomeFetchError
	StatusCode int
	Error      string
	WindowLen  int
	LatencyMS  int64
}

// SelectionChange records a switch of the displayed pair.
type SelectionChange struct {
	From    string
	To      string
	Dropped int // snapshots discarded by the window reset
}

// Recorder journals refresh-loop activity for later inspection.
type Recorder interface {
	RecordCycle(evt *CycleEvent) error
	RecordSelectionChange(evt *SelectionChange) error
	Close() error
}
