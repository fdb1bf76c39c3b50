package presenter

import (
	"time"

	"TickerBoard/internal/model"
)

// Output is everything the display needs for one cycle. A failed cycle
// carries only Notice; the display keeps showing the previous chart.
type Output struct {
	Pair       model.Pair      `json:"pair"`
	Title      string          `json:"title"`
	Subheading string          `json:"subheading"`
	Summary    []string        `json:"summary,omitempty"`
	Stats      []string        `json:"stats,omitempty"`
	Chart      *Chart          `json:"chart,omitempty"`
	Notice     string          `json:"notice,omitempty"`
	WindowLen  int             `json:"window_len"`
	WindowCap  int             `json:"window_cap"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Evicted    *model.Snapshot `json:"-"` // dropped from the window this cycle
}

// Failed reports whether the output is a failure notice only.
func (o Output) Failed() bool { return o.Chart == nil && o.Notice != "" }

// Chart describes a multi-series line chart of price against time.
type Chart struct {
	Title      string   `json:"title"`
	XAxisTitle string   `json:"x_axis_title"`
	YAxisTitle string   `json:"y_axis_title"`
	Series     []Series `json:"series"`
}

// Series is one named, colored trace.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Point pairs a window timestamp with a price.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}
