package chart

import (
	"testing"
	"time"

	"TickerBoard/internal/presenter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChart() *presenter.Chart {
	t0 := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	mk := func(name, color string, base float64) presenter.Series {
		return presenter.Series{Name: name, Color: color, Points: []presenter.Point{
			{Time: t0, Value: base},
			{Time: t0.Add(5 * time.Second), Value: base + 2},
			{Time: t0.Add(10 * time.Second), Value: base + 1},
		}}
	}
	return &presenter.Chart{
		Title:      "Live Prices for BTCUSD",
		XAxisTitle: "Time",
		YAxisTitle: "Price (USD)",
		Series: []presenter.Series{
			mk("Bid Price", "blue", 42000),
			mk("Ask Price", "red", 42010),
			mk("Last Price", "green", 42005),
		},
	}
}

func TestRender(t *testing.T) {
	opts := DefaultOptions()
	opts.Location = time.UTC
	svg, err := Render(sampleChart(), opts)
	require.NoError(t, err)

	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "</svg>")
	assert.Contains(t, svg, "Live Prices for BTCUSD")
	assert.Contains(t, svg, "Bid Price")
	assert.Contains(t, svg, "Ask Price")
	assert.Contains(t, svg, "Last Price")
	assert.NotContains(t, svg, "NaN")
}

func TestRender_NoData(t *testing.T) {
	tests := []struct {
		name  string
		chart *presenter.Chart
	}{
		{"nil", nil},
		{"no series", &presenter.Chart{Title: "empty"}},
		{"empty series", &presenter.Chart{Series: []presenter.Series{{Name: "Bid Price", Color: "blue"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg, err := Render(tt.chart, DefaultOptions())
			assert.ErrorIs(t, err, ErrNoData)
			assert.Empty(t, svg)
		})
	}
}

func TestRender_SinglePointFlatSeries(t *testing.T) {
	c := &presenter.Chart{Series: []presenter.Series{{
		Name: "Last Price", Color: "green",
		Points: []presenter.Point{{Time: time.Unix(1700000000, 0), Value: 5}},
	}}}
	svg, err := Render(c, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")
	assert.NotContains(t, svg, "NaN")
}

func TestRanges_PadsDegenerateAxes(t *testing.T) {
	c := &presenter.Chart{Series: []presenter.Series{{
		Points: []presenter.Point{{Time: time.Unix(100, 0), Value: 42}},
	}}}
	x, y, ok := ranges(c)
	require.True(t, ok)
	assert.Equal(t, float64(time.Unix(100, 0).Add(-2500*time.Millisecond).UnixNano()), x.Min)
	assert.Equal(t, float64(time.Unix(100, 0).Add(2500*time.Millisecond).UnixNano()), x.Max)
	assert.Less(t, y.Min, 42.0)
	assert.Greater(t, y.Max, 42.0)
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, namedColors["blue"], parseColor("Blue"))
	assert.Equal(t, uint8(0x11), parseColor("#111111").R)
}
