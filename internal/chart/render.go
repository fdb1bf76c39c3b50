// Package chart draws a presenter.Chart as an SVG document.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"TickerBoard/internal/presenter"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Options controls the canvas size, theme and the zone used for time labels.
type Options struct {
	Width      int
	Height     int
	Background string
	Foreground string
	Location   *time.Location
}

// DefaultOptions is a dark dashboard theme.
func DefaultOptions() Options {
	return Options{
		Width:      720,
		Height:     360,
		Background: "#111111",
		Foreground: "#f2f5fa",
		Location:   time.Local,
	}
}

// ErrNoData is returned for a chart without any points.
var ErrNoData = errors.New("chart has no points")

var namedColors = map[string]drawing.Color{
	"blue":  drawing.ColorBlue,
	"red":   drawing.ColorRed,
	"green": drawing.ColorGreen,
	"black": drawing.ColorBlack,
	"white": drawing.ColorWhite,
}

// Render returns c as SVG markup. Series without points are skipped; a chart
// with no points at all yields ErrNoData.
func Render(c *presenter.Chart, opts Options) (string, error) {
	if c == nil {
		return "", ErrNoData
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	xr, yr, ok := ranges(c)
	if !ok {
		return "", ErrNoData
	}

	fg := parseColor(opts.Foreground)
	bg := parseColor(opts.Background)
	axisStyle := gochart.Style{FontColor: fg, StrokeColor: fg}

	graph := gochart.Chart{
		Title:      c.Title,
		TitleStyle: gochart.Style{FontColor: fg, FontSize: 14},
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{
			FillColor: bg,
			Padding:   gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		Canvas: gochart.Style{FillColor: bg},
		XAxis: gochart.XAxis{
			Name:      c.XAxisTitle,
			NameStyle: gochart.Style{FontColor: fg},
			Style:     axisStyle,
			Range:     xr,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return time.Unix(0, int64(f)).In(opts.Location).Format("15:04:05")
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			Name:           c.YAxisTitle,
			NameStyle:      gochart.Style{FontColor: fg},
			Style:          axisStyle,
			Range:          yr,
			ValueFormatter: formatTick,
		},
	}
	for _, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		ts := gochart.TimeSeries{
			Name: s.Name,
			Style: gochart.Style{
				StrokeColor: parseColor(s.Color),
				StrokeWidth: 2,
			},
			XValues: make([]time.Time, len(s.Points)),
			YValues: make([]float64, len(s.Points)),
		}
		for i, p := range s.Points {
			ts.XValues[i] = p.Time
			ts.YValues[i] = p.Value
		}
		graph.Series = append(graph.Series, ts)
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(gochart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return buf.String(), nil
}

// ranges returns explicit axis ranges. A single timestamp or a flat series
// is padded so neither axis collapses to zero width.
func ranges(c *presenter.Chart) (x, y *gochart.ContinuousRange, ok bool) {
	var minT, maxT time.Time
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			if !ok || p.Time.Before(minT) {
				minT = p.Time
			}
			if !ok || p.Time.After(maxT) {
				maxT = p.Time
			}
			minV = math.Min(minV, p.Value)
			maxV = math.Max(maxV, p.Value)
			ok = true
		}
	}
	if !ok {
		return nil, nil, false
	}
	if !maxT.After(minT) {
		minT = minT.Add(-2500 * time.Millisecond)
		maxT = maxT.Add(2500 * time.Millisecond)
	}
	pad := (maxV - minV) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(maxV)*0.001, 1e-6)
	}
	x = &gochart.ContinuousRange{Min: float64(minT.UnixNano()), Max: float64(maxT.UnixNano())}
	y = &gochart.ContinuousRange{Min: minV - pad, Max: maxV + pad}
	return x, y, true
}

func parseColor(s string) drawing.Color {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c
	}
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

func formatTick(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	switch {
	case math.Abs(f) >= 1000:
		return fmt.Sprintf("%.0f", f)
	case math.Abs(f) >= 1:
		return fmt.Sprintf("%.2f", f)
	default:
		return fmt.Sprintf("%.6f", f)
	}
}
