package presenter

import (
	"fmt"
	"strings"

	"TickerBoard/internal/calculator"
	"TickerBoard/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatPrice renders a price in its shortest decimal form with at least one
// fractional digit: 42010 -> "42010.0", 42000.50 -> "42000.5".
func FormatPrice(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatGrouped renders d with thousands separators and two decimals.
func FormatGrouped(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// FormatSummary returns the metric lines for a snapshot.
func FormatSummary(s model.Snapshot) []string {
	base, quote := s.Pair.Base(), s.Pair.Quote()
	return []string{
		fmt.Sprintf("Last Price: $%s", FormatPrice(s.Last)),
		fmt.Sprintf("Bid Price: $%s", FormatPrice(s.Bid)),
		fmt.Sprintf("Ask Price: $%s", FormatPrice(s.Ask)),
		fmt.Sprintf("Volume (%s): %s %s", base, s.VolumeBase.StringFixed(2), base),
		fmt.Sprintf("Volume (%s): $%s %s", quote, FormatGrouped(s.VolumeQuote), quote),
	}
}

// FormatStats returns the window statistics lines; capacity is the window size.
func FormatStats(st calculator.WindowStats, capacity int) []string {
	return []string{
		fmt.Sprintf("Spread: $%s (%s%%)", st.Spread.StringFixed(2), st.SpreadPct.StringFixed(3)),
		fmt.Sprintf("Window High: $%s", FormatGrouped(st.High)),
		fmt.Sprintf("Window Low: $%s", FormatGrouped(st.Low)),
		fmt.Sprintf("Window Mean: $%s", FormatGrouped(st.Mean)),
		fmt.Sprintf("Range Position: %.0f%%", st.Position*100),
		fmt.Sprintf("RSI(%d): %.1f", calculator.RSIPeriod, st.RSI),
		fmt.Sprintf("Samples: %s/%s", humanize.Comma(int64(st.Samples)), humanize.Comma(int64(capacity))),
	}
}

// FormatText renders an output as plain text for logs and terminals.
func FormatText(o Output) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s | %s\n", o.Title, o.Subheading))
	if o.Notice != "" {
		b.WriteString(fmt.Sprintf("! %s\n", o.Notice))
	}
	for _, line := range o.Summary {
		b.WriteString(fmt.Sprintf("  %s\n", line))
	}
	if len(o.Stats) > 0 {
		b.WriteString("  ─────────────────\n")
		for _, line := range o.Stats {
			b.WriteString(fmt.Sprintf("  %s\n", line))
		}
	}
	return b.String()
}
