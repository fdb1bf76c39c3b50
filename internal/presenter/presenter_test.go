package presenter

import (
	"errors"
	"testing"
	"time"

	"TickerBoard/internal/collector"
	"TickerBoard/internal/model"
	"TickerBoard/internal/window"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func btcSnapshot(ts int64) model.Snapshot {
	return model.Snapshot{
		Pair:        model.PairBTCUSD,
		Timestamp:   time.Unix(ts, 0),
		Bid:         d("42000.5"),
		Ask:         d("42010.0"),
		Last:        d("42005.25"),
		VolumeBase:  d("120.4"),
		VolumeQuote: d("5060000.0"),
	}
}

func TestOnTick_FirstSnapshotScenario(t *testing.T) {
	w := window.New(model.PairBTCUSD, window.DefaultCapacity)
	snap := btcSnapshot(1700000000)

	out := OnTick(model.PairBTCUSD, w, &snap, nil)

	assert.Equal(t, 1, w.Len())
	assert.Equal(t, 1, out.WindowLen)
	assert.Nil(t, out.Evicted)
	assert.False(t, out.Failed())
	assert.Empty(t, out.Notice)
	assert.Equal(t, PageTitle, out.Title)
	assert.Equal(t, "Market Information for BTCUSD", out.Subheading)
	assert.Equal(t, []string{
		"Last Price: $42005.25",
		"Bid Price: $42000.5",
		"Ask Price: $42010.0",
		"Volume (BTC): 120.40 BTC",
		"Volume (USD): $5,060,000.00 USD",
	}, out.Summary)
	assert.Equal(t, time.Unix(1700000000, 0), out.UpdatedAt)
}

func TestOnTick_ChartSeries(t *testing.T) {
	w := window.New(model.PairBTCUSD, window.DefaultCapacity)
	for i := int64(0); i < 3; i++ {
		snap := btcSnapshot(1700000000 + i*5)
		OnTick(model.PairBTCUSD, w, &snap, nil)
	}
	snap := btcSnapshot(1700000015)
	out := OnTick(model.PairBTCUSD, w, &snap, nil)

	require.NotNil(t, out.Chart)
	assert.Equal(t, "Live Prices for BTCUSD", out.Chart.Title)
	assert.Equal(t, "Time", out.Chart.XAxisTitle)
	assert.Equal(t, "Price (USD)", out.Chart.YAxisTitle)
	require.Len(t, out.Chart.Series, 3)

	names := map[string]string{}
	for _, s := range out.Chart.Series {
		names[s.Name] = s.Color
		require.Len(t, s.Points, 4)
		for i, p := range s.Points {
			assert.Equal(t, time.Unix(1700000000+int64(i)*5, 0), p.Time)
		}
	}
	assert.Equal(t, map[string]string{"Bid Price": "blue", "Ask Price": "red", "Last Price": "green"}, names)
	assert.Equal(t, 42000.5, out.Chart.Series[0].Points[0].Value)
	assert.Equal(t, 42010.0, out.Chart.Series[1].Points[0].Value)
	assert.Equal(t, 42005.25, out.Chart.Series[2].Points[0].Value)
	assert.NotEmpty(t, out.Stats)
}

func TestOnTick_FailureLeavesWindowUnchanged(t *testing.T) {
	w := window.New(model.PairBTCUSD, window.DefaultCapacity)
	snap := btcSnapshot(1700000000)
	OnTick(model.PairBTCUSD, w, &snap, nil)
	before := w.Snapshots()

	fetchErr := &collector.FetchError{Pair: model.PairBTCUSD, StatusCode: 500, Err: errors.New("upstream")}
	out := OnTick(model.PairBTCUSD, w, nil, fetchErr)

	assert.True(t, out.Failed())
	assert.Equal(t, NoDataNotice, out.Notice)
	assert.Nil(t, out.Chart)
	assert.Empty(t, out.Summary)
	assert.Equal(t, before, w.Snapshots())
	assert.Equal(t, 1, out.WindowLen)
}

func TestOnTick_ErrorWinsOverSnapshot(t *testing.T) {
	w := window.New(model.PairBTCUSD, window.DefaultCapacity)
	snap := btcSnapshot(1700000000)
	out := OnTick(model.PairBTCUSD, w, &snap, errors.New("partial"))
	assert.True(t, out.Failed())
	assert.Equal(t, 0, w.Len())
}

func TestOnTick_FiftyOneFetches(t *testing.T) {
	w := window.New(model.PairBTCUSD, window.DefaultCapacity)
	var out Output
	for i := int64(1); i <= 51; i++ {
		snap := btcSnapshot(1700000000 + i)
		out = OnTick(model.PairBTCUSD, w, &snap, nil)
	}
	assert.Equal(t, 50, out.WindowLen)
	assert.Equal(t, 50, out.WindowCap)
	require.NotNil(t, out.Evicted)
	assert.Equal(t, time.Unix(1700000001, 0), out.Evicted.Timestamp)
	assert.Contains(t, out.Stats, "Samples: 50/50")
	pts := out.Chart.Series[0].Points
	require.Len(t, pts, 50)
	assert.Equal(t, time.Unix(1700000002, 0), pts[0].Time)
	assert.Equal(t, time.Unix(1700000051, 0), pts[49].Time)
}

func TestFormatPrice(t *testing.T) {
	tests := map[string]string{
		"42010.0":  "42010.0",
		"42000.50": "42000.5",
		"0.5":      "0.5",
		"1":        "1.0",
		"2.345678": "2.345678",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPrice(d(in)), in)
	}
}

func TestFormatSummary_UsesPairAssets(t *testing.T) {
	lines := FormatSummary(model.Snapshot{
		Pair:        model.PairETHUSD,
		Bid:         d("2500"),
		Ask:         d("2501"),
		Last:        d("2500.5"),
		VolumeBase:  d("3.14159"),
		VolumeQuote: d("1234.5"),
	})
	assert.Equal(t, "Volume (ETH): 3.14 ETH", lines[3])
	assert.Equal(t, "Volume (USD): $1,234.50 USD", lines[4])
}

func TestFormatText(t *testing.T) {
	out := Output{
		Title:      PageTitle,
		Subheading: Subheading(model.PairXRPUSD),
		Notice:     NoDataNotice,
	}
	text := FormatText(out)
	assert.Contains(t, text, "Market Information for XRPUSD")
	assert.Contains(t, text, NoDataNotice)
}
