package window

import (
	"testing"
	"time"

	"TickerBoard/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapAt(i int) model.Snapshot {
	return model.Snapshot{
		Pair:      model.PairBTCUSD,
		Timestamp: time.Unix(1700000000+int64(i)*5, 0),
		Last:      decimal.NewFromInt(int64(40000 + i)),
	}
}

func TestNew_DefaultCapacity(t *testing.T) {
	w := New(model.PairBTCUSD, 0)
	assert.Equal(t, DefaultCapacity, w.Capacity())
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Snapshots())
}

func TestAppend_LengthIsMinOfCountAndCapacity(t *testing.T) {
	w := New(model.PairBTCUSD, DefaultCapacity)
	for i := 1; i <= 120; i++ {
		w.Append(snapAt(i))
		want := i
		if want > DefaultCapacity {
			want = DefaultCapacity
		}
		require.Equal(t, want, w.Len(), "after %d appends", i)
	}
}

func TestAppend_EvictsOldestAtCapacity(t *testing.T) {
	w := New(model.PairBTCUSD, DefaultCapacity)
	for i := 0; i < DefaultCapacity; i++ {
		assert.Nil(t, w.Append(snapAt(i)))
	}
	before := w.Snapshots()

	evicted := w.Append(snapAt(DefaultCapacity))
	require.NotNil(t, evicted)
	assert.Equal(t, before[0], *evicted)

	after := w.Snapshots()
	assert.Len(t, after, DefaultCapacity)
	assert.Equal(t, before[1], after[0], "second-oldest becomes oldest")
	assert.Equal(t, snapAt(DefaultCapacity), after[len(after)-1])
}

func TestAppend_FiftyOneFetchesKeepSecondThroughLast(t *testing.T) {
	w := New(model.PairBTCUSD, DefaultCapacity)
	for i := 1; i <= 51; i++ {
		w.Append(snapAt(i))
	}
	got := w.Snapshots()
	require.Len(t, got, 50)
	for i, s := range got {
		assert.Equal(t, snapAt(i+2), s)
	}
}

func TestSnapshots_OrderedByTimestamp(t *testing.T) {
	w := New(model.PairBTCUSD, 10)
	for i := 0; i < 25; i++ {
		w.Append(snapAt(i))
	}
	got := w.Snapshots()
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Timestamp.Before(got[i-1].Timestamp))
	}
}

func TestSnapshots_ReturnsCopy(t *testing.T) {
	w := New(model.PairBTCUSD, 3)
	w.Append(snapAt(1))
	got := w.Snapshots()
	got[0].Last = decimal.Zero

	assert.Equal(t, snapAt(1), w.Snapshots()[0])
}

func TestReset(t *testing.T) {
	w := New(model.PairBTCUSD, 3)
	w.Append(snapAt(1))
	w.Append(snapAt(2))

	w.Reset(model.PairETHUSD)
	assert.Equal(t, model.PairETHUSD, w.Pair())
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 3, w.Capacity())
}
