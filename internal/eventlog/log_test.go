package eventlog

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestAppendBatch_PrependsPreservingOrder(t *testing.T) {
	l := New()

	l.AppendBatch("step1", "step2")
	l.AppendBatch("step3")

	assert.Equal(t, []string{"step3", "step1", "step2"}, texts(l.All()))
}

func TestAppendBatch_WholeBatchPrecedesExisting(t *testing.T) {
	l := New()
	l.AppendBatch("old1", "old2")
	l.AppendBatch("a", "b", "c")

	assert.Equal(t, []string{"a", "b", "c", "old1", "old2"}, texts(l.All()))
}

func TestAppendBatch_SharesTimestamp(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	l := New(WithClock(fixedClock(ts)))

	batch := l.AppendBatch("x", "y", "z")
	require.Len(t, batch, 3)
	for _, e := range batch {
		assert.True(t, e.Time.Equal(ts))
	}
}

func TestAppendBatch_IDsUniqueWithIdenticalTimestamps(t *testing.T) {
	l := New(WithClock(fixedClock(time.Unix(0, 0))))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		for _, e := range l.AppendBatch("a", "b", "c") {
			assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
			seen[e.ID] = true
		}
	}
	assert.Len(t, seen, 150)
}

func TestAppendBatch_SeqIncreases(t *testing.T) {
	l := New(WithIDFunc(func(seq uint64) string { return fmt.Sprintf("e-%d", seq) }))

	first := l.AppendBatch("a", "b")
	second := l.AppendBatch("c")

	assert.Equal(t, uint64(1), first[0].Seq)
	assert.Equal(t, uint64(2), first[1].Seq)
	assert.Equal(t, uint64(3), second[0].Seq)
	assert.Equal(t, "e-3", second[0].ID)
}

func TestAppendBatch_EmptyIsNoop(t *testing.T) {
	l := New()
	assert.Nil(t, l.AppendBatch())
	assert.Equal(t, 0, l.Len())
}

func TestAppendBatch_ReturnedSliceIsIndependent(t *testing.T) {
	l := New()
	batch := l.AppendBatch("a")
	batch[0].Text = "mutated"

	assert.Equal(t, []string{"a"}, texts(l.All()))
}

func TestWithMaxEntries_DropsOldest(t *testing.T) {
	l := New(WithMaxEntries(4))

	l.AppendBatch("1", "2", "3")
	l.AppendBatch("4", "5")

	assert.Equal(t, []string{"4", "5", "1", "2"}, texts(l.All()))
}

func TestWithMaxEntries_NegativeIsUnbounded(t *testing.T) {
	l := New(WithMaxEntries(-1))
	for i := 0; i < 20; i++ {
		l.AppendBatch("x")
	}
	assert.Equal(t, 20, l.Len())
}

func TestClear(t *testing.T) {
	l := New()
	l.AppendBatch("a", "b")

	assert.Equal(t, 2, l.Clear())
	assert.Empty(t, l.All())
	assert.Equal(t, 0, l.Clear())

	// Sequence numbers keep increasing after a clear.
	batch := l.AppendBatch("c")
	assert.Equal(t, uint64(3), batch[0].Seq)
}

func TestAll_ReturnsCopy(t *testing.T) {
	l := New()
	l.AppendBatch("a")

	got := l.All()
	got[0].Text = "mutated"

	assert.Equal(t, "a", l.All()[0].Text)
}

func TestAppendBatch_ConcurrentBatchesStayContiguous(t *testing.T) {
	l := New()

	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			l.AppendBatch(fmt.Sprintf("%d-1", w), fmt.Sprintf("%d-2", w), fmt.Sprintf("%d-3", w))
		}(w)
	}
	wg.Wait()

	all := texts(l.All())
	require.Len(t, all, 30)
	for i := 0; i < len(all); i += 3 {
		var w int
		_, err := fmt.Sscanf(all[i], "%d-1", &w)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d-2", w), all[i+1])
		assert.Equal(t, fmt.Sprintf("%d-3", w), all[i+2])
	}
}
