package menu

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryDebouncerLatestWins(t *testing.T) {
	q := NewQueryDebouncer(20 * time.Millisecond)
	for _, v := range []string{"d", "da", "das", "dash"} {
		q.Push(v)
	}

	select {
	case got := <-q.C():
		assert.Equal(t, "dash", got)
	case <-time.After(time.Second):
		t.Fatal("no value published")
	}

	select {
	case got := <-q.C():
		t.Fatalf("unexpected second value %q", got)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestQueryDebouncerCancel(t *testing.T) {
	q := NewQueryDebouncer(20 * time.Millisecond)
	q.Push("dash")
	q.Cancel()

	select {
	case got := <-q.C():
		t.Fatalf("cancelled value %q published", got)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestQueryDebouncerZeroDelay(t *testing.T) {
	q := NewQueryDebouncer(0)
	q.Push("a")
	q.Push("ab")

	// Unread values are replaced, so only the newest is waiting.
	require.Len(t, q.C(), 1)
	assert.Equal(t, "ab", <-q.C())
}

func TestDebouncerPending(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls atomic.Int32

	assert.False(t, d.Pending())
	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Pending())

	d.Cancel()
	assert.False(t, d.Pending())
	assert.Zero(t, calls.Load())
}

func TestDebouncerRunsOnce(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32
	done := make(chan struct{}, 4)

	for i := 0; i < 4; i++ {
		d.Trigger(func() {
			calls.Add(1)
			done <- struct{}{}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
}
