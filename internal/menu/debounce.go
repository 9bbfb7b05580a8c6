package menu

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet window before a typed query is committed.
const DefaultSearchDebounce = 200 * time.Millisecond

// Debouncer runs the last triggered function once no new trigger arrived for
// the configured delay. A newer trigger stops the pending timer, and a
// generation check keeps a timer that already fired from running stale work.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64

	// run serializes callbacks so a newer one always finishes last
	run sync.Mutex
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing anything pending.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen

	d.timer = time.AfterFunc(d.delay, func() {
		d.run.Lock()
		defer d.run.Unlock()

		d.mu.Lock()
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// QueryDebouncer coalesces raw search input and publishes only the value
// that survived the quiet window.
type QueryDebouncer struct {
	debouncer *Debouncer
	out       chan string
}

// NewQueryDebouncer creates a query debouncer. A zero delay publishes
// every value immediately.
func NewQueryDebouncer(delay time.Duration) *QueryDebouncer {
	return &QueryDebouncer{
		debouncer: NewDebouncer(delay),
		out:       make(chan string, 1),
	}
}

// Push records a raw input value.
func (q *QueryDebouncer) Push(raw string) {
	if q.debouncer.delay <= 0 {
		q.debouncer.Cancel()
		q.publish(raw)
		return
	}
	q.debouncer.Trigger(func() { q.publish(raw) })
}

// C delivers committed values.
func (q *QueryDebouncer) C() <-chan string {
	return q.out
}

// Cancel drops any value still inside its quiet window.
func (q *QueryDebouncer) Cancel() {
	q.debouncer.Cancel()
}

// publish replaces an unread value so a slow reader only sees the latest one.
func (q *QueryDebouncer) publish(v string) {
	for {
		select {
		case q.out <- v:
			return
		default:
		}
		select {
		case <-q.out:
		default:
		}
	}
}
