// Package debounce coalesces bursts of calls into a single trailing call.
package debounce

import (
	"sync"
	"time"

	"prodsearch/internal/clock"
)

// Debouncer delays fn until delay has passed without another Trigger,
// then calls it once with the argument of the last Trigger.
type Debouncer[T any] struct {
	clock clock.Clock
	delay time.Duration
	fn    func(T)

	mu    sync.Mutex
	timer clock.Timer
	gen   uint64
}

// New returns a Debouncer. The Debouncer should live as long as its owner;
// creating a new one per call defeats the coalescing.
func New[T any](clk clock.Clock, delay time.Duration, fn func(T)) *Debouncer[T] {
	if clk == nil {
		clk = clock.Real()
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{clock: clk, delay: delay, fn: fn}
}

// Trigger cancels the pending call, if any, and schedules fn(v) after the
// delay.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen, v) })
}

// fire runs fn unless a later Trigger or Stop superseded this timer. The
// generation check covers timers whose goroutine already woke up when
// Stop was called.
func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Stop cancels the pending call without running it. It reports whether a
// call was pending.
func (d *Debouncer[T]) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Delay returns the quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}
