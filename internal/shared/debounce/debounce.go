// Package debounce coalesces rapid successive triggers into a single call
// after a quiet period. Used to keep filter recomputation from firing on
// every keystroke of the price-range inputs.
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period applied when none is configured.
const DefaultQuiet = 500 * time.Millisecond

// Debouncer invokes the most recently scheduled function once no new
// trigger has arrived for the quiet period. Last write wins: a newer
// Trigger supersedes and cancels any pending one.
type Debouncer struct {
	mu    sync.Mutex
	quiet time.Duration
	timer *time.Timer
	fn    func()
}

// New builds a Debouncer with the given quiet period; non-positive values
// fall back to DefaultQuiet.
func New(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// previously pending invocation.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

// Cancel drops any pending invocation without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}

// Flush runs the pending invocation immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.fn
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}
