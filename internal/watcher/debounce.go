package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid events for the same path into one callback that
// fires after the path has been quiet for the delay.
type Debouncer struct {
	delay    time.Duration
	callback func(path string)

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewDebouncer creates a Debouncer that calls callback for each path once
// no event for it arrived for delay.
func NewDebouncer(delay time.Duration, callback func(path string)) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: callback,
		pending:  make(map[string]*time.Timer),
	}
}

// Add schedules path, restarting its timer if it is already pending.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[path]; ok {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A later Add may have replaced this timer after it fired.
		if d.pending[path] != timer {
			d.mu.Unlock()
			return
		}
		delete(d.pending, path)
		d.mu.Unlock()

		d.callback(path)
	})
	d.pending[path] = timer
}

// Cancel drops path if it is pending.
func (d *Debouncer) Cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[path]; ok {
		timer.Stop()
		delete(d.pending, path)
	}
}

// CancelAll drops every pending path.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, timer := range d.pending {
		timer.Stop()
		delete(d.pending, path)
	}
}

// Pending returns the number of paths waiting for their delay to expire.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
