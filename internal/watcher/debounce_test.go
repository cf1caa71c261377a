package watcher

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_Add_SingleFile(t *testing.T) {
	t.Parallel()

	var called atomic.Int32
	var mu sync.Mutex
	var calledPath string

	delay := 50 * time.Millisecond
	d := NewDebouncer(delay, func(path string) {
		mu.Lock()
		calledPath = path
		mu.Unlock()
		called.Add(1)
	})

	d.Add("/inbox/a.pdf")
	if d.Pending() != 1 {
		t.Errorf("expected 1 pending, got %d", d.Pending())
	}

	time.Sleep(delay + 50*time.Millisecond)

	if called.Load() != 1 {
		t.Errorf("expected callback once, got %d", called.Load())
	}
	mu.Lock()
	if calledPath != "/inbox/a.pdf" {
		t.Errorf("expected /inbox/a.pdf, got %s", calledPath)
	}
	mu.Unlock()
	if d.Pending() != 0 {
		t.Errorf("expected 0 pending, got %d", d.Pending())
	}
}

func TestDebouncer_Add_CoalescesRapidEvents(t *testing.T) {
	t.Parallel()

	var called atomic.Int32
	delay := 80 * time.Millisecond
	d := NewDebouncer(delay, func(string) { called.Add(1) })

	for range 5 {
		d.Add("/inbox/a.pdf")
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(delay + 60*time.Millisecond)

	if called.Load() != 1 {
		t.Errorf("expected callback once, got %d", called.Load())
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	t.Parallel()

	var called atomic.Int32
	delay := 50 * time.Millisecond
	d := NewDebouncer(delay, func(string) { called.Add(1) })

	d.Add("/inbox/a.pdf")
	d.Add("/inbox/b.pdf")
	d.Cancel("/inbox/a.pdf")
	if d.Pending() != 1 {
		t.Errorf("expected 1 pending, got %d", d.Pending())
	}
	d.CancelAll()

	time.Sleep(delay + 50*time.Millisecond)

	if called.Load() != 0 {
		t.Errorf("expected no callbacks, got %d", called.Load())
	}
}
