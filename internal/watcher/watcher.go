package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when WithDebounce is not given.
const DefaultDebounce = 2 * time.Second

// queueSize bounds how many debounced paths may wait for the handler.
const queueSize = 64

// Handler processes one new document. It is never called concurrently.
type Handler func(ctx context.Context, path string) error

// Summary counts what happened while watching.
type Summary struct {
	Handled  int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// Watcher hands new PDF files in watched directories to a Handler.
type Watcher struct {
	handler  Handler
	filter   *Filter
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	summary Summary
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a file is handed over.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithIgnorePatterns replaces the default ignore patterns.
func WithIgnorePatterns(patterns []string) Option {
	return func(w *Watcher) {
		w.filter = NewFilter(patterns)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a Watcher that calls handler for every accepted file.
func New(handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		handler:  handler,
		filter:   NewFilter(nil),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w
}

// Run watches dirs until ctx is done and returns what was processed.
// A handler that is running when ctx is done is allowed to finish; files
// still waiting are dropped.
func (w *Watcher) Run(ctx context.Context, dirs []string) (Summary, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return Summary{}, err
		}
		if err := fsw.Add(abs); err != nil {
			return Summary{}, fmt.Errorf("failed to watch %s: %w", abs, err)
		}
		w.logger.Info("watching directory", "dir", abs)
	}

	start := time.Now()
	ready := make(chan string, queueSize)
	debouncer := NewDebouncer(w.debounce, func(path string) {
		select {
		case ready <- path:
		case <-ctx.Done():
		}
	})
	defer debouncer.CancelAll()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.work(ctx, ready)
	}()

	w.loop(ctx, fsw, debouncer)
	wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.summary.Duration = time.Since(start)
	return w.summary, nil
}

// loop forwards accepted fsnotify events to the debouncer until ctx is done.
func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, debouncer *Debouncer) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.filter.Accept(event.Name) {
				w.logger.Debug("skipping file", "path", event.Name)
				w.count(func(s *Summary) { s.Skipped++ })
				continue
			}
			debouncer.Add(event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// work calls the handler for every ready path, one at a time.
func (w *Watcher) work(ctx context.Context, ready <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-ready:
			w.logger.Info("new document", "path", path)
			if err := w.handler(ctx, path); err != nil {
				w.count(func(s *Summary) { s.Failed++ })
				continue
			}
			w.count(func(s *Summary) { s.Handled++ })
		}
	}
}

func (w *Watcher) count(update func(*Summary)) {
	w.mu.Lock()
	update(&w.summary)
	w.mu.Unlock()
}
