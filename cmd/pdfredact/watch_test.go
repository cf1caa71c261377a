package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/pdfredact/internal/batch"
	"github.com/nao1215/pdfredact/internal/model"
	"github.com/nao1215/pdfredact/internal/report"
	"github.com/nao1215/pdfredact/internal/session"
)

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestNewWatchCmd tests the watch command creation.
func TestNewWatchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewWatchCmd()
	for _, name := range []string{"api-url", "debounce", "ignore", "latest-wins", "json", "output"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if cmd.Flags().Lookup("batch") != nil {
		t.Error("watch submits one document at a time and has no batch flag")
	}
}

// TestCheckDirs tests the directory precondition of watch.
func TestCheckDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.pdf")
	if err := os.WriteFile(file, []byte("%PDF"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := checkDirs([]string{dir}); err != nil {
		t.Errorf("unexpected error for directory: %v", err)
	}
	if err := checkDirs([]string{dir, file}); err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("expected not a directory error, got %v", err)
	}
	if err := checkDirs([]string{filepath.Join(dir, "missing")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

// TestWatchHandler tests that each handled document is reported from the
// shared session.
func TestWatchHandler(t *testing.T) {
	t.Parallel()

	srv := newService(t)
	ctrl, err := newController(testConfig(srv), discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	h := &watchHandler{
		proc:    batch.NewProcessor(ctrl, batch.WithLogger(discardLogger())),
		session: session.New(session.WithLogger(discardLogger())),
		writer:  report.NewJSONWriter(&out),
		view:    report.NewView,
		logger:  discardLogger(),
	}
	paths := writeFiles(t, "first.pdf")

	t.Run("success is reported", func(t *testing.T) {
		if err := h.handle(context.Background(), paths[0]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), `"status":"redacted"`) {
			t.Errorf("expected redacted view, got %s", out.String())
		}
	})

	t.Run("unreadable file is reported under its own name", func(t *testing.T) {
		out.Reset()
		missing := filepath.Join(t.TempDir(), "second.pdf")

		err := h.handle(context.Background(), missing)
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected *model.ValidationError, got %v", err)
		}
		got := out.String()
		if !strings.Contains(got, `"file":"second.pdf"`) || strings.Contains(got, `"digest"`) {
			t.Errorf("expected view of second.pdf without digest, got %s", got)
		}
		if h.session.File().Name != "first.pdf" {
			t.Errorf("session file changed to %q", h.session.File().Name)
		}
	})
}

// TestRunWatch tests watching a directory until cancellation.
func TestRunWatch(t *testing.T) {
	t.Parallel()

	srv := newService(t)
	dir := t.TempDir()
	cfg := testConfig(srv, dir)
	cfg.WatchDebounce = 50 * time.Millisecond
	cfg.HidePageText = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, cfg, discardLogger(), &stdout, &stderr)
	}()

	// Wait for the watcher to announce itself before writing.
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(stderr.String(), "Watching") {
		if time.Now().After(deadline) {
			t.Fatal("watcher did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "scan.pdf"), []byte("%PDF-1.7"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scan.pdf.part"), []byte("partial"), 0600); err != nil {
		t.Fatal(err)
	}

	for !strings.Contains(stdout.String(), "scan.pdf") {
		if time.Now().After(deadline) {
			t.Fatalf("no report for scan.pdf; stdout:\n%s", stdout.String())
		}
		time.Sleep(20 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not stop after cancel")
	}

	if strings.Contains(stdout.String(), "scan.pdf.part") {
		t.Error("partial download should be ignored")
	}
	if !strings.Contains(stderr.String(), "Redacted: 1") {
		t.Errorf("expected summary on stderr, got %q", stderr.String())
	}
}
