package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// progress prints a single self-overwriting status line while a batch runs.
// It is silent unless the destination is a terminal.
type progress struct {
	mu     sync.Mutex
	w      io.Writer
	active bool
	total  int
	done   int
	width  int
}

// newProgress returns a progress line on w. It is enabled only when w is a
// terminal and quiet is false.
func newProgress(w io.Writer, total int, quiet bool) *progress {
	p := &progress{w: w, total: total}
	if f, ok := w.(*os.File); ok && !quiet && term.IsTerminal(int(f.Fd())) {
		p.active = true
	}
	return p
}

// step records one finished document.
func (p *progress) step(name string, failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if !p.active {
		return
	}
	state := "redacted"
	if failed {
		state = "failed"
	}
	line := fmt.Sprintf("[%d/%d] %s: %s", p.done, p.total, name, state)
	pad := ""
	if n := p.width - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	p.width = len(line)
	fmt.Fprint(p.w, "\r"+line+pad)
}

// finish clears the line.
func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active && p.width > 0 {
		fmt.Fprint(p.w, "\r"+strings.Repeat(" ", p.width)+"\r")
	}
	p.width = 0
}
