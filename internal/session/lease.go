package session

import (
	"sync"

	"github.com/nao1215/pdfredact/internal/model"
)

// Lease represents one in-flight submission. It is obtained from
// Session.Begin and owns the session's loading flag until Release.
type Lease struct {
	session    *Session
	id         string
	generation uint64
	file       *model.UploadedFile
	once       sync.Once
}

// ID returns the submission ID assigned by Begin.
func (l *Lease) ID() string {
	return l.id
}

// File returns the file that was selected when the submission began.
func (l *Lease) File() *model.UploadedFile {
	return l.file
}

// Resolve applies o to the session. It reports whether the outcome was
// applied: with WithLatestWins, an outcome for a superseded selection is
// discarded.
func (l *Lease) Resolve(o model.Outcome) bool {
	s := l.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latestWins && l.generation != s.generation {
		s.logger.Info("discarding outcome for superseded selection",
			"submission", l.id,
			"outcome", o.Kind.String(),
		)
		return false
	}
	if l.generation != s.generation {
		s.logger.Warn("outcome resolved after a newer file was selected",
			"submission", l.id,
		)
	}

	s.applyLocked(o)
	return true
}

// Release clears the loading flag. It is idempotent and safe to defer.
func (l *Lease) Release() {
	l.once.Do(func() {
		s := l.session
		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading = false
		s.logger.Debug("submission finished", "submission", l.id)
	})
}
