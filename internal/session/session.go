package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nao1215/pdfredact/internal/model"
)

// Session is the state record of one redaction workflow.
// The zero value is not usable; create one with New.
type Session struct {
	mu sync.RWMutex

	file    *model.UploadedFile
	result  *model.RedactionResult
	loading bool
	errMsg  string

	// generation increments on every SelectFile. A Lease remembers the
	// generation it started in.
	generation uint64

	// lastSubmission is the ID of the most recent Lease.
	lastSubmission string

	latestWins bool
	logger     *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLatestWins makes a Lease discard its outcome when a different file was
// selected after the Lease began.
func WithLatestWins(enabled bool) Option {
	return func(s *Session) {
		s.latestWins = enabled
	}
}

// New creates an idle Session with no file, result or error.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Snapshot is a read-only copy of the session fields.
type Snapshot struct {
	File         *model.UploadedFile
	Result       *model.RedactionResult
	Loading      bool
	Error        string
	SubmissionID string
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		File:         s.file,
		Result:       s.result,
		Loading:      s.loading,
		Error:        s.errMsg,
		SubmissionID: s.lastSubmission,
	}
}

// File returns the selected file, or nil.
func (s *Session) File() *model.UploadedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file
}

// Result returns the latest result, or nil.
func (s *Session) Result() *model.RedactionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Loading reports whether a submission is in flight.
// Callers consult it before submitting again.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the latest error message, or "".
func (s *Session) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// SelectFile makes f the selected file and clears any result and error,
// regardless of loading. A nil f is legal and leaves no file selected.
func (s *Session) SelectFile(f *model.UploadedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.file = f
	s.result = nil
	s.errMsg = ""
	s.generation++

	if f == nil {
		s.logger.Debug("file selection cleared")
		return
	}
	s.logger.Info("file selected",
		"file", f.Name,
		"size", f.Size(),
		"digest", f.ShortDigest(),
		"loading", s.loading,
	)
}

// ApplyOutcome records the resolution of a submission. A success sets the
// result and clears the error; every other kind sets the error message and
// clears the result. The loading flag is not touched.
func (s *Session) ApplyOutcome(o model.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(o)
}

// applyLocked implements ApplyOutcome. s.mu must be held.
func (s *Session) applyLocked(o model.Outcome) {
	if o.OK() {
		s.result = o.Result
		s.errMsg = ""
		s.logger.Info("submission succeeded",
			"submission", s.lastSubmission,
			"pages", o.Result.PageCount(),
			"redactions", o.Result.TotalStats.Total(),
		)
		return
	}

	s.result = nil
	s.errMsg = o.Message()
	if s.errMsg == "" {
		s.errMsg = model.MsgNoResults
	}
	s.logger.Warn("submission failed",
		"submission", s.lastSubmission,
		"outcome", o.Kind.String(),
		"error", o.Err,
	)
}

// Begin starts a submission of the selected file. It sets loading, clears
// result and error, and returns a Lease that must be released when the
// submission resolves:
//
//	lease, err := s.Begin()
//	if err != nil {
//		return err
//	}
//	defer lease.Release()
//	lease.Resolve(outcome)
//
// Begin returns ErrNoFile when nothing is selected and ErrSubmissionInFlight
// when another Lease is still held.
func (s *Session) Begin() (*Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil, ErrNoFile
	}
	if s.loading {
		return nil, ErrSubmissionInFlight
	}

	s.loading = true
	s.result = nil
	s.errMsg = ""

	lease := &Lease{
		session:    s,
		id:         uuid.NewString(),
		generation: s.generation,
		file:       s.file,
	}
	s.lastSubmission = lease.id

	s.logger.Debug("submission started",
		"submission", lease.id,
		"file", s.file.Name,
		"digest", s.file.ShortDigest(),
	)
	return lease, nil
}
