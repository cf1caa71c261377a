package batch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/pdfredact/internal/model"
	"github.com/nao1215/pdfredact/internal/session"
)

// DefaultConcurrency is used when WithConcurrency is not given.
const DefaultConcurrency = 4

// Submitter submits the selected file of a session.
// *controller.Controller implements it.
type Submitter interface {
	Submit(ctx context.Context, s *session.Session) error
}

// Item is the result of one document.
type Item struct {
	// Path is the input path as given.
	Path string

	// Snapshot is the session state after the submission resolved.
	Snapshot session.Snapshot

	// Err is the submission error, or nil on success.
	Err error
}

// Failed reports whether the document ended in an error.
func (it *Item) Failed() bool {
	return it.Err != nil
}

// Processor submits documents concurrently.
type Processor struct {
	submitter     Submitter
	concurrency   int
	maxUploadSize int64
	sessionOpts   []session.Option
	logger        *slog.Logger

	// load reads a document from disk.
	load func(path string, maxSize int64) (*model.UploadedFile, error)
}

// Option configures a Processor.
type Option func(*Processor)

// WithConcurrency sets the maximum number of concurrent submissions.
// Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithMaxUploadSize sets the largest file that is read and submitted.
func WithMaxUploadSize(n int64) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxUploadSize = n
		}
	}
}

// WithSessionOptions sets the options every per-document session is
// created with.
func WithSessionOptions(opts ...session.Option) Option {
	return func(p *Processor) {
		p.sessionOpts = append(p.sessionOpts, opts...)
	}
}

// WithLogger sets the logger used for batch-level logging.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a Processor that submits through submitter.
func NewProcessor(submitter Submitter, opts ...Option) *Processor {
	p := &Processor{
		submitter:     submitter,
		concurrency:   DefaultConcurrency,
		maxUploadSize: 50 * 1024 * 1024,
		load:          model.LoadUploadedFile,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Process submits every path and returns one Item per path, in input order.
// A document that cannot be read is recorded as rejected without a network
// call. The error is non-nil only when ctx is canceled before every
// document started; Items of documents that never started are nil.
func (p *Processor) Process(ctx context.Context, paths []string) ([]*Item, error) {
	items := make([]*Item, len(paths))
	var mu sync.Mutex

	err := p.ProcessWithCallback(ctx, paths, func(item *Item, index int) {
		mu.Lock()
		items[index] = item
		mu.Unlock()
	})
	return items, err
}

// ProcessWithCallback submits every path and calls callback as each
// document resolves. callback runs on the submitting goroutine and must be
// safe for concurrent use.
func (p *Processor) ProcessWithCallback(ctx context.Context, paths []string, callback func(item *Item, index int)) error {
	p.logger.Info("starting batch",
		"documents", len(paths),
		"concurrency", p.concurrency,
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	var (
		failedMu sync.Mutex
		failed   int
	)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := p.processOne(ctx, path)
			if item.Failed() {
				failedMu.Lock()
				failed++
				failedMu.Unlock()
			}
			callback(item, i)

			// Per-document failures are recorded in the Item, not returned,
			// so the other documents keep going.
			return nil
		})
	}

	err := g.Wait()

	p.logger.Info("batch complete",
		"documents", len(paths),
		"failed", failed,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return err
}

// processOne runs one document through its own session.
func (p *Processor) processOne(ctx context.Context, path string) *Item {
	s := session.New(append([]session.Option{session.WithLogger(p.logger)}, p.sessionOpts...)...)
	item := &Item{Path: path}
	item.Err = p.SubmitPath(ctx, s, path)
	item.Snapshot = s.Snapshot()
	return item
}

// SubmitPath reads the document at path, selects it into s and submits it.
// A document that cannot be read is applied to s as a rejection without a
// network call; the returned error then joins the ValidationError with the
// read error.
func (p *Processor) SubmitPath(ctx context.Context, s *session.Session, path string) error {
	file, err := p.load(path, p.maxUploadSize)
	if err != nil {
		p.logger.Warn("cannot read document", "path", path, "error", err)
		rejected := model.Rejected(loadFailureReason(err))
		s.ApplyOutcome(rejected)
		return errors.Join(rejected.Err, err)
	}

	s.SelectFile(file)
	return p.submitter.Submit(ctx, s)
}

// loadFailureReason turns a load error into the message shown to the user.
func loadFailureReason(err error) string {
	switch {
	case errors.Is(err, model.ErrFileTooLarge):
		return model.ErrFileTooLarge.Error()
	case errors.Is(err, model.ErrNotRegularFile):
		return model.ErrNotRegularFile.Error()
	default:
		return "cannot read file"
	}
}
