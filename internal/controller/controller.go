package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/pdfredact/internal/model"
	"github.com/nao1215/pdfredact/internal/session"
)

// Redactor submits one document and classifies the answer.
// *service.Client implements it.
type Redactor interface {
	Redact(ctx context.Context, file *model.UploadedFile) model.Outcome
}

// Controller submits the selected file of a session.
type Controller struct {
	redactor Redactor
	logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a Controller that submits through redactor.
func New(redactor Redactor, opts ...Option) *Controller {
	c := &Controller{redactor: redactor}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Submit submits the file selected in s and applies the outcome to s.
//
// Without a selected file the session error is set to model.MsgNoFileSelected
// and a *model.ValidationError is returned; the Redactor is not called.
// While another submission holds s, session.ErrSubmissionInFlight is returned
// and s is left unchanged. Otherwise Submit returns nil on success or the
// outcome error (*model.ServiceError or *model.NetworkError).
//
// s.Loading() is false when Submit returns.
func (c *Controller) Submit(ctx context.Context, s *session.Session) error {
	lease, err := s.Begin()
	if errors.Is(err, session.ErrNoFile) {
		rejected := model.Rejected(model.MsgNoFileSelected)
		s.ApplyOutcome(rejected)
		c.logger.Info("submission rejected", "reason", rejected.Message())
		return rejected.Err
	}
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	defer lease.Release()

	outcome := c.redact(ctx, lease.File())
	if !outcome.OK() && outcome.Err == nil {
		outcome = model.ServiceFailed(model.MsgNoResults)
	}
	applied := lease.Resolve(outcome)

	c.logger.Info("submission resolved",
		"submission", lease.ID(),
		"file", lease.File().Name,
		"outcome", outcome.Kind.String(),
		"applied", applied,
	)
	if outcome.OK() {
		return nil
	}
	return outcome.Err
}

// redact calls the Redactor, turning a panic into a network error outcome.
func (c *Controller) redact(ctx context.Context, file *model.UploadedFile) (outcome model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("redactor panicked", "file", file.Name, "panic", r)
			outcome = model.NetworkFailed(fmt.Errorf("%w: %v", ErrRedactorPanic, r))
		}
	}()
	return c.redactor.Redact(ctx, file)
}
