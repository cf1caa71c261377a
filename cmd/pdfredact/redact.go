package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/pdfredact/internal/batch"
	"github.com/nao1215/pdfredact/internal/config"
	"github.com/nao1215/pdfredact/internal/report"
	"github.com/nao1215/pdfredact/internal/session"
	"github.com/spf13/cobra"
)

// errDocumentsFailed is returned when at least one document of a run did
// not end redacted.
var errDocumentsFailed = errors.New("one or more documents failed")

// NewRedactCmd creates the redact command.
func NewRedactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redact [file...]",
		Short: "Redact PII from PDF documents",
		Long: `Redact uploads each PDF to the redaction service and reports the
redacted text of every page together with per-category redaction counts.

A single file is submitted in one session. Several files are submitted
concurrently (see --batch), each in its own session, and reported together.

Each report also lists metadata the original file still carries (author,
XMP document IDs, EXIF of embedded photos), since the service only
redacts page text. Use --no-inspect to skip this check.

The command exits with a non-zero status when any document failed.

Examples:
  # Redact a single document
  pdfredact redact statement.pdf

  # Redact several documents, four at a time
  pdfredact redact --batch 4 inbox/*.pdf

  # Use a service on another host
  pdfredact redact --api-url http://10.0.0.5:8001 statement.pdf

  # Reach a service published as an onion service
  pdfredact redact --tor --api-url http://<address>.onion:8001 statement.pdf

  # Write a Markdown report
  pdfredact redact --markdown -o reports/statement.md statement.pdf`,
		Args: cobra.ArbitraryArgs,
		RunE: runRedactCmd,
	}

	addServiceFlags(cmd)
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent submissions")

	return cmd
}

// runRedactCmd executes the redact command.
func runRedactCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("batch") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runRedact(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runRedact submits every input and writes the report.
func runRedact(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	disconnect, err := connectService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer disconnect()

	ctrl, err := newController(cfg, logger)
	if err != nil {
		return err
	}

	proc := batch.NewProcessor(ctrl,
		batch.WithConcurrency(cfg.BatchSize),
		batch.WithMaxUploadSize(cfg.MaxUploadSize),
		batch.WithSessionOptions(session.WithLatestWins(cfg.LatestWins)),
		batch.WithLogger(logger),
	)

	start := time.Now()
	items := make([]*batch.Item, len(cfg.Inputs))
	var mu sync.Mutex
	// Log lines would interleave with the progress line in verbose mode.
	prog := newProgress(stderr, len(cfg.Inputs), cfg.Verbose || len(cfg.Inputs) == 1)

	err = proc.ProcessWithCallback(ctx, cfg.Inputs, func(item *batch.Item, index int) {
		mu.Lock()
		items[index] = item
		mu.Unlock()
		prog.step(filepath.Base(item.Path), item.Failed())
	})
	prog.finish()
	if err != nil {
		return fmt.Errorf("redaction interrupted: %w", err)
	}
	logger.Debug("redaction finished",
		"documents", len(items),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	views := viewsOf(items, newViewer(cfg, logger))
	if err := writeReport(cfg, stdout, views); err != nil {
		return err
	}
	return runError(items)
}

// viewsOf converts batch items to report views. A document that could not
// be read has no file in its snapshot and is named after its path.
func viewsOf(items []*batch.Item, view func(session.Snapshot) *report.View) []*report.View {
	views := make([]*report.View, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		v := view(item.Snapshot)
		if v.File == "" {
			v.File = filepath.Base(item.Path)
		}
		views = append(views, v)
	}
	return views
}

// writeReport writes one view as a single report and several as a batch.
func writeReport(cfg *config.Config, stdout io.Writer, views []*report.View) (err error) {
	output, closeOutput, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	w := newReportWriter(cfg, output)
	if len(views) == 1 {
		_, err = w.Write(views[0])
	} else {
		_, err = w.WriteBatch(views)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// runError returns the error that decides the exit status of a run.
func runError(items []*batch.Item) error {
	var failed []*batch.Item
	for _, item := range items {
		if item != nil && item.Failed() {
			failed = append(failed, item)
		}
	}

	switch {
	case len(failed) == 0:
		return nil
	case len(items) == 1:
		return fmt.Errorf("%s: %w", failed[0].Path, failed[0].Err)
	default:
		return fmt.Errorf("%w: %d of %d", errDocumentsFailed, len(failed), len(items))
	}
}
