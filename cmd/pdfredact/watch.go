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
	"github.com/nao1215/pdfredact/internal/watcher"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Redact every PDF that appears in a directory",
		Long: `Watch monitors one or more directories and submits every new PDF to the
redaction service once it has stopped changing. Each document replaces the
previous one in a single session, and a report is written every time a
submission resolves.

Temporary files (office lock files, partial downloads, dotfiles) are
ignored. Watching stops on Ctrl-C.

Examples:
  # Watch an inbox directory
  pdfredact watch ~/inbox

  # Wait five seconds after the last write before submitting
  pdfredact watch --debounce 5s ~/inbox

  # Skip drafts as well
  pdfredact watch --ignore 'draft-*' ~/inbox`,
		Args: cobra.ArbitraryArgs,
		RunE: runWatchCmd,
	}

	addServiceFlags(cmd)
	cmd.Flags().DurationP("debounce", "d", config.DefaultWatchDebounce,
		"Quiet period after the last write before a file is submitted")
	cmd.Flags().StringSlice("ignore", nil,
		"Additional file name patterns to skip (repeatable)")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debounce") {
		if cfg.WatchDebounce, err = cmd.Flags().GetDuration("debounce"); err != nil {
			return err
		}
	}
	extra, err := cmd.Flags().GetStringSlice("ignore")
	if err != nil {
		return err
	}
	cfg.WatchIgnore = append(cfg.WatchIgnore, extra...)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := checkDirs(cfg.Inputs); err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runWatch(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// checkDirs reports the first input that is not a directory.
func checkDirs(dirs []string) error {
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("cannot watch %s: not a directory", dir)
		}
	}
	return nil
}

// runWatch watches cfg.Inputs until ctx is done.
func runWatch(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) (err error) {
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
		batch.WithMaxUploadSize(cfg.MaxUploadSize),
		batch.WithLogger(logger),
	)
	s := session.New(
		session.WithLogger(logger),
		session.WithLatestWins(cfg.LatestWins),
	)

	output, closeOutput, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	h := &watchHandler{
		proc:    proc,
		session: s,
		writer:  newReportWriter(cfg, output),
		view:    newViewer(cfg, logger),
		logger:  logger,
	}

	ignore := append(watcher.DefaultIgnorePatterns(), cfg.WatchIgnore...)
	w := watcher.New(h.handle,
		watcher.WithDebounce(cfg.WatchDebounce),
		watcher.WithIgnorePatterns(ignore),
		watcher.WithLogger(logger),
	)

	fmt.Fprintf(stderr, "Watching %d director(ies) for new PDFs (Ctrl-C to stop)...\n", len(cfg.Inputs))

	summary, err := w.Run(ctx, cfg.Inputs)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Fprintf(stderr, "\nStopped after %s. Redacted: %d  Failed: %d  Skipped: %d\n",
		summary.Duration.Round(time.Millisecond), summary.Handled, summary.Failed, summary.Skipped)

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errDocumentsFailed, summary.Failed, summary.Handled+summary.Failed)
	}
	return nil
}

// watchHandler submits each new document into one long-lived session and
// reports every resolved state.
type watchHandler struct {
	proc    *batch.Processor
	session *session.Session
	writer  report.Writer
	view    func(session.Snapshot) *report.View
	logger  *slog.Logger

	mu sync.Mutex
}

// handle implements watcher.Handler.
func (h *watchHandler) handle(ctx context.Context, path string) error {
	previous := h.session.File()
	submitErr := h.proc.SubmitPath(ctx, h.session, path)

	snap := h.session.Snapshot()
	v := h.view(snap)
	if snap.File == previous {
		// The document could not be read, so the snapshot still names the
		// previous one.
		v.File = filepath.Base(path)
		v.Digest = ""
		v.Size = 0
		v.Metadata = nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.writer.Write(v); err != nil {
		h.logger.Error("failed to write report", "path", path, "error", err)
		return errors.Join(submitErr, err)
	}
	return submitErr
}
