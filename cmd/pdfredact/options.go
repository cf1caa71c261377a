package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/pdfredact/internal/config"
	"github.com/nao1215/pdfredact/internal/controller"
	"github.com/nao1215/pdfredact/internal/inspect"
	securelog "github.com/nao1215/pdfredact/internal/log"
	"github.com/nao1215/pdfredact/internal/report"
	"github.com/nao1215/pdfredact/internal/service"
	"github.com/nao1215/pdfredact/internal/session"
	"github.com/nao1215/pdfredact/internal/tor"
	"github.com/spf13/cobra"
)

// addServiceFlags registers the flags shared by redact and watch.
func addServiceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("api-url", "a", "",
		"Redaction service origin (default "+config.DefaultAPIBase+")")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for one submission")
	cmd.Flags().StringP("proxy", "x", "",
		"SOCKS5 proxy for reaching the service (host:port)")
	cmd.Flags().Bool("tor", false,
		"Start an embedded Tor daemon and reach the service through it")
	cmd.Flags().Duration("tor-timeout", config.DefaultTorStartupTimeout,
		"Timeout for the embedded Tor daemon to bootstrap")
	cmd.Flags().Bool("latest-wins", false,
		"Discard outcomes of submissions superseded by a newer selection")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pdfredact in current or home directory)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-text", false,
		"Omit redacted page text from the text report")
	cmd.Flags().Bool("no-inspect", false,
		"Do not check documents for leftover metadata")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig loads defaults, the config file and the environment, then
// applies the flags the user set explicitly.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		if cfg.APIBase, err = flags.GetString("api-url"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("tor") {
		if cfg.UseTor, err = flags.GetBool("tor"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("tor-timeout") {
		if cfg.TorStartupTimeout, err = flags.GetDuration("tor-timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("no-inspect") {
		if cfg.SkipInspect, err = flags.GetBool("no-inspect"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("latest-wins") {
		if cfg.LatestWins, err = flags.GetBool("latest-wins"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.HidePageText, err = flags.GetBool("no-text"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Inputs = args
	return cfg, nil
}

// setupLogger creates the secure logger used by every component.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return securelog.NewSecureLogger(w, verbose)
}

// connectService starts the embedded Tor daemon when requested, probes the
// proxy and checks that the service host is reachable through it. The
// returned stop function must be called when done.
func connectService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (func(), error) {
	stop := func() {}
	if cfg.UseTor {
		daemon := tor.NewDaemon(
			tor.WithStartupTimeout(cfg.TorStartupTimeout),
			tor.WithLogger(logger),
		)
		logger.Info("starting tor", "timeout", cfg.TorStartupTimeout)
		if err := daemon.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start tor: %w", err)
		}
		stop = func() {
			if err := daemon.Stop(); err != nil {
				logger.Warn("failed to stop tor", "error", err)
			}
		}

		addr, err := daemon.ProxyAddress()
		if err != nil {
			stop()
			return nil, err
		}
		cfg.ProxyAddress = addr
	}

	if cfg.ProxyAddress != "" {
		if status := tor.CheckProxy(ctx, cfg.ProxyAddress); status != tor.ProxyStatusOK {
			stop()
			return nil, fmt.Errorf("proxy %s: %w", cfg.ProxyAddress, status.Error())
		}
		logger.Debug("proxy ready", "proxy", cfg.ProxyAddress)
	}

	if err := tor.CheckServiceURL(cfg.APIBase, cfg.ProxyAddress != ""); err != nil {
		stop()
		return nil, err
	}
	return stop, nil
}

// newViewer returns a function that renders a snapshot as a report view,
// with the document's leftover metadata unless inspection is disabled.
func newViewer(cfg *config.Config, logger *slog.Logger) func(session.Snapshot) *report.View {
	if cfg.SkipInspect {
		return report.NewView
	}
	inspector := inspect.New(inspect.WithLogger(logger))
	return func(snap session.Snapshot) *report.View {
		v := report.NewView(snap)
		v.Metadata = inspector.Inspect(snap.File)
		return v
	}
}

// newController wires the service client into a submission controller.
func newController(cfg *config.Config, logger *slog.Logger) (*controller.Controller, error) {
	opts := []service.Option{
		service.WithUserAgent(cfg.UserAgent),
		service.WithMaxResponseSize(cfg.MaxResponseSize),
		service.WithLogger(logger),
	}
	if cfg.ProxyAddress != "" {
		opts = append(opts, service.WithProxy(cfg.ProxyAddress))
	}

	client, err := service.NewClient(cfg.APIBase, cfg.Timeout, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create service client: %w", err)
	}
	logger.Debug("service client ready", "endpoint", client.Endpoint())

	return controller.New(client, controller.WithLogger(logger)), nil
}

// newReportWriter returns the writer for the configured report format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output,
			report.WithPageText(!cfg.HidePageText),
			report.WithVerbose(cfg.Verbose),
		)
	}
}

// openOutput returns the report destination: cfg.ReportFile, or stdout when
// it is empty. The returned close function must be called when done.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return stdout, func() error { return nil }, nil
	}
	if err := ensureParentDir(cfg.ReportFile); err != nil {
		return nil, nil, err
	}

	// Reports contain redacted text and are readable by the owner only.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
