package tor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/tornago"
)

// DefaultStartupTimeout bounds Tor bootstrap. A cold start needs to fetch
// directory information and build circuits, which takes one to three minutes.
const DefaultStartupTimeout = 3 * time.Minute

// Daemon is an embedded Tor process. Its SOCKS5 address serves as the proxy
// of the redaction service client.
type Daemon struct {
	process        *tornago.TorProcess
	socksAddr      string
	controlAddr    string
	startupTimeout time.Duration
	logger         *slog.Logger
}

// DaemonOption configures a Daemon.
type DaemonOption func(*Daemon)

// WithStartupTimeout sets the maximum time to wait for Tor to bootstrap.
// Non-positive values keep the default.
func WithStartupTimeout(timeout time.Duration) DaemonOption {
	return func(d *Daemon) {
		if timeout > 0 {
			d.startupTimeout = timeout
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) DaemonOption {
	return func(d *Daemon) {
		d.logger = logger
	}
}

// NewDaemon creates a Daemon. Call Start to launch Tor.
func NewDaemon(opts ...DaemonOption) *Daemon {
	d := &Daemon{startupTimeout: DefaultStartupTimeout}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Start launches Tor on OS-assigned ports and blocks until it has
// bootstrapped or the startup timeout elapses. If ctx is done by then, the
// process is stopped and ctx.Err is returned.
func (d *Daemon) Start(ctx context.Context) error {
	launchCfg, err := tornago.NewTorLaunchConfig(
		tornago.WithTorSocksAddr(":0"),
		tornago.WithTorControlAddr(":0"),
		tornago.WithTorStartupTimeout(d.startupTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create Tor launch config: %w", err)
	}

	start := time.Now()
	process, err := tornago.StartTorDaemon(launchCfg)
	if err != nil {
		return fmt.Errorf("failed to start embedded Tor daemon: %w", err)
	}

	if err := ctx.Err(); err != nil {
		_ = process.Stop() //nolint:errcheck // Best effort cleanup
		return err
	}

	d.process = process
	d.socksAddr = process.SocksAddr()
	d.controlAddr = process.ControlAddr()
	d.logger.Info("embedded Tor daemon started",
		"socks", d.socksAddr,
		"elapsed", time.Since(start).Round(time.Second),
	)
	return nil
}

// Stop shuts the daemon down. It is safe to call on a stopped or never
// started Daemon.
func (d *Daemon) Stop() error {
	if d.process == nil {
		return nil
	}
	err := d.process.Stop()
	d.process = nil
	d.socksAddr = ""
	d.controlAddr = ""
	d.logger.Debug("embedded Tor daemon stopped")
	return err
}

// ProxyAddress returns the SOCKS5 address in "host:port" form, or
// ErrDaemonNotRunning.
func (d *Daemon) ProxyAddress() (string, error) {
	if !d.IsRunning() {
		return "", ErrDaemonNotRunning
	}
	return d.socksAddr, nil
}

// ControlAddr returns the control port address, or "" when not running.
func (d *Daemon) ControlAddr() string {
	return d.controlAddr
}

// IsRunning reports whether the Tor process is running.
func (d *Daemon) IsRunning() bool {
	return d.process != nil
}
