package config

import (
	"net"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/pdfredact/internal/service"
)

// Default configuration values.
const (
	// DefaultServicePort is the port the redaction service listens on.
	DefaultServicePort = "8001"

	// DefaultAPIBase is the redaction service origin used when nothing else
	// is configured.
	DefaultAPIBase = "http://localhost:" + DefaultServicePort

	// DefaultTimeout covers upload, server-side extraction and download.
	// Large scanned documents take the service a while.
	DefaultTimeout = 120 * time.Second

	// DefaultBatchSize is the number of documents submitted concurrently in
	// batch mode.
	DefaultBatchSize = 4

	// DefaultMaxUploadSize is the largest file that will be read and sent.
	DefaultMaxUploadSize = 50 * 1024 * 1024 // 50MB

	// DefaultMaxResponseSize limits how much of a response body is read.
	DefaultMaxResponseSize = service.DefaultMaxResponseSize

	// DefaultWatchDebounce is how long a new file must be quiet before the
	// watcher submits it.
	DefaultWatchDebounce = 2 * time.Second

	// DefaultTorStartupTimeout bounds how long an embedded Tor daemon may
	// take to bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "pdfredact"

	// DefaultUserAgent identifies pdfredact in HTTP requests.
	DefaultUserAgent = "pdfredact/1.0 (+https://github.com/nao1215/pdfredact)"
)

// Config holds all configuration options for pdfredact.
// It is populated from defaults, the config file, the environment and CLI
// flags, and passed down explicitly.
type Config struct {
	// APIBase is the redaction service origin, e.g. "http://10.0.0.5:8001".
	APIBase string

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format.
	ProxyAddress string

	// Timeout bounds one submission round trip.
	Timeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// BatchSize is the number of concurrent submissions in batch mode.
	BatchSize int

	// ConfigFilePath is an explicit configuration file path.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output path. Empty means stdout.
	ReportFile string

	// HidePageText omits redacted page text from the text report.
	HidePageText bool

	// Inputs are the files to redact, or the directories to watch.
	Inputs []string

	// LatestWins discards outcomes of submissions whose file was replaced
	// by a newer selection.
	LatestWins bool

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// MaxUploadSize is the largest file, in bytes, that will be submitted.
	MaxUploadSize int64

	// MaxResponseSize is the largest response body, in bytes, that will be read.
	MaxResponseSize int64

	// WatchDebounce is the quiet period before a watched file is submitted.
	WatchDebounce time.Duration

	// WatchIgnore holds glob patterns of file names the watcher skips.
	WatchIgnore []string

	// UseTor starts an embedded Tor daemon and reaches the service through
	// its SOCKS5 port. Mutually exclusive with ProxyAddress.
	UseTor bool

	// TorStartupTimeout bounds the embedded daemon's bootstrap.
	TorStartupTimeout time.Duration

	// SkipInspect disables the document metadata check.
	SkipInspect bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		APIBase:         DefaultAPIBase,
		Timeout:         DefaultTimeout,
		BatchSize:       DefaultBatchSize,
		UserAgent:       DefaultUserAgent,
		MaxUploadSize:   DefaultMaxUploadSize,
		MaxResponseSize: DefaultMaxResponseSize,
		WatchDebounce:   DefaultWatchDebounce,

		TorStartupTimeout: DefaultTorStartupTimeout,
	}
}

// XDGConfigDir returns the XDG config directory for pdfredact.
// On Linux: ~/.config/pdfredact
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DeriveAPIBase returns the service origin on host at DefaultServicePort.
// A port already present in host is replaced. An empty host means localhost.
func DeriveAPIBase(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, DefaultServicePort)
}

// ValidateAPIBase checks that raw is an absolute http or https URL with a host.
func ValidateAPIBase(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidAPIBase
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAPIBase
	}
	return nil
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}
	if err := ValidateAPIBase(c.APIBase); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.ProxyAddress != "" && !service.IsValidProxyAddress(c.ProxyAddress) {
		return ErrInvalidProxyAddress
	}
	if c.UseTor && c.ProxyAddress != "" {
		return ErrConflictingProxies
	}
	if c.UseTor && c.TorStartupTimeout <= 0 {
		return ErrInvalidTorStartupTimeout
	}
	if c.MaxUploadSize <= 0 {
		return ErrInvalidMaxUploadSize
	}
	if c.MaxResponseSize < 0 {
		return ErrInvalidMaxResponseSize
	}
	if c.WatchDebounce < 0 {
		return ErrInvalidWatchDebounce
	}
	return nil
}
