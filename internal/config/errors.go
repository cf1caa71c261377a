package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoInput is returned when no file or directory is given.
	ErrNoInput = errors.New("no input specified: provide at least one PDF file or directory")

	// ErrInvalidAPIBase is returned when the API base is not an absolute
	// http(s) URL.
	ErrInvalidAPIBase = errors.New("invalid api url: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidProxyAddress is returned when the proxy is not "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address: must be host:port")

	// ErrConflictingProxies is returned when both --tor and --proxy are
	// specified.
	ErrConflictingProxies = errors.New("conflicting proxies: --tor and --proxy cannot be used together")

	// ErrInvalidTorStartupTimeout is returned when the Tor bootstrap timeout
	// is not positive.
	ErrInvalidTorStartupTimeout = errors.New("invalid tor startup timeout: must be positive")

	// ErrInvalidMaxUploadSize is returned when the upload limit is not positive.
	ErrInvalidMaxUploadSize = errors.New("invalid max upload size: must be positive")

	// ErrInvalidMaxResponseSize is returned when the response limit is negative.
	// Zero selects the default limit.
	ErrInvalidMaxResponseSize = errors.New("invalid max response size: must be non-negative")

	// ErrInvalidWatchDebounce is returned when the watch debounce is negative.
	ErrInvalidWatchDebounce = errors.New("invalid watch debounce: must be non-negative")
)
