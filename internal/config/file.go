package config

import "time"

// File is the structure of the .pdfredact configuration file.
// Zero values leave the corresponding setting unchanged.
type File struct {
	// APIURL is the redaction service origin.
	APIURL string `yaml:"api_url,omitempty"`

	// Host derives the origin as http://<host>:8001 when APIURL is empty.
	Host string `yaml:"host,omitempty"`

	// Proxy is a SOCKS5 proxy in "host:port" format.
	Proxy string `yaml:"proxy,omitempty"`

	// Timeout is a Go duration string such as "90s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Batch is the number of concurrent submissions in batch mode.
	Batch int `yaml:"batch,omitempty"`

	UserAgent       string `yaml:"user_agent,omitempty"`
	MaxUploadSize   int64  `yaml:"max_upload_size,omitempty"`
	MaxResponseSize int64  `yaml:"max_response_size,omitempty"`

	// LatestWins discards outcomes of superseded selections.
	LatestWins bool `yaml:"latest_wins,omitempty"`

	// SkipInspect disables the document metadata check.
	SkipInspect bool `yaml:"skip_inspect,omitempty"`

	// Watch holds settings for the watch command.
	Watch WatchConfig `yaml:"watch,omitempty"`

	// Tor holds settings for the embedded Tor daemon.
	Tor TorConfig `yaml:"tor,omitempty"`
}

// TorConfig holds settings for the embedded Tor daemon.
type TorConfig struct {
	// Enabled starts the daemon and routes requests through it.
	Enabled bool `yaml:"enabled,omitempty"`

	// StartupTimeout bounds the daemon's bootstrap.
	StartupTimeout time.Duration `yaml:"startup_timeout,omitempty"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	// Debounce is the quiet period before a new file is submitted.
	Debounce time.Duration `yaml:"debounce,omitempty"`

	// Ignore holds glob patterns of file names to skip, e.g. "*.part".
	Ignore []string `yaml:"ignore,omitempty"`
}

// Apply copies every non-zero setting of f onto cfg.
func (f *File) Apply(cfg *Config) {
	switch {
	case f.APIURL != "":
		cfg.APIBase = f.APIURL
	case f.Host != "":
		cfg.APIBase = DeriveAPIBase(f.Host)
	}
	if f.Proxy != "" {
		cfg.ProxyAddress = f.Proxy
	}
	if f.Timeout != 0 {
		cfg.Timeout = f.Timeout
	}
	if f.Batch != 0 {
		cfg.BatchSize = f.Batch
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.MaxUploadSize != 0 {
		cfg.MaxUploadSize = f.MaxUploadSize
	}
	if f.MaxResponseSize != 0 {
		cfg.MaxResponseSize = f.MaxResponseSize
	}
	if f.LatestWins {
		cfg.LatestWins = true
	}
	if f.SkipInspect {
		cfg.SkipInspect = true
	}
	if f.Tor.Enabled {
		cfg.UseTor = true
	}
	if f.Tor.StartupTimeout != 0 {
		cfg.TorStartupTimeout = f.Tor.StartupTimeout
	}
	if f.Watch.Debounce != 0 {
		cfg.WatchDebounce = f.Watch.Debounce
	}
	if len(f.Watch.Ignore) > 0 {
		cfg.WatchIgnore = append([]string(nil), f.Watch.Ignore...)
	}
}
