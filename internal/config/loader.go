package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pdfredact"

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL     = "PDFREDACT_API_URL"
	EnvHost       = "PDFREDACT_HOST"
	EnvProxy      = "PDFREDACT_PROXY"
	EnvBatch      = "PDFREDACT_BATCH"
	EnvLatestWins = "PDFREDACT_LATEST_WINS"
	EnvTor        = "PDFREDACT_TOR"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .pdfredact in the current directory
// 3. Look for .pdfredact in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadDotEnv loads environment variables from the given .env files, or from
// ".env" in the current directory when none are given. Missing files are
// ignored; variables already set in the environment are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv copies settings from the environment onto cfg.
// lookup is usually os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.APIBase = v
	} else if v, ok := lookup(EnvHost); ok && v != "" {
		cfg.APIBase = DeriveAPIBase(v)
	}
	if v, ok := lookup(EnvProxy); ok && v != "" {
		cfg.ProxyAddress = v
	}
	if v, ok := lookup(EnvBatch); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBatch, ErrInvalidBatchSize)
		}
		cfg.BatchSize = n
	}
	if v, ok := lookup(EnvLatestWins); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLatestWins, err)
		}
		cfg.LatestWins = b
	}
	if v, ok := lookup(EnvTor); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTor, err)
		}
		cfg.UseTor = b
	}
	return nil
}

// Load builds a Config from defaults, the configuration file and the
// environment. An explicit configPath that cannot be read is an error; a
// missing default file is not.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()
	cfg.ConfigFilePath = configPath

	if path := FindConfigFile(configPath); path != "" {
		cf, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cf.Apply(cfg)
	} else if configPath != "" {
		return nil, ErrConfigNotFound
	}

	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}
