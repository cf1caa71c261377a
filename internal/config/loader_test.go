package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigFile tests YAML configuration loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `api_url: http://10.0.0.5:8001
proxy: 127.0.0.1:1080
timeout: 90s
batch: 8
latest_wins: true
skip_inspect: true
tor:
  startup_timeout: 5m
watch:
  debounce: 500ms
  ignore:
    - "*.part"
    - "~*"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.APIURL != "http://10.0.0.5:8001" {
			t.Errorf("APIURL = %q", cf.APIURL)
		}
		if cf.Timeout != 90*time.Second {
			t.Errorf("Timeout = %v, expected 90s", cf.Timeout)
		}
		if cf.Watch.Debounce != 500*time.Millisecond {
			t.Errorf("Watch.Debounce = %v, expected 500ms", cf.Watch.Debounce)
		}
		if len(cf.Watch.Ignore) != 2 {
			t.Errorf("Watch.Ignore = %v", cf.Watch.Ignore)
		}

		cfg := NewConfig()
		cf.Apply(cfg)
		if cfg.APIBase != "http://10.0.0.5:8001" || cfg.ProxyAddress != "127.0.0.1:1080" {
			t.Errorf("APIBase = %q, ProxyAddress = %q", cfg.APIBase, cfg.ProxyAddress)
		}
		if cfg.BatchSize != 8 || !cfg.LatestWins {
			t.Errorf("BatchSize = %d, LatestWins = %v", cfg.BatchSize, cfg.LatestWins)
		}
		if !cfg.SkipInspect || cfg.UseTor || cfg.TorStartupTimeout != 5*time.Minute {
			t.Errorf("SkipInspect = %v, UseTor = %v, TorStartupTimeout = %v",
				cfg.SkipInspect, cfg.UseTor, cfg.TorStartupTimeout)
		}
		if cfg.MaxUploadSize != DefaultMaxUploadSize {
			t.Errorf("expected unset MaxUploadSize to keep default, got %d", cfg.MaxUploadSize)
		}
	})

	t.Run("host derives api base", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{Host: "192.168.1.100"}).Apply(cfg)
		if cfg.APIBase != "http://192.168.1.100:8001" {
			t.Errorf("APIBase = %q", cfg.APIBase)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("batch: [unclosed"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests config file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("batch: 2\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, expected %q", got, path)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("FindConfigFile() = %q, expected empty", got)
		}
	})

	t.Run("finds file in current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("batch: 2\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(""); got != path {
			t.Errorf("FindConfigFile() = %q, expected %q", got, path)
		}
	})
}

// TestApplyEnv tests environment overrides.
func TestApplyEnv(t *testing.T) {
	t.Parallel()

	lookup := func(env map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		}
	}

	t.Run("api url wins over host", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := ApplyEnv(cfg, lookup(map[string]string{
			EnvAPIURL: "https://redact.example.com",
			EnvHost:   "10.0.0.1",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIBase != "https://redact.example.com" {
			t.Errorf("APIBase = %q", cfg.APIBase)
		}
	})

	t.Run("host derives api base", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := ApplyEnv(cfg, lookup(map[string]string{EnvHost: "10.0.0.1"})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIBase != "http://10.0.0.1:8001" {
			t.Errorf("APIBase = %q", cfg.APIBase)
		}
	})

	t.Run("proxy batch and latest wins are read", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := ApplyEnv(cfg, lookup(map[string]string{
			EnvProxy:      "127.0.0.1:9050",
			EnvBatch:      "2",
			EnvLatestWins: "true",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ProxyAddress != "127.0.0.1:9050" || cfg.BatchSize != 2 || !cfg.LatestWins {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("tor is read", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := ApplyEnv(cfg, lookup(map[string]string{EnvTor: "1"})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.UseTor {
			t.Error("expected UseTor")
		}
		if err := ApplyEnv(NewConfig(), lookup(map[string]string{EnvTor: "maybe"})); err == nil {
			t.Error("expected error for a non-boolean value")
		}
	})

	t.Run("bad batch returns ErrInvalidBatchSize", func(t *testing.T) {
		t.Parallel()

		err := ApplyEnv(NewConfig(), lookup(map[string]string{EnvBatch: "many"}))
		if !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})

	t.Run("empty environment changes nothing", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := ApplyEnv(cfg, lookup(nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIBase != DefaultAPIBase {
			t.Errorf("APIBase = %q", cfg.APIBase)
		}
	})
}

// TestLoadDotEnv tests .env loading.
func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("variables are loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("PDFREDACT_TEST_DOTENV=from-file\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("PDFREDACT_TEST_DOTENV", "")
		os.Unsetenv("PDFREDACT_TEST_DOTENV")

		if err := LoadDotEnv(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := os.Getenv("PDFREDACT_TEST_DOTENV"); got != "from-file" {
			t.Errorf("PDFREDACT_TEST_DOTENV = %q, expected %q", got, "from-file")
		}
	})
}
