package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.Scan.Length)
	assert.Equal(t, DefaultAlphabet, cfg.Scan.Alphabet)
	assert.Equal(t, 3, cfg.Scan.Concurrency)
	assert.Equal(t, 100*time.Millisecond, cfg.RateLimit.MinRequestInterval)
	assert.Equal(t, 35*time.Second, cfg.RateLimit.Cooldown)
	assert.Equal(t, 100, cfg.RateLimit.QuotaSize)
	assert.Equal(t, 5*time.Second, cfg.RateLimit.QuotaPause)
	assert.Equal(t, 15*time.Second, cfg.Transport.Timeout)
	assert.Equal(t, 3, cfg.Transport.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Report.Interval)
	assert.Equal(t, "info", cfg.Logging.Level)

	require.NoError(t, cfg.Validate(), "defaults must validate")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"length too small", func(c *Config) { c.Scan.Length = 0 }, "length must be between 1 and 8"},
		{"length too large", func(c *Config) { c.Scan.Length = 9 }, "length must be between 1 and 8"},
		{"empty alphabet", func(c *Config) { c.Scan.Alphabet = "" }, "alphabet must not be empty"},
		{"zero concurrency", func(c *Config) { c.Scan.Concurrency = 0 }, "concurrency must be positive"},
		{"excessive concurrency", func(c *Config) { c.Scan.Concurrency = 11 }, "concurrency should not exceed 10"},
		{"negative interval", func(c *Config) { c.RateLimit.MinRequestInterval = -time.Second }, "min request interval cannot be negative"},
		{"negative cooldown", func(c *Config) { c.RateLimit.Cooldown = -time.Second }, "cooldown cannot be negative"},
		{"missing base URL", func(c *Config) { c.Transport.BaseURL = "" }, "lookup base URL is required"},
		{"zero timeout", func(c *Config) { c.Transport.Timeout = 0 }, "timeout must be positive"},
		{"negative retries", func(c *Config) { c.Transport.MaxRetries = -1 }, "max retries cannot be negative"},
		{"missing output dir", func(c *Config) { c.Output.Directory = "" }, "output directory is required"},
		{"zero report interval", func(c *Config) { c.Report.Interval = 0 }, "report interval must be positive"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "invalid log level"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.wantErr)
		})
	}
}

func TestValidateJoinsMultipleErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.Length = 0
	cfg.Scan.Alphabet = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length must be between 1 and 8")
	assert.Contains(t, err.Error(), "alphabet must not be empty")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VANITYSCAN_LENGTH", "4")
	t.Setenv("VANITYSCAN_ALPHABET", "ABC")
	t.Setenv("VANITYSCAN_START_FROM", "BAA")
	t.Setenv("VANITYSCAN_CONCURRENCY", "5")
	t.Setenv("VANITYSCAN_BASE_URL", "http://localhost:8080/id")
	t.Setenv("VANITYSCAN_OUTPUT_DIR", "/tmp/scans")
	t.Setenv("VANITYSCAN_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 4, cfg.Scan.Length)
	assert.Equal(t, "ABC", cfg.Scan.Alphabet)
	assert.Equal(t, "BAA", cfg.Scan.StartFrom)
	assert.Equal(t, 5, cfg.Scan.Concurrency)
	assert.Equal(t, "http://localhost:8080/id", cfg.Transport.BaseURL)
	assert.Equal(t, "/tmp/scans", cfg.Output.Directory)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("VANITYSCAN_LENGTH", "not-a-number")
	t.Setenv("VANITYSCAN_CONCURRENCY", "-2")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 3, cfg.Scan.Length)
	assert.Equal(t, 3, cfg.Scan.Concurrency)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
scan:
  length: 2
  alphabet: "ABC"
  concurrency: 4
rate_limit:
  min_request_interval: 250000000
  cooldown: 20000000000
transport:
  base_url: "http://example.test/id"
output:
  directory: "/var/scans"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, 2, cfg.Scan.Length)
	assert.Equal(t, "ABC", cfg.Scan.Alphabet)
	assert.Equal(t, 4, cfg.Scan.Concurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimit.MinRequestInterval)
	assert.Equal(t, 20*time.Second, cfg.RateLimit.Cooldown)
	assert.Equal(t, "http://example.test/id", cfg.Transport.BaseURL)
	assert.Equal(t, "/var/scans", cfg.Output.Directory)

	// Untouched sections keep their defaults
	assert.Equal(t, 15*time.Second, cfg.Transport.Timeout)
}

func TestLoadFromFileMissingPath(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan: [not a map"), 0644))

	cfg := DefaultConfig()
	err := cfg.LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"length":      2,
		"alphabet":    "AB",
		"start-from":  "BA",
		"concurrency": 1,
		"base-url":    "http://flags.test/id",
		"output":      "out",
		"log-level":   "warn",
	})

	assert.Equal(t, 2, cfg.Scan.Length)
	assert.Equal(t, "AB", cfg.Scan.Alphabet)
	assert.Equal(t, "BA", cfg.Scan.StartFrom)
	assert.Equal(t, 1, cfg.Scan.Concurrency)
	assert.Equal(t, "http://flags.test/id", cfg.Transport.BaseURL)
	assert.Equal(t, "out", cfg.Output.Directory)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestMergeCommandLineFlagsIgnoresZeroValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"length":   0,
		"alphabet": "",
	})

	assert.Equal(t, 3, cfg.Scan.Length)
	assert.Equal(t, DefaultAlphabet, cfg.Scan.Alphabet)
}

func TestLoadPrecedenceFlagsOverEnvOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
scan:
  length: 2
  concurrency: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("VANITYSCAN_LENGTH", "4")

	cfg, err := Load(path, map[string]interface{}{"concurrency": 6})
	require.NoError(t, err)

	// env overrides the file
	assert.Equal(t, 4, cfg.Scan.Length)
	// flags override everything
	assert.Equal(t, 6, cfg.Scan.Concurrency)
}

func TestLoadRejectsInvalidResult(t *testing.T) {
	_, err := Load("", map[string]interface{}{"length": 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Scan.Length = 5
	cfg.Scan.StartFrom = "BAAAA"
	require.NoError(t, cfg.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, 5, loaded.Scan.Length)
	assert.Equal(t, "BAAAA", loaded.Scan.StartFrom)
}
