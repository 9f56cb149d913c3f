package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAlphabet is the full identifier namespace: uppercase letters,
// digits, underscore and hyphen.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"

// Config holds all configuration options for the vanity name scanner
type Config struct {
	// Scan parameters (identifier space and concurrency)
	Scan ScanConfig `yaml:"scan" json:"scan"`

	// Rate limiting configuration shared by all workers
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Lookup transport settings
	Transport TransportConfig `yaml:"transport" json:"transport"`

	// Result log output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Progress reporting settings
	Report ReportConfig `yaml:"report" json:"report"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ScanConfig describes the identifier space to enumerate
type ScanConfig struct {
	Length      int    `yaml:"length" json:"length"`
	Alphabet    string `yaml:"alphabet" json:"alphabet"`
	StartFrom   string `yaml:"start_from" json:"start_from"`
	Concurrency int    `yaml:"concurrency" json:"concurrency"`
}

// RateLimitConfig holds the global rate governor settings
type RateLimitConfig struct {
	MinRequestInterval time.Duration `yaml:"min_request_interval" json:"min_request_interval"`
	Cooldown           time.Duration `yaml:"cooldown" json:"cooldown"`
	QuotaSize          int           `yaml:"quota_size" json:"quota_size"`
	QuotaPause         time.Duration `yaml:"quota_pause" json:"quota_pause"`
}

// TransportConfig holds lookup endpoint settings
type TransportConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	MaxRetries     int           `yaml:"max_retries" json:"max_retries"`
	NotFoundMarker string        `yaml:"not_found_marker" json:"not_found_marker"`
	ProfileMarker  string        `yaml:"profile_marker" json:"profile_marker"`
}

// OutputConfig holds result log file settings
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

// ReportConfig holds progress snapshot settings
type ReportConfig struct {
	Interval time.Duration `yaml:"interval" json:"interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Length:      3,
			Alphabet:    DefaultAlphabet,
			StartFrom:   "",
			Concurrency: 3,
		},
		RateLimit: RateLimitConfig{
			MinRequestInterval: 100 * time.Millisecond,
			Cooldown:           35 * time.Second,
			QuotaSize:          100,
			QuotaPause:         5 * time.Second,
		},
		Transport: TransportConfig{
			BaseURL:        "https://steamcommunity.com/id",
			Timeout:        15 * time.Second,
			UserAgent:      "vanityscan/1.0",
			MaxRetries:     3,
			NotFoundMarker: "The specified profile could not be found",
			ProfileMarker:  "<steamID64>",
		},
		Output: OutputConfig{
			Directory: ".",
		},
		Report: ReportConfig{
			Interval: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if length := os.Getenv("VANITYSCAN_LENGTH"); length != "" {
		var val int
		fmt.Sscanf(length, "%d", &val)
		if val > 0 {
			c.Scan.Length = val
		}
	}
	if alphabet := os.Getenv("VANITYSCAN_ALPHABET"); alphabet != "" {
		c.Scan.Alphabet = alphabet
	}
	if start := os.Getenv("VANITYSCAN_START_FROM"); start != "" {
		c.Scan.StartFrom = start
	}
	if concurrent := os.Getenv("VANITYSCAN_CONCURRENCY"); concurrent != "" {
		var val int
		fmt.Sscanf(concurrent, "%d", &val)
		if val > 0 {
			c.Scan.Concurrency = val
		}
	}
	if baseURL := os.Getenv("VANITYSCAN_BASE_URL"); baseURL != "" {
		c.Transport.BaseURL = baseURL
	}
	if userAgent := os.Getenv("VANITYSCAN_USER_AGENT"); userAgent != "" {
		c.Transport.UserAgent = userAgent
	}
	if outputDir := os.Getenv("VANITYSCAN_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}
	if logLevel := os.Getenv("VANITYSCAN_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".vanityscan.yaml",
		".vanityscan.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "vanityscan", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "vanityscan", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".vanityscan.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Scan.Length < 1 || c.Scan.Length > 8 {
		errs = append(errs, errors.New("identifier length must be between 1 and 8"))
	}
	if c.Scan.Alphabet == "" {
		errs = append(errs, errors.New("alphabet must not be empty"))
	}
	if c.Scan.Concurrency <= 0 {
		errs = append(errs, errors.New("concurrency must be positive"))
	}
	if c.Scan.Concurrency > 10 {
		errs = append(errs, errors.New("concurrency should not exceed 10"))
	}

	if c.RateLimit.MinRequestInterval < 0 {
		errs = append(errs, errors.New("min request interval cannot be negative"))
	}
	if c.RateLimit.Cooldown < 0 {
		errs = append(errs, errors.New("cooldown cannot be negative"))
	}
	if c.RateLimit.QuotaSize < 0 {
		errs = append(errs, errors.New("quota size cannot be negative"))
	}

	if c.Transport.BaseURL == "" {
		errs = append(errs, errors.New("lookup base URL is required"))
	}
	if c.Transport.Timeout <= 0 {
		errs = append(errs, errors.New("transport timeout must be positive"))
	}
	if c.Transport.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Report.Interval <= 0 {
		errs = append(errs, errors.New("report interval must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if length, ok := flags["length"].(int); ok && length > 0 {
		c.Scan.Length = length
	}
	if alphabet, ok := flags["alphabet"].(string); ok && alphabet != "" {
		c.Scan.Alphabet = alphabet
	}
	if start, ok := flags["start-from"].(string); ok && start != "" {
		c.Scan.StartFrom = start
	}
	if concurrent, ok := flags["concurrency"].(int); ok && concurrent > 0 {
		c.Scan.Concurrency = concurrent
	}
	if baseURL, ok := flags["base-url"].(string); ok && baseURL != "" {
		c.Transport.BaseURL = baseURL
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".vanityscan.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
