// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atsresumie/latex-studio/internal/logging"
)

// Config represents the studio configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults, and environment variables
// override file values.
type Config struct {
	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"` // HTTP listen port

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // text or json

	// Storage
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty" yaml:"redis_url,omitempty"`       // Redis URL for the PDF cache; empty uses an in-process cache

	// Collaborators
	CompilerURL        string  `json:"compiler_url,omitempty" yaml:"compiler_url,omitempty"`                 // LaTeX compile service base URL
	CompilerTimeoutSec int     `json:"compiler_timeout_sec,omitempty" yaml:"compiler_timeout_sec,omitempty"` // Compile request timeout
	CacheTTLMinutes    int     `json:"cache_ttl_minutes,omitempty" yaml:"cache_ttl_minutes,omitempty"`       // Compiled PDF cache lifetime
	APIKey             string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`                           // Gemini API key
	Model              string  `json:"model,omitempty" yaml:"model,omitempty"`                               // Gemini model name
	ChromePath         string  `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`                   // Chrome binary for page capture
	CaptureScale       float64 `json:"capture_scale,omitempty" yaml:"capture_scale,omitempty"`               // Device scale for page capture
	CaptureTimeoutSec  int     `json:"capture_timeout_sec,omitempty" yaml:"capture_timeout_sec,omitempty"`   // Page capture timeout
	Template           string  `json:"template,omitempty" yaml:"template,omitempty"`                         // Path to a LaTeX resume template
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:               8080,
		LogLevel:           "info",
		LogFormat:          logging.FormatText,
		CompilerTimeoutSec: 60,
		CacheTTLMinutes:    60,
		Model:              "gemini-1.5-flash",
		CaptureScale:       2,
		CaptureTimeoutSec:  60,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set.
// Numeric variables that fail to parse are reported as errors.
func (c *Config) ApplyEnv() error {
	stringVars := map[string]*string{
		"LOG_LEVEL":      &c.LogLevel,
		"LOG_FORMAT":     &c.LogFormat,
		"DATABASE_URL":   &c.DatabaseURL,
		"REDIS_URL":      &c.RedisURL,
		"COMPILER_URL":   &c.CompilerURL,
		"GEMINI_API_KEY": &c.APIKey,
		"GEMINI_MODEL":   &c.Model,
		"CHROME_PATH":    &c.ChromePath,
	}
	for name, field := range stringVars {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}

	intVars := map[string]*int{
		"PORT":                 &c.Port,
		"COMPILER_TIMEOUT_SEC": &c.CompilerTimeoutSec,
		"CACHE_TTL_MINUTES":    &c.CacheTTLMinutes,
		"CAPTURE_TIMEOUT_SEC":  &c.CaptureTimeoutSec,
	}
	for name, field := range intVars {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", name, err)
		}
		*field = n
	}

	if v := os.Getenv("CAPTURE_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid CAPTURE_SCALE: %v", err)
		}
		c.CaptureScale = f
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Required collaborators are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CompilerTimeoutSec < 0 || c.CacheTTLMinutes < 0 || c.CaptureTimeoutSec < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}
	if c.CaptureScale < 0 {
		return fmt.Errorf("config error: 'capture_scale' must be non-negative")
	}

	switch c.LogFormat {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("config error: 'log_format' must be %q or %q", logging.FormatText, logging.FormatJSON)
	}

	if c.CompilerURL != "" && !strings.HasPrefix(c.CompilerURL, "http://") && !strings.HasPrefix(c.CompilerURL, "https://") {
		return fmt.Errorf("config error: 'compiler_url' must be an http(s) URL")
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.LogLevel, defaults.LogLevel)
	mergeString(&result.LogFormat, defaults.LogFormat)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.RedisURL, defaults.RedisURL)
	mergeString(&result.CompilerURL, defaults.CompilerURL)
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.ChromePath, defaults.ChromePath)
	mergeString(&result.Template, defaults.Template)

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.CompilerTimeoutSec == 0 {
		result.CompilerTimeoutSec = defaults.CompilerTimeoutSec
	}
	if result.CacheTTLMinutes == 0 {
		result.CacheTTLMinutes = defaults.CacheTTLMinutes
	}
	if result.CaptureTimeoutSec == 0 {
		result.CaptureTimeoutSec = defaults.CaptureTimeoutSec
	}
	if result.CaptureScale == 0 {
		result.CaptureScale = defaults.CaptureScale
	}

	return result
}

// Load reads the optional config file, applies environment overrides and fills defaults
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

func mergeString(field *string, def string) {
	if *field == "" {
		*field = def
	}
}
