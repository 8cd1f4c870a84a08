// Package config loads the application configuration from a YAML file
// with SHARP_ environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/SharpAssistant/core/text"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
	"github.com/FocuswithJustin/SharpAssistant/internal/validation"
)

// Config is the top-level configuration, corresponding to sharp.yml.
type Config struct {
	DataDir string       `yaml:"data_dir" koanf:"data_dir"`
	Cache   CacheConfig  `yaml:"cache" koanf:"cache"`
	ESV     ESVConfig    `yaml:"esv" koanf:"esv"`
	Server  ServerConfig `yaml:"server" koanf:"server"`
	Log     LogConfig    `yaml:"log" koanf:"log"`
}

// CacheConfig sizes the verse cache. The freshness window is fixed.
type CacheConfig struct {
	MaxSize int `yaml:"max_size" koanf:"max_size"`
}

// ESVConfig configures the optional ESV API provider. An empty token
// leaves the provider disabled.
type ESVConfig struct {
	Token   string `yaml:"token" koanf:"token"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port              int      `yaml:"port" koanf:"port"`
	APIKey            string   `yaml:"api_key" koanf:"api_key"`
	AuthEnabled       bool     `yaml:"auth_enabled" koanf:"auth_enabled"`
	RateLimitRequests int      `yaml:"rate_limit_requests" koanf:"rate_limit_requests"`
	RateLimitBurst    int      `yaml:"rate_limit_burst" koanf:"rate_limit_burst"`
	AllowedOrigins    []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	TLSEnabled        bool     `yaml:"tls_enabled" koanf:"tls_enabled"`
	TLSCertFile       string   `yaml:"tls_cert_file" koanf:"tls_cert_file"`
	TLSKeyFile        string   `yaml:"tls_key_file" koanf:"tls_key_file"`
}

// LogConfig configures log output.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "data",
		Cache:   CacheConfig{MaxSize: 500},
		Server: ServerConfig{
			Port:              8080,
			RateLimitRequests: 120,
			RateLimitBurst:    20,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SHARP_*). Nested keys use
// underscores doubled up: SHARP_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("SHARP_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "SHARP_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log level values.
var validLogLevels = map[string]logging.Level{
	"debug": logging.LevelDebug,
	"info":  logging.LevelInfo,
	"warn":  logging.LevelWarn,
	"error": logging.LevelError,
}

// validLogFormats is the set of recognized log format values.
var validLogFormats = map[string]logging.Format{
	"json": logging.FormatJSON,
	"text": logging.FormatText,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if err := validation.ValidatePath(c.DataDir); err != nil {
		return fmt.Errorf("invalid data_dir: %w", err)
	}

	if c.Cache.MaxSize <= 0 {
		return fmt.Errorf("cache.max_size must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.AuthEnabled && c.Server.APIKey == "" {
		return fmt.Errorf("server.api_key is required when auth is enabled")
	}
	if c.Server.RateLimitRequests < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit values must be non-negative")
	}
	if c.Server.TLSEnabled && (c.Server.TLSCertFile == "" || c.Server.TLSKeyFile == "") {
		return fmt.Errorf("server.tls_cert_file and server.tls_key_file are required when TLS is enabled")
	}

	if _, ok := validLogLevels[c.Log.Level]; !ok {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if _, ok := validLogFormats[c.Log.Format]; !ok {
		return fmt.Errorf("invalid log.format %q: must be json or text", c.Log.Format)
	}

	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	return validLogLevels[c.Log.Level]
}

// LogFormat returns the parsed log format.
func (c *Config) LogFormat() logging.Format {
	return validLogFormats[c.Log.Format]
}

// SourceDir returns the book-file directory for a translation,
// conventionally a lowercased subdirectory of the data dir.
func (c *Config) SourceDir(id text.TranslationID) string {
	return filepath.Join(c.DataDir, strings.ToLower(string(id)))
}

// ApocryphaDir returns the apocrypha corpus directory.
func (c *Config) ApocryphaDir() string {
	return filepath.Join(c.DataDir, "apocrypha")
}
