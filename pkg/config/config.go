// Package config loads console settings. Values are layered: defaults, then
// an optional YAML file, then the environment (including a .env file), then
// whatever the binary applies from its flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingBaseURL is returned by Validate when no service URL is set.
	ErrMissingBaseURL = errors.New("config: api.base_url is required")
	// ErrInvalid wraps every other validation failure.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is the full console configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Server ServerConfig `yaml:"server"`
	Theme  ThemeConfig  `yaml:"theme"`
}

// APIConfig describes the wishlist service the consoles talk to.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
	// Validate checks request bodies against the OpenAPI document before
	// they are sent.
	Validate bool `yaml:"validate"`
	// Spec optionally points at an OpenAPI document replacing the embedded one.
	Spec string `yaml:"spec"`
}

// ServerConfig configures the web console.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Metrics         bool          `yaml:"metrics"`
	Title           string        `yaml:"title"`
	// Templates is a directory replacing the embedded page templates.
	Templates string `yaml:"templates"`
	// Hints maps page element ids to tooltip text shown on the inputs.
	Hints map[string]string `yaml:"hints"`
}

// Default returns the built-in configuration. BaseURL is empty and must be
// supplied.
func Default() Config {
	return Config{
		API: APIConfig{
			Timeout:  10 * time.Second,
			Burst:    1,
			Validate: true,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			Title:           "Wishlist Demo REST API Service",
		},
	}
}

// Load builds a configuration from the defaults, the YAML file at path (when
// non-empty) and the process environment. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(data, "document"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return c.decode(data, path)
}

func (c *Config) decode(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", source, err)
	}
	return nil
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an absolute URL", ErrInvalid, base)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalid)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("%w: api.rate_limit must not be negative", ErrInvalid)
	}
	if c.API.Burst < 0 {
		return fmt.Errorf("%w: api.burst must not be negative", ErrInvalid)
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalid, name)
		}
	}
	return c.Theme.validate()
}
