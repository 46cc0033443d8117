package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL       = "WISHLIST_API_URL"
	EnvAPITimeout   = "WISHLIST_API_TIMEOUT"
	EnvRateLimit    = "WISHLIST_RATE_LIMIT"
	EnvRateBurst    = "WISHLIST_RATE_BURST"
	EnvAddr         = "WISHLIST_ADDR"
	EnvMetrics      = "WISHLIST_METRICS"
	EnvThemeVariant = "WISHLIST_THEME_VARIANT"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides c with the WISHLIST_* variables lookup reports.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvAPITimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvAPITimeout, err)
		}
		c.API.Timeout = d
	}
	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvRateLimit, err)
		}
		c.API.RateLimit = rps
	}
	if v, ok := lookup(EnvRateBurst); ok && v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvRateBurst, err)
		}
		c.API.Burst = burst
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvMetrics); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvMetrics, err)
		}
		c.Server.Metrics = enabled
	}
	if v, ok := lookup(EnvThemeVariant); ok {
		c.Theme.Variant = v
	}
	return nil
}
