package shelldisplay

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config controls caching and performance monitoring. Every field is
// independently settable; the zero value is not usable, start from
// DefaultConfig.
type Config struct {
	// CacheEnabled turns the display cache on or off.
	CacheEnabled bool `toml:"cache_enabled"`
	// MaxCacheEntries bounds the number of cached display states.
	MaxCacheEntries int `toml:"max_cache_entries"`
	// CacheTTL is the base time-to-live for cache entries before
	// access-frequency scaling.
	CacheTTL time.Duration `toml:"cache_ttl"`

	// PerformanceMonitoring enables latency and hit-rate tracking.
	PerformanceMonitoring bool `toml:"performance_monitoring"`
	// AdaptiveOptimization forces an early cache sweep whenever the
	// memory estimate exceeds MemoryThreshold.
	AdaptiveOptimization bool `toml:"adaptive_optimization"`

	// LatencyThreshold marks the acceptable average display latency.
	LatencyThreshold time.Duration `toml:"latency_threshold"`
	// MemoryThreshold marks the acceptable cache memory estimate in bytes.
	MemoryThreshold int `toml:"memory_threshold"`

	// Theme names the active theme ("dark", "light").
	Theme string `toml:"theme"`
	// SymbolMode is "auto", "unicode", or "ascii".
	SymbolMode string `toml:"symbol_mode"`
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		CacheEnabled:          true,
		MaxCacheEntries:       defaultCacheCapacity,
		CacheTTL:              defaultCacheTTL,
		PerformanceMonitoring: true,
		AdaptiveOptimization:  false,
		LatencyThreshold:      5 * time.Millisecond,
		MemoryThreshold:       1 << 20,
		Theme:                 "dark",
		SymbolMode:            "auto",
	}
}

// Validate reports the first invalid configuration value, wrapped around
// ErrConfigurationInvalid.
func (c Config) Validate() error {
	if c.MaxCacheEntries <= 0 {
		return fmt.Errorf("%w: max_cache_entries must be positive, got %d", ErrConfigurationInvalid, c.MaxCacheEntries)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("%w: cache_ttl must be positive, got %s", ErrConfigurationInvalid, c.CacheTTL)
	}
	if c.LatencyThreshold < 0 {
		return fmt.Errorf("%w: latency_threshold must not be negative", ErrConfigurationInvalid)
	}
	if c.MemoryThreshold < 0 {
		return fmt.Errorf("%w: memory_threshold must not be negative", ErrConfigurationInvalid)
	}
	if _, err := parseSymbolMode(c.SymbolMode); err != nil {
		return err
	}
	return nil
}

// symbolMode returns the parsed SymbolMode. Call Validate first.
func (c Config) symbolMode() SymbolMode {
	mode, _ := parseSymbolMode(c.SymbolMode)
	return mode
}

// parseSymbolMode maps a configuration string to a SymbolMode.
func parseSymbolMode(s string) (SymbolMode, error) {
	switch s {
	case "", "auto":
		return SymbolModeAuto, nil
	case "unicode":
		return SymbolModeUnicode, nil
	case "ascii":
		return SymbolModeASCII, nil
	default:
		return SymbolModeAuto, fmt.Errorf("%w: unknown symbol_mode %q", ErrConfigurationInvalid, s)
	}
}

// LoadConfig reads a TOML configuration file, applying defaults for any
// field the file omits.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("shelldisplay: read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfigurationInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
