// Package config loads and validates depfang configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// UnlimitedDepth disables the traversal depth limit.
const UnlimitedDepth = -1

// Default configuration values.
const (
	DefaultDepth       = UnlimitedDepth
	DefaultOutputter   = "table"
	DefaultMaxFileSize = "1MB"
	DefaultCacheDir    = ".depfang-cache"
)

// ErrInvalidDepth is returned for a depth below -1.
var ErrInvalidDepth = errors.New("depth must be -1 (unlimited) or non-negative")

// ErrNoOutputter is returned when the outputter name is empty.
var ErrNoOutputter = errors.New("outputter name must not be empty")

// Config is the top-level configuration struct for depfang.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Project         string            `mapstructure:"project"          yaml:"project"`
	Depth           int               `mapstructure:"depth"            yaml:"depth"`
	Quiet           bool              `mapstructure:"quiet"            yaml:"quiet"`
	Outputter       string            `mapstructure:"outputter"        yaml:"outputter"`
	OutputterParams map[string]string `mapstructure:"outputter_params" yaml:"outputter_params,omitempty"`
	MaxFileSize     string            `mapstructure:"max_file_size"    yaml:"max_file_size"`
	ExcludeDirs     []string          `mapstructure:"exclude_dirs"     yaml:"exclude_dirs,omitempty"`
	Cache           CacheConfig       `mapstructure:"cache"            yaml:"cache"`
}

// CacheConfig holds the incremental scan cache settings.
type CacheConfig struct {
	Enabled   bool   `mapstructure:"enabled"   yaml:"enabled"`
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// Validate checks cross-field constraints the schema cannot express.
func (c *Config) Validate() error {
	if c.Depth < UnlimitedDepth {
		return ErrInvalidDepth
	}

	if c.Outputter == "" {
		return ErrNoOutputter
	}

	if c.MaxFileSize != "" {
		if _, err := humanize.ParseBytes(c.MaxFileSize); err != nil {
			return fmt.Errorf("parse max_file_size %q: %w", c.MaxFileSize, err)
		}
	}

	return nil
}

// MaxFileSizeBytes returns the max file size as a byte count; zero means no
// limit. Validate must have accepted the config first.
func (c *Config) MaxFileSizeBytes() int64 {
	if c.MaxFileSize == "" {
		return 0
	}

	size, err := humanize.ParseBytes(c.MaxFileSize)
	if err != nil {
		return 0
	}

	return int64(size)
}
