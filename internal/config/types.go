package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/imamik/topocheck/internal/validation"
)

// Stack sources.
const (
	SourceDir = "dir"
	SourceS3  = "s3"
)

// ValidSources contains all valid stack sources.
var ValidSources = map[string]bool{
	SourceDir: true,
	SourceS3:  true,
}

// ValidLogLevels contains all valid log levels.
var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidLogFormats contains all valid log formats.
var ValidLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Config is the application configuration.
type Config struct {
	Stacks     StacksConfig     `mapstructure:"stacks" yaml:"stacks"`
	Validation ValidationConfig `mapstructure:"validation" yaml:"validation"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics" yaml:"metrics"`
	Tracing    TracingConfig    `mapstructure:"tracing" yaml:"tracing"`

	// path is the config file the values were read from, if any.
	path string
}

// StacksConfig selects where stack definitions are read from.
type StacksConfig struct {
	Source       string        `mapstructure:"source" yaml:"source"`
	Dir          string        `mapstructure:"dir" yaml:"dir"`
	S3           S3Config      `mapstructure:"s3" yaml:"s3"`
	FetchTimeout time.Duration `mapstructure:"fetchTimeout" yaml:"fetchTimeout"`
}

// S3Config holds the bucket stack definitions are kept in.
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	Region    string `mapstructure:"region" yaml:"region"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
	AccessKey string `mapstructure:"accessKey" yaml:"accessKey,omitempty"`
	SecretKey string `mapstructure:"secretKey" yaml:"secretKey,omitempty"`
	PathStyle bool   `mapstructure:"pathStyle" yaml:"pathStyle,omitempty"`
}

// ValidationConfig controls the validator pipeline.
type ValidationConfig struct {
	Mode        validation.Mode `mapstructure:"mode" yaml:"mode"`
	Parallelism int             `mapstructure:"parallelism" yaml:"parallelism"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	// File enables rotated file output in addition to stderr.
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB" yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `mapstructure:"maxBackups" yaml:"maxBackups,omitempty"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	// Textfile is a path for the Prometheus text format, for node_exporter's
	// textfile collector. Empty disables export.
	Textfile string `mapstructure:"textfile" yaml:"textfile,omitempty"`
}

// TracingConfig controls trace export.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Path returns the config file the configuration was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate checks the configuration and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case !ValidSources[c.Stacks.Source]:
		errs = append(errs, fmt.Errorf("stacks.source must be one of: %v, got %q", []string{SourceDir, SourceS3}, c.Stacks.Source))
	case c.Stacks.Source == SourceDir && c.Stacks.Dir == "":
		errs = append(errs, errors.New("stacks.dir is required when stacks.source is dir"))
	case c.Stacks.Source == SourceS3:
		if c.Stacks.S3.Bucket == "" {
			errs = append(errs, errors.New("stacks.s3.bucket is required when stacks.source is s3"))
		}
		if c.Stacks.S3.Region == "" {
			errs = append(errs, errors.New("stacks.s3.region is required when stacks.source is s3"))
		}
		if (c.Stacks.S3.AccessKey == "") != (c.Stacks.S3.SecretKey == "") {
			errs = append(errs, errors.New("stacks.s3.accessKey and stacks.s3.secretKey must be set together"))
		}
	}
	if c.Stacks.FetchTimeout <= 0 {
		errs = append(errs, errors.New("stacks.fetchTimeout must be positive"))
	}

	if !c.Validation.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("validation.mode must be one of: %v", validation.ValidModes()))
	}
	if c.Validation.Parallelism < 1 {
		errs = append(errs, errors.New("validation.parallelism must be at least 1"))
	}

	if !ValidLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level))
	}
	if !ValidLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
