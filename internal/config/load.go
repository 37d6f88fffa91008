package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/imamik/topocheck/internal/validation"
)

const (
	// DefaultConfigFilename is the default configuration filename.
	DefaultConfigFilename = "topocheck.yaml"

	// EnvPrefix prefixes every environment variable override.
	EnvPrefix = "TOPOCHECK"
)

// ErrConfigNotFound is returned by FindConfigFile when no config file exists.
var ErrConfigNotFound = errors.New("config file " + DefaultConfigFilename + " not found")

var defaults = map[string]any{
	"stacks.source":          SourceDir,
	"stacks.dir":             "stacks",
	"stacks.s3.endpoint":     "",
	"stacks.s3.region":       "",
	"stacks.s3.bucket":       "",
	"stacks.s3.prefix":       "stacks/",
	"stacks.s3.accessKey":    "",
	"stacks.s3.secretKey":    "",
	"stacks.s3.pathStyle":    false,
	"stacks.fetchTimeout":    "30s",
	"validation.mode":        string(validation.ModeFailFast),
	"validation.parallelism": 4,
	"log.level":              "info",
	"log.format":             "console",
	"log.file":               "",
	"log.maxSizeMB":          10,
	"log.maxBackups":         3,
	"metrics.textfile":       "",
	"tracing.enabled":        false,
}

// Default returns the built-in configuration, ignoring files and environment.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Sprintf("invalid built-in defaults: %v", err))
	}
	return cfg
}

// Load reads the configuration. If path is empty the working directory and
// its parents are searched for topocheck.yaml, and a missing file means
// defaults. Overrides are dotted keys (as set by command-line flags) and win
// over every other source.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := newViper()
	bindEnv(v)

	if path == "" {
		found, err := findConfigFromCwd()
		if err != nil && !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
		path = found
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, val := range overrides {
		v.Set(key, val)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.path = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	return v
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToModeHookFunc(),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// stringToModeHookFunc normalizes validation modes so "Collect" and
// " collect " are accepted.
func stringToModeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(validation.Mode("")) {
			return data, nil
		}
		return validation.Mode(strings.ToLower(strings.TrimSpace(data.(string)))), nil
	}
}

func findConfigFromCwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return FindConfigFile(cwd)
}

// FindConfigFile searches dir and then each parent directory for
// topocheck.yaml.
func FindConfigFile(dir string) (string, error) {
	for {
		path := filepath.Join(dir, DefaultConfigFilename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// Save writes a configuration to a file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
