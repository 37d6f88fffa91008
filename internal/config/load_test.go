package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/topocheck/internal/validation"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, SourceDir, cfg.Stacks.Source)
	assert.Equal(t, "stacks", cfg.Stacks.Dir)
	assert.Equal(t, "stacks/", cfg.Stacks.S3.Prefix)
	assert.Equal(t, 30*time.Second, cfg.Stacks.FetchTimeout)
	assert.Equal(t, validation.ModeFailFast, cfg.Validation.Mode)
	assert.Equal(t, 4, cfg.Validation.Parallelism)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Tracing.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), `
stacks:
  source: s3
  fetchTimeout: 2m
  s3:
    endpoint: http://localhost:9000
    region: eu-central-1
    bucket: stacks
    pathStyle: true
validation:
  mode: Collect
  parallelism: 8
log:
  level: debug
  format: json
metrics:
  textfile: /tmp/topocheck.prom
tracing:
  enabled: true
`)

	cfg, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, SourceS3, cfg.Stacks.Source)
	assert.Equal(t, 2*time.Minute, cfg.Stacks.FetchTimeout)
	assert.Equal(t, "http://localhost:9000", cfg.Stacks.S3.Endpoint)
	assert.Equal(t, "stacks", cfg.Stacks.S3.Bucket)
	assert.Equal(t, "stacks/", cfg.Stacks.S3.Prefix, "unset keys keep defaults")
	assert.True(t, cfg.Stacks.S3.PathStyle)
	assert.Equal(t, validation.ModeCollect, cfg.Validation.Mode, "mode is normalized")
	assert.Equal(t, 8, cfg.Validation.Parallelism)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/topocheck.prom", cfg.Metrics.Textfile)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), "stacks:\n  dir: from-file\n")

	cfg, err := Load(path, map[string]any{
		"stacks.dir":      "from-flag",
		"validation.mode": "collect",
	})

	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Stacks.Dir)
	assert.Equal(t, validation.ModeCollect, cfg.Validation.Mode)
}

func TestLoad_Env(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "stacks:\n  dir: from-file\n")
	t.Setenv("TOPOCHECK_STACKS_DIR", "from-env")
	t.Setenv("TOPOCHECK_VALIDATION_PARALLELISM", "2")

	cfg, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Stacks.Dir)
	assert.Equal(t, 2, cfg.Validation.Parallelism)
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	t.Setenv("TOPOCHECK_STACKS_DIR", "from-env")

	cfg, err := Load(writeConfig(t, t.TempDir(), "{}\n"), map[string]any{"stacks.dir": "from-flag"})

	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Stacks.Dir)
}

func TestLoad_FindsFileInParent(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "stacks:\n  dir: found\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, "found", cfg.Stacks.Dir)
	assert.Equal(t, filepath.Join(root, DefaultConfigFilename), cfg.Path())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "stacks: [", "failed to read config file"},
		{"bad duration", "stacks:\n  fetchTimeout: soon\n", "failed to decode config"},
		{"invalid values", "validation:\n  mode: sometimes\n", "configuration validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, t.TempDir(), tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestFindConfigFile_NotFound(t *testing.T) {
	t.Parallel()

	// Temp dirs live below the system temp root, which holds no topocheck.yaml.
	_, err := FindConfigFile(t.TempDir())

	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Stacks.Dir = "/srv/stacks"
	cfg.Validation.Mode = validation.ModeCollect
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)

	require.NoError(t, Save(cfg, path))
	loaded, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, cfg.Stacks, loaded.Stacks)
	assert.Equal(t, cfg.Validation, loaded.Validation)
}
