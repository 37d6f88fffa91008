// Package handlers implements the business logic for CLI commands.
//
// Handlers load configuration, build the stack repository and logger, and
// delegate to the library packages under internal/. Factory variables make
// the terminal and interactive parts replaceable in tests.
package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/imamik/topocheck/internal/config"
	"github.com/imamik/topocheck/internal/logging"
	"github.com/imamik/topocheck/internal/platform/s3"
	"github.com/imamik/topocheck/internal/stack"
)

// Factory function variables - can be replaced in tests.
var (
	// newRepository builds the stack repository for the configured source.
	newRepository = defaultNewRepository
)

// runtime bundles what every command needs.
type runtime struct {
	cfg      *config.Config
	log      logr.Logger
	repo     stack.Repository
	closeLog func() error
}

// loadRuntime loads configuration, then builds the logger (writing to errOut)
// and the stack repository.
func loadRuntime(ctx context.Context, configPath string, overrides map[string]any, errOut io.Writer) (*runtime, error) {
	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(cfg.Log, errOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	if cfg.Path() != "" {
		log.V(1).Info("loaded configuration", "path", cfg.Path())
	}

	repo, err := newRepository(ctx, cfg.Stacks, log)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &runtime{cfg: cfg, log: log, repo: repo, closeLog: closeLog}, nil
}

func (r *runtime) close() {
	_ = r.closeLog()
}

func defaultNewRepository(ctx context.Context, cfg config.StacksConfig, log logr.Logger) (stack.Repository, error) {
	switch cfg.Source {
	case config.SourceS3:
		client, err := s3.NewClient(ctx, s3.Options{
			Endpoint:     cfg.S3.Endpoint,
			Region:       cfg.S3.Region,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			UsePathStyle: cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		exists, err := client.BucketExists(ctx, cfg.S3.Bucket)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("stack bucket %q does not exist", cfg.S3.Bucket)
		}
		log.V(1).Info("using S3 stack repository", "bucket", cfg.S3.Bucket, "prefix", cfg.S3.Prefix)
		return stack.NewS3Repository(client, cfg.S3.Bucket,
			stack.WithPrefix(cfg.S3.Prefix),
			stack.WithNotFound(s3.IsNotFound),
			stack.WithLogger(log.WithName("stacks")),
		), nil
	default:
		log.V(1).Info("using stack directory", "dir", cfg.Dir)
		return stack.NewDirRepository(cfg.Dir), nil
	}
}
