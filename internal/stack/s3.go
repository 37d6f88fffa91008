package stack

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/topocheck/internal/topology"
	"github.com/imamik/topocheck/internal/util/retry"
)

// ObjectStore is the subset of an S3 client the S3 repository needs.
type ObjectStore interface {
	GetObject(ctx context.Context, bucketName, key string) ([]byte, error)
	ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error)
}

// S3Repository reads stack definitions from NAME-VERSION.yaml objects in a bucket.
type S3Repository struct {
	store      ObjectStore
	bucket     string
	prefix     string
	isNotFound func(error) bool
	retryOpts  []retry.Option
	log        logr.Logger
}

// S3Option configures an S3Repository.
type S3Option func(*S3Repository)

// WithPrefix sets the key prefix stacks live under (e.g. "stacks/").
func WithPrefix(prefix string) S3Option {
	return func(r *S3Repository) {
		r.prefix = prefix
	}
}

// WithNotFound sets the predicate that recognizes missing-object errors.
func WithNotFound(fn func(error) bool) S3Option {
	return func(r *S3Repository) {
		r.isNotFound = fn
	}
}

// WithRetry sets the retry options for object fetches.
func WithRetry(opts ...retry.Option) S3Option {
	return func(r *S3Repository) {
		r.retryOpts = opts
	}
}

// WithLogger sets the logger used to report retried fetches.
func WithLogger(log logr.Logger) S3Option {
	return func(r *S3Repository) {
		r.log = log
	}
}

// NewS3Repository creates a repository reading from bucket.
func NewS3Repository(store ObjectStore, bucket string, opts ...S3Option) *S3Repository {
	r := &S3Repository{
		store:      store,
		bucket:     bucket,
		isNotFound: func(error) bool { return false },
		log:        logr.Discard(),
		retryOpts: []retry.Option{
			retry.WithMaxRetries(3),
			retry.WithInitialDelay(500 * time.Millisecond),
			retry.WithMaxDelay(5 * time.Second),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get implements Repository. Missing objects are not retried.
func (r *S3Repository) Get(ctx context.Context, ref topology.Ref) (*topology.StackDefinition, error) {
	key := r.prefix + ref.String() + ".yaml"

	var data []byte
	opts := append([]retry.Option{
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			r.log.V(1).Info("retrying stack fetch", "stack", ref.String(), "key", key, "attempt", attempt, "delay", delay, "error", err.Error())
		}),
	}, r.retryOpts...)
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		data, err = r.store.GetObject(ctx, r.bucket, key)
		if err != nil && r.isNotFound(err) {
			return retry.Fatal(notFound(ref))
		}
		return err
	}, opts...)
	if err != nil {
		if retry.IsFatal(err) {
			return nil, notFound(ref)
		}
		return nil, fmt.Errorf("failed to fetch stack %s: %w", ref, err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", r.bucket, key, err)
	}
	if def.Ref() != ref {
		return nil, fmt.Errorf("s3://%s/%s declares stack %s, expected %s", r.bucket, key, def.Ref(), ref)
	}
	return def.ToStack(), nil
}

// List implements Repository. Only objects directly under the prefix count.
func (r *S3Repository) List(ctx context.Context) ([]topology.Ref, error) {
	keys, err := r.store.ListObjects(ctx, r.bucket, r.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list stacks: %w", err)
	}

	var refs []topology.Ref
	for _, key := range keys {
		rest := strings.TrimPrefix(key, r.prefix)
		if strings.Contains(rest, "/") {
			continue
		}
		if ref, ok := refFromFilename(path.Base(rest)); ok {
			refs = append(refs, ref)
		}
	}
	sortRefs(refs)
	return refs, nil
}
