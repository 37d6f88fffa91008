package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/topocheck/internal/topology"
)

// MockObjectStore is a mock implementation of an S3 object store.
type MockObjectStore struct {
	mock.Mock
}

// GetObject returns the mocked object body.
func (m *MockObjectStore) GetObject(ctx context.Context, bucketName, key string) ([]byte, error) {
	args := m.Called(ctx, bucketName, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ListObjects returns the mocked object keys.
func (m *MockObjectStore) ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error) {
	args := m.Called(ctx, bucketName, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockRepository is a mock implementation of a stack repository.
type MockRepository struct {
	mock.Mock
}

// Get returns the mocked stack.
func (m *MockRepository) Get(ctx context.Context, ref topology.Ref) (*topology.StackDefinition, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*topology.StackDefinition), args.Error(1)
}

// List returns the mocked refs.
func (m *MockRepository) List(ctx context.Context) ([]topology.Ref, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]topology.Ref), args.Error(1)
}
