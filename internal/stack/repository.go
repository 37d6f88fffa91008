package stack

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/imamik/topocheck/internal/topology"
)

// ErrStackNotFound is returned when a repository has no definition for a ref.
var ErrStackNotFound = errors.New("stack not found")

// Repository looks up stack definitions.
type Repository interface {
	// Get returns the stack for ref, or an error wrapping ErrStackNotFound.
	Get(ctx context.Context, ref topology.Ref) (*topology.StackDefinition, error)
	// List returns the refs of all available stacks, sorted.
	List(ctx context.Context) ([]topology.Ref, error)
}

// fileExtensions are the accepted stack definition file extensions, in lookup order.
var fileExtensions = []string{".yaml", ".yml"}

// refFromFilename parses NAME-VERSION.yaml. ok is false for other names.
func refFromFilename(name string) (topology.Ref, bool) {
	for _, ext := range fileExtensions {
		if base, found := strings.CutSuffix(name, ext); found {
			ref, err := topology.ParseRef(base)
			return ref, err == nil
		}
	}
	return topology.Ref{}, false
}

func sortRefs(refs []topology.Ref) {
	slices.SortFunc(refs, func(a, b topology.Ref) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Version, b.Version)
	})
}

func notFound(ref topology.Ref) error {
	return fmt.Errorf("%w: %s", ErrStackNotFound, ref)
}

// MemoryRepository serves stacks held in memory. It is safe for concurrent use.
type MemoryRepository struct {
	mu     sync.RWMutex
	stacks map[topology.Ref]*topology.StackDefinition
}

// NewMemoryRepository creates a repository holding stacks.
func NewMemoryRepository(stacks ...*topology.StackDefinition) *MemoryRepository {
	r := &MemoryRepository{stacks: make(map[topology.Ref]*topology.StackDefinition, len(stacks))}
	for _, s := range stacks {
		r.stacks[s.Ref()] = s
	}
	return r
}

// Add adds or replaces a stack.
func (r *MemoryRepository) Add(s *topology.StackDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stacks[s.Ref()] = s
}

// Get implements Repository.
func (r *MemoryRepository) Get(_ context.Context, ref topology.Ref) (*topology.StackDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stacks[ref]
	if !ok {
		return nil, notFound(ref)
	}
	return s, nil
}

// List implements Repository.
func (r *MemoryRepository) List(_ context.Context) ([]topology.Ref, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]topology.Ref, 0, len(r.stacks))
	for ref := range r.stacks {
		refs = append(refs, ref)
	}
	sortRefs(refs)
	return refs, nil
}
