package stack

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/imamik/topocheck/internal/topology"
)

// DirRepository reads stack definitions from NAME-VERSION.yaml files in a directory.
type DirRepository struct {
	dir string
}

// NewDirRepository creates a repository rooted at dir.
func NewDirRepository(dir string) *DirRepository {
	return &DirRepository{dir: dir}
}

// Get implements Repository. The file's name and version must match ref.
func (r *DirRepository) Get(ctx context.Context, ref topology.Ref) (*topology.StackDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ext := range fileExtensions {
		path := filepath.Join(r.dir, ref.String()+ext)
		def, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if def.Ref() != ref {
			return nil, fmt.Errorf("%s declares stack %s, expected %s", path, def.Ref(), ref)
		}
		return def.ToStack(), nil
	}

	return nil, notFound(ref)
}

// List implements Repository.
func (r *DirRepository) List(ctx context.Context) ([]topology.Ref, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read stack directory: %w", err)
	}

	var refs []topology.Ref
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ref, ok := refFromFilename(entry.Name()); ok {
			refs = append(refs, ref)
		}
	}
	sortRefs(refs)
	return slices.Compact(refs), nil
}
