package request

import (
	"context"
	"fmt"

	"github.com/imamik/topocheck/internal/stack"
	"github.com/imamik/topocheck/internal/topology"
)

// Resolver turns requests into topologies.
type Resolver struct {
	repo stack.Repository
}

// NewResolver creates a resolver that looks stacks up in repo.
func NewResolver(repo stack.Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve fetches the request's stack and builds its topology. The cluster
// configuration is layered on the blueprint configuration.
func (r *Resolver) Resolve(ctx context.Context, req *Request) (*topology.Topology, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	def, err := r.repo.Get(ctx, req.Blueprint.Stack)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stack %s: %w", req.Blueprint.Stack, err)
	}

	bp := &topology.Blueprint{
		Name:          req.Blueprint.Name,
		Stack:         req.Blueprint.Stack,
		Configuration: toConfig(req.Blueprint.Configurations),
	}
	for _, hg := range req.Blueprint.HostGroups {
		bp.HostGroups = append(bp.HostGroups, topology.HostGroup{
			Name:        hg.Name,
			Cardinality: hg.Cardinality,
			Components:  hg.Components,
		})
	}

	name := req.Name
	if name == "" {
		name = req.Blueprint.Name
	}
	return topology.New(name, bp, def, toConfig(req.Configurations)), nil
}
