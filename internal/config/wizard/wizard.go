package wizard

import (
	"context"
	"fmt"

	"github.com/imamik/topocheck/internal/topology"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	BlueprintName string
	Stack         topology.Ref

	// Config types set on the blueprint and overridden at cluster creation.
	BlueprintConfigTypes []string
	ClusterConfigTypes   []string

	HostGroup  string
	Components []string
}

// RunWizard runs the interactive request wizard over the given stacks.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, stacks []*topology.StackDefinition) (*WizardResult, error) {
	if len(stacks) == 0 {
		return nil, errNoStacks
	}
	result := &WizardResult{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	if err := runStackGroup(ctx, stacks, result); err != nil {
		return nil, fmt.Errorf("stack: %w", err)
	}

	stack := findStack(stacks, result.Stack)
	if err := runConfigTypesGroup(ctx, stack, result); err != nil {
		return nil, fmt.Errorf("config types: %w", err)
	}

	if err := runHostGroupGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("host group: %w", err)
	}

	return result, nil
}

func findStack(stacks []*topology.StackDefinition, ref topology.Ref) *topology.StackDefinition {
	for _, s := range stacks {
		if s.Ref() == ref {
			return s
		}
	}
	return stacks[0]
}
