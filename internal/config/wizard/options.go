package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/imamik/topocheck/internal/topology"
)

// StacksToOptions converts stacks to select options keyed by NAME-VERSION.
func StacksToOptions(stacks []*topology.StackDefinition) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(stacks))
	for _, s := range stacks {
		ref := s.Ref().String()
		opts = append(opts, huh.NewOption(ref, ref))
	}
	return opts
}

// ConfigTypeOptions lists the stack's config types, labelled with the
// service that owns each one.
func ConfigTypeOptions(stack *topology.StackDefinition) []huh.Option[string] {
	types := stack.Configuration().AllConfigTypes()
	opts := make([]huh.Option[string], 0, len(types))
	for _, t := range types {
		label := t
		if svc := stack.ServiceForConfigType(t); svc != "" {
			label = t + " (" + svc + ")"
		}
		opts = append(opts, huh.NewOption(label, t))
	}
	return opts
}
