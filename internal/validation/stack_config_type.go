package validation

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/imamik/topocheck/internal/topology"
)

// StackConfigTypeValidator rejects cluster configuration that uses config
// types the target stack does not declare.
type StackConfigTypeValidator struct{}

// NewStackConfigTypeValidator creates a new stack config type validator.
func NewStackConfigTypeValidator() *StackConfigTypeValidator {
	return &StackConfigTypeValidator{}
}

// Name implements Validator.
func (v *StackConfigTypeValidator) Name() string {
	return "stack-config-type"
}

// Validate implements Validator. All unknown config types are reported in a
// single *TopologyValidationError, sorted.
func (v *StackConfigTypeValidator) Validate(t topology.ClusterTopology) error {
	clusterTypes := sets.New(t.Configuration().AllConfigTypes()...)
	if clusterTypes.Len() == 0 {
		return nil
	}

	stackTypes := sets.New(t.Stack().Configuration().AllConfigTypes()...)

	invalid := clusterTypes.Difference(stackTypes)
	if invalid.Len() == 0 {
		return nil
	}

	return &TopologyValidationError{
		Validator: v.Name(),
		Kind:      KindUnknownConfigType,
		Invalid:   sets.List(invalid),
	}
}
