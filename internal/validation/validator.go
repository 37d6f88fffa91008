package validation

import "github.com/imamik/topocheck/internal/topology"

// Validator checks one aspect of a cluster topology.
type Validator interface {
	// Name identifies the validator in reports, logs and metrics.
	Name() string
	// Validate returns nil if the topology passes.
	Validate(t topology.ClusterTopology) error
}

// DefaultValidators returns the validators run when none are configured.
func DefaultValidators() []Validator {
	return []Validator{
		NewStackConfigTypeValidator(),
	}
}
