package topology

// Topology is a resolved deployment plan: a blueprint, its stack and the
// cluster-creation-time configuration layered on the blueprint's.
type Topology struct {
	name      string
	blueprint *Blueprint
	stack     *StackDefinition
	config    *Config
}

// New creates a topology. A copy of the cluster config is parented onto the
// blueprint config so that lookups see both; the caller's config is left
// untouched. A nil cluster config is treated as empty.
func New(name string, bp *Blueprint, stack *StackDefinition, clusterConfig *Config) *Topology {
	if clusterConfig == nil {
		clusterConfig = NewConfig(nil, nil)
	} else {
		clusterConfig = clusterConfig.Clone()
	}
	if bp != nil && bp.Configuration != nil {
		clusterConfig.SetParent(bp.Configuration)
	}
	return &Topology{
		name:      name,
		blueprint: bp,
		stack:     stack,
		config:    clusterConfig,
	}
}

// Name returns the topology name (usually the request file it came from).
func (t *Topology) Name() string {
	return t.name
}

// Blueprint returns the blueprint.
func (t *Topology) Blueprint() *Blueprint {
	return t.blueprint
}

// StackDefinition returns the concrete stack.
func (t *Topology) StackDefinition() *StackDefinition {
	return t.stack
}

// ClusterConfig returns the resolved cluster config.
func (t *Topology) ClusterConfig() *Config {
	return t.config
}

// Configuration implements ClusterTopology.
func (t *Topology) Configuration() Configuration {
	return t.config
}

// Stack implements ClusterTopology.
func (t *Topology) Stack() Stack {
	return t.stack
}
