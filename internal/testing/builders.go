package testing

import (
	"maps"
	"slices"

	"github.com/imamik/topocheck/internal/topology"
)

// TopologyBuilder provides a fluent interface for constructing test topologies.
// Each method returns a new builder (immutable) for chaining.
type TopologyBuilder struct {
	name           string
	stack          *topology.StackDefinition
	blueprintName  string
	blueprintProps topology.Properties
	clusterProps   topology.Properties
	hostGroups     []topology.HostGroup
}

// NewTopologyBuilder creates a new TopologyBuilder against the HDPStack fixture.
func NewTopologyBuilder() *TopologyBuilder {
	return &TopologyBuilder{
		name:           "test-topology",
		stack:          HDPStack(),
		blueprintName:  "test-blueprint",
		blueprintProps: topology.Properties{},
		clusterProps:   topology.Properties{},
	}
}

// WithName sets the topology name.
func (b *TopologyBuilder) WithName(name string) *TopologyBuilder {
	newBuilder := b.clone()
	newBuilder.name = name
	return newBuilder
}

// WithStack sets the stack.
func (b *TopologyBuilder) WithStack(stack *topology.StackDefinition) *TopologyBuilder {
	newBuilder := b.clone()
	newBuilder.stack = stack
	return newBuilder
}

// WithBlueprintConfigTypes adds empty config types to the blueprint configuration.
func (b *TopologyBuilder) WithBlueprintConfigTypes(types ...string) *TopologyBuilder {
	newBuilder := b.clone()
	for _, t := range types {
		if newBuilder.blueprintProps[t] == nil {
			newBuilder.blueprintProps[t] = map[string]string{}
		}
	}
	return newBuilder
}

// WithClusterConfigTypes adds empty config types to the cluster configuration.
func (b *TopologyBuilder) WithClusterConfigTypes(types ...string) *TopologyBuilder {
	newBuilder := b.clone()
	for _, t := range types {
		if newBuilder.clusterProps[t] == nil {
			newBuilder.clusterProps[t] = map[string]string{}
		}
	}
	return newBuilder
}

// WithClusterProperty sets a property in the cluster configuration.
func (b *TopologyBuilder) WithClusterProperty(configType, key, value string) *TopologyBuilder {
	newBuilder := b.clone()
	if newBuilder.clusterProps[configType] == nil {
		newBuilder.clusterProps[configType] = map[string]string{}
	}
	newBuilder.clusterProps[configType][key] = value
	return newBuilder
}

// WithHostGroup adds a host group to the blueprint.
func (b *TopologyBuilder) WithHostGroup(name string, components ...string) *TopologyBuilder {
	newBuilder := b.clone()
	newBuilder.hostGroups = append(newBuilder.hostGroups, topology.HostGroup{
		Name:        name,
		Cardinality: "1",
		Components:  components,
	})
	return newBuilder
}

// Build returns the constructed topology.
func (b *TopologyBuilder) Build() *topology.Topology {
	bp := &topology.Blueprint{
		Name:          b.blueprintName,
		Stack:         b.stack.Ref(),
		Configuration: topology.NewConfig(b.blueprintProps, nil),
		HostGroups:    slices.Clone(b.hostGroups),
	}
	return topology.New(b.name, bp, b.stack, topology.NewConfig(b.clusterProps, nil))
}

// clone creates a deep copy of the builder for immutability.
func (b *TopologyBuilder) clone() *TopologyBuilder {
	newBuilder := *b
	newBuilder.blueprintProps = cloneProperties(b.blueprintProps)
	newBuilder.clusterProps = cloneProperties(b.clusterProps)
	newBuilder.hostGroups = slices.Clone(b.hostGroups)
	return &newBuilder
}

// cloneProperties creates a deep copy of a Properties map.
func cloneProperties(p topology.Properties) topology.Properties {
	out := make(topology.Properties, len(p))
	for t, props := range p {
		out[t] = maps.Clone(props)
	}
	return out
}
