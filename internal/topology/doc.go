// Package topology defines the cluster topology model that validators run
// against.
//
// The narrow capability interfaces [Configuration], [Stack] and
// [ClusterTopology] are all a validator may depend on. The concrete types
// in this package ([Config], [StackDefinition], [Blueprint], [Topology])
// implement them for topologies resolved from request documents.
//
// Configuration is layered: a cluster-creation-time [Config] has the
// blueprint's [Config] as its parent, and lookups fall through the chain.
package topology
