// Package request reads topology request documents and resolves them into
// topologies ready for validation.
//
// A request carries a blueprint (name, stack reference, configurations, host
// groups) and the cluster-creation-time configurations layered on top of it.
// Documents may be JSON or YAML. Resolution fetches the referenced stack from
// a stack.Repository.
package request
