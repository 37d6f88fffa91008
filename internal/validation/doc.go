// Package validation checks resolved cluster topologies before cluster creation.
//
// A [Validator] inspects a [topology.ClusterTopology] and either passes or
// returns an error. Validators are stateless and safe for concurrent use.
//
// [StackConfigTypeValidator] rejects topologies whose configuration
// references config types the target stack does not declare. It reports
// every unknown type at once in a [TopologyValidationError].
//
// [Pipeline] runs validators in order, either stopping at the first failure
// ([ModeFailFast]) or collecting all of them ([ModeCollect]). It reports
// progress through an [Observer], and records metrics and trace spans.
package validation
