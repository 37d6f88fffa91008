// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - TopologyBuilder: Fluent builder for creating resolved topologies
//   - HDPStack: A representative stack definition fixture
//   - MockObjectStore, MockRepository: testify mocks for stack sources
//
// Usage:
//
//	topo := testing.NewTopologyBuilder().
//	    WithClusterConfigTypes("core-site", "bogus-site").
//	    Build()
package testing
