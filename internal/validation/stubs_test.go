package validation

import (
	"sync/atomic"

	"github.com/imamik/topocheck/internal/topology"
)

// stubConfiguration returns a fixed list of config types.
type stubConfiguration struct {
	types []string
	calls atomic.Int32
}

func (c *stubConfiguration) AllConfigTypes() []string {
	c.calls.Add(1)
	return c.types
}

type stubStack struct {
	config *stubConfiguration
}

func (s *stubStack) Configuration() topology.Configuration {
	return s.config
}

type stubTopology struct {
	name    string
	cluster *stubConfiguration
	stack   *stubStack
}

func (t *stubTopology) Name() string                          { return t.name }
func (t *stubTopology) Configuration() topology.Configuration { return t.cluster }
func (t *stubTopology) Stack() topology.Stack                 { return t.stack }

func newStubTopology(stackTypes, clusterTypes []string) *stubTopology {
	return &stubTopology{
		name:    "stub",
		cluster: &stubConfiguration{types: clusterTypes},
		stack:   &stubStack{config: &stubConfiguration{types: stackTypes}},
	}
}

// fakeValidator returns err and counts calls.
type fakeValidator struct {
	name  string
	err   error
	calls atomic.Int32
}

func (v *fakeValidator) Name() string { return v.name }

func (v *fakeValidator) Validate(topology.ClusterTopology) error {
	v.calls.Add(1)
	return v.err
}
