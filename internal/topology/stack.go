package topology

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Ref identifies a stack by name and version.
type Ref struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// String renders the ref as NAME-VERSION.
func (r Ref) String() string {
	return r.Name + "-" + r.Version
}

// IsZero returns true if neither name nor version is set.
func (r Ref) IsZero() bool {
	return r.Name == "" && r.Version == ""
}

// ParseRef parses a NAME-VERSION string. The version is everything after the
// last hyphen, so stack names may contain hyphens but versions may not.
// Stack definitions and requests reject hyphenated versions.
func ParseRef(s string) (Ref, error) {
	i := strings.LastIndex(s, "-")
	if i <= 0 || i == len(s)-1 {
		return Ref{}, fmt.Errorf("invalid stack reference %q: expected NAME-VERSION", s)
	}
	return Ref{Name: s[:i], Version: s[i+1:]}, nil
}

// Service is a stack service and the config types it owns.
type Service struct {
	Name        string
	ConfigTypes []string
}

// StackDefinition is a versioned software stack and the config types it declares.
type StackDefinition struct {
	ref         Ref
	configTypes []string
	services    []Service
}

// NewStackDefinition creates a stack definition. Stack-level config types are
// the ones not owned by any service (e.g. cluster-env).
func NewStackDefinition(ref Ref, configTypes []string, services []Service) *StackDefinition {
	svcs := make([]Service, len(services))
	for i, svc := range services {
		svcs[i] = Service{Name: svc.Name, ConfigTypes: slices.Clone(svc.ConfigTypes)}
	}
	return &StackDefinition{
		ref:         ref,
		configTypes: slices.Clone(configTypes),
		services:    svcs,
	}
}

// Ref returns the stack reference.
func (s *StackDefinition) Ref() Ref {
	return s.ref
}

// Services returns the stack services.
func (s *StackDefinition) Services() []Service {
	return slices.Clone(s.services)
}

// ServiceForConfigType returns the service owning configType, or "" for
// stack-level and unknown types.
func (s *StackDefinition) ServiceForConfigType(configType string) string {
	for _, svc := range s.services {
		if slices.Contains(svc.ConfigTypes, configType) {
			return svc.Name
		}
	}
	return ""
}

// Configuration implements Stack.
func (s *StackDefinition) Configuration() Configuration {
	return stackConfiguration{stack: s}
}

// stackConfiguration is the view of a stack's declared config types.
type stackConfiguration struct {
	stack *StackDefinition
}

// AllConfigTypes returns the sorted union of stack-level and service config types.
func (c stackConfiguration) AllConfigTypes() []string {
	types := make(map[string]struct{})
	for _, t := range c.stack.configTypes {
		types[t] = struct{}{}
	}
	for _, svc := range c.stack.services {
		for _, t := range svc.ConfigTypes {
			types[t] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(types))
}
