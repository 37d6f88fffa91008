package stack

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/imamik/topocheck/internal/topology"
)

// Definition is the on-disk form of a stack.
type Definition struct {
	Name        string              `yaml:"name"`
	Version     string              `yaml:"version"`
	ConfigTypes []string            `yaml:"configTypes,omitempty"`
	Services    []ServiceDefinition `yaml:"services,omitempty"`
}

// ServiceDefinition is the on-disk form of a stack service.
type ServiceDefinition struct {
	Name        string   `yaml:"name"`
	ConfigTypes []string `yaml:"configTypes,omitempty"`
}

// Ref returns the stack reference.
func (d *Definition) Ref() topology.Ref {
	return topology.Ref{Name: d.Name, Version: d.Version}
}

// Validate checks the definition for structural errors.
func (d *Definition) Validate() error {
	var errs []error

	if d.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if d.Version == "" {
		errs = append(errs, errors.New("version is required"))
	} else if strings.Contains(d.Version, "-") {
		// Refs render as NAME-VERSION and split at the last hyphen.
		errs = append(errs, fmt.Errorf("version %q must not contain '-'", d.Version))
	}
	for i, t := range d.ConfigTypes {
		if t == "" {
			errs = append(errs, fmt.Errorf("configTypes[%d] is empty", i))
		}
	}

	seen := make(map[string]bool, len(d.Services))
	for i, svc := range d.Services {
		if svc.Name == "" {
			errs = append(errs, fmt.Errorf("services[%d]: name is required", i))
			continue
		}
		if seen[svc.Name] {
			errs = append(errs, fmt.Errorf("services[%d]: duplicate service %q", i, svc.Name))
		}
		seen[svc.Name] = true
		for j, t := range svc.ConfigTypes {
			if t == "" {
				errs = append(errs, fmt.Errorf("services[%d] (%s): configTypes[%d] is empty", i, svc.Name, j))
			}
		}
	}

	return errors.Join(errs...)
}

// ToStack converts the definition into a topology.StackDefinition.
func (d *Definition) ToStack() *topology.StackDefinition {
	services := make([]topology.Service, len(d.Services))
	for i, svc := range d.Services {
		services[i] = topology.Service{Name: svc.Name, ConfigTypes: svc.ConfigTypes}
	}
	return topology.NewStackDefinition(d.Ref(), d.ConfigTypes, services)
}

// Parse parses and validates a stack definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse stack definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stack definition: %w", err)
	}
	return &def, nil
}

// LoadFile reads and parses a stack definition file.
func LoadFile(path string) (*Definition, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stack file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Marshal renders a definition as YAML.
func Marshal(def *Definition) ([]byte, error) {
	data, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stack definition: %w", err)
	}
	return data, nil
}
