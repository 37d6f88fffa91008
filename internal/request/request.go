package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/imamik/topocheck/internal/topology"
)

// ErrInvalidRequest is returned for documents that cannot describe a topology.
var ErrInvalidRequest = errors.New("invalid topology request")

// Request is a topology request document.
type Request struct {
	// Name identifies the request in reports. Load sets it to the file name.
	Name           string        `json:"-"`
	Blueprint      BlueprintSpec `json:"blueprint"`
	Configurations []ConfigEntry `json:"configurations,omitempty"`
}

// BlueprintSpec is the blueprint section of a request.
type BlueprintSpec struct {
	Name           string          `json:"name"`
	Stack          topology.Ref    `json:"stack"`
	Configurations []ConfigEntry   `json:"configurations,omitempty"`
	HostGroups     []HostGroupSpec `json:"hostGroups,omitempty"`
}

// HostGroupSpec describes a host group.
type HostGroupSpec struct {
	Name        string   `json:"name"`
	Cardinality string   `json:"cardinality,omitempty"`
	Components  []string `json:"components,omitempty"`
}

// ConfigEntry maps config type names to their bodies. Documents usually
// hold one type per entry.
type ConfigEntry map[string]ConfigBody

// ConfigBody holds the properties of one config type.
type ConfigBody struct {
	Properties           map[string]Value            `json:"properties,omitempty"`
	PropertiesAttributes map[string]map[string]Value `json:"propertiesAttributes,omitempty"`
}

// Value is a property value. Scalars of any JSON type are accepted and kept
// in their textual form.
type Value string

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return fmt.Errorf("property values must be scalars, got %s", data)
	}
	*v = Value(data)
	return nil
}

// Parse decodes a JSON or YAML request document and validates it.
// Unknown fields are rejected.
func Parse(data []byte) (*Request, error) {
	var req Request
	if err := yaml.UnmarshalStrict(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Load reads and parses a request file. The request is named after the file.
func Load(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request %s: %w", path, err)
	}
	req, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	req.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return req, nil
}

// Validate checks that the request names a blueprint and a stack.
// Config type names are not checked here.
func (r *Request) Validate() error {
	var errs []error
	if r.Blueprint.Name == "" {
		errs = append(errs, errors.New("blueprint.name is required"))
	}
	if r.Blueprint.Stack.Name == "" {
		errs = append(errs, errors.New("blueprint.stack.name is required"))
	}
	if r.Blueprint.Stack.Version == "" {
		errs = append(errs, errors.New("blueprint.stack.version is required"))
	} else if strings.Contains(r.Blueprint.Stack.Version, "-") {
		errs = append(errs, fmt.Errorf("blueprint.stack.version %q must not contain '-'", r.Blueprint.Stack.Version))
	}
	for i, hg := range r.Blueprint.HostGroups {
		if hg.Name == "" {
			errs = append(errs, fmt.Errorf("blueprint.hostGroups[%d].name is required", i))
		}
	}
	for _, entries := range [][]ConfigEntry{r.Blueprint.Configurations, r.Configurations} {
		for _, entry := range entries {
			if _, ok := entry[""]; ok {
				errs = append(errs, errors.New("config type names must not be empty"))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidRequest, errors.Join(errs...))
}

// Marshal renders the request as YAML.
func (r *Request) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// toConfig folds config entries into a topology config. Entries for the same
// type are merged in document order, later values winning.
func toConfig(entries []ConfigEntry) *topology.Config {
	props := topology.Properties{}
	attrs := topology.Attributes{}

	for _, entry := range entries {
		types := make([]string, 0, len(entry))
		for t := range entry {
			types = append(types, t)
		}
		slices.Sort(types)

		for _, t := range types {
			body := entry[t]
			if props[t] == nil {
				props[t] = map[string]string{}
			}
			for k, v := range body.Properties {
				props[t][k] = string(v)
			}
			for name, values := range body.PropertiesAttributes {
				if attrs[t] == nil {
					attrs[t] = map[string]map[string]string{}
				}
				if attrs[t][name] == nil {
					attrs[t][name] = map[string]string{}
				}
				for k, v := range values {
					attrs[t][name][k] = string(v)
				}
			}
		}
	}
	return topology.NewConfig(props, attrs)
}
