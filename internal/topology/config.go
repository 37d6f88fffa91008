package topology

import (
	"maps"
	"slices"
)

// Properties maps config type -> property key -> value.
type Properties map[string]map[string]string

// Attributes maps config type -> attribute name -> property key -> value.
type Attributes map[string]map[string]map[string]string

// Config is a layered set of configuration properties and attributes.
// Lookups resolve against the config itself first, then its parent chain.
type Config struct {
	properties Properties
	attributes Attributes
	parent     *Config
}

// NewConfig creates a config from properties and attributes. Both may be nil.
// The maps are copied so later changes by the caller do not leak in.
func NewConfig(properties Properties, attributes Attributes) *Config {
	c := &Config{
		properties: make(Properties, len(properties)),
		attributes: make(Attributes, len(attributes)),
	}
	for configType, props := range properties {
		c.properties[configType] = maps.Clone(props)
		if c.properties[configType] == nil {
			c.properties[configType] = map[string]string{}
		}
	}
	for configType, attrs := range attributes {
		byName := make(map[string]map[string]string, len(attrs))
		for name, values := range attrs {
			byName[name] = maps.Clone(values)
		}
		c.attributes[configType] = byName
	}
	return c
}

// NewChildConfig creates a config layered on top of parent.
func NewChildConfig(properties Properties, attributes Attributes, parent *Config) *Config {
	c := NewConfig(properties, attributes)
	c.parent = parent
	return c
}

// Clone returns a copy of this config's own properties and attributes
// sharing the same parent.
func (c *Config) Clone() *Config {
	return NewChildConfig(c.properties, c.attributes, c.parent)
}

// Parent returns the parent config, or nil.
func (c *Config) Parent() *Config {
	return c.parent
}

// SetParent replaces the parent config.
func (c *Config) SetParent(parent *Config) {
	c.parent = parent
}

// ConfigTypes returns the config types defined directly on this config,
// ignoring the parent chain.
func (c *Config) ConfigTypes() []string {
	types := make(map[string]struct{}, len(c.properties)+len(c.attributes))
	for t := range c.properties {
		types[t] = struct{}{}
	}
	for t := range c.attributes {
		types[t] = struct{}{}
	}
	return slices.Sorted(maps.Keys(types))
}

// AllConfigTypes implements Configuration. It returns the sorted union of
// config types across the whole parent chain.
func (c *Config) AllConfigTypes() []string {
	types := make(map[string]struct{})
	for cur := c; cur != nil; cur = cur.parent {
		for _, t := range cur.ConfigTypes() {
			types[t] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(types))
}

// Property resolves a property value through the parent chain.
func (c *Config) Property(configType, key string) (string, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.properties[configType][key]; ok {
			return v, true
		}
	}
	return "", false
}

// SetProperty sets a property on this config (not on a parent).
func (c *Config) SetProperty(configType, key, value string) {
	if c.properties[configType] == nil {
		c.properties[configType] = map[string]string{}
	}
	c.properties[configType][key] = value
}

// FullProperties merges the parent chain into a single view. Values
// defined closer to this config win.
func (c *Config) FullProperties() Properties {
	var chain []*Config
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}

	merged := make(Properties)
	for i := len(chain) - 1; i >= 0; i-- {
		for configType, props := range chain[i].properties {
			if merged[configType] == nil {
				merged[configType] = map[string]string{}
			}
			maps.Copy(merged[configType], props)
		}
	}
	return merged
}

// Attribute resolves a property attribute through the parent chain.
func (c *Config) Attribute(configType, name, key string) (string, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.attributes[configType][name][key]; ok {
			return v, true
		}
	}
	return "", false
}
