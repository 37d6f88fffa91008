package topology

// HostGroup is a named group of hosts sharing a component layout.
type HostGroup struct {
	Name        string
	Cardinality string
	Components  []string
}

// Blueprint is a reusable cluster layout template bound to a stack.
type Blueprint struct {
	Name          string
	Stack         Ref
	Configuration *Config
	HostGroups    []HostGroup
}
