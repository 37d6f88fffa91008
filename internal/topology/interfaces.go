package topology

// Configuration exposes the config type names of a (possibly layered) configuration.
type Configuration interface {
	// AllConfigTypes returns every config type present. Order is not significant
	// and the result may be empty, but never nil-panics.
	AllConfigTypes() []string
}

// Stack exposes the configuration a software stack declares.
type Stack interface {
	Configuration() Configuration
}

// ClusterTopology is the read-only view of a topology under validation.
type ClusterTopology interface {
	// Configuration returns the fully resolved cluster configuration.
	Configuration() Configuration
	// Stack returns the stack the cluster is deployed from.
	Stack() Stack
}
