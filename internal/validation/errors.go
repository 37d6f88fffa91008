package validation

import (
	"errors"
	"fmt"
)

// Kind classifies a topology validation failure.
type Kind string

// KindUnknownConfigType means the topology references config types the stack does not define.
const KindUnknownConfigType Kind = "unknown configuration type"

// TopologyValidationError is returned by validators that reject a topology.
type TopologyValidationError struct {
	Validator string   // Name of the validator that rejected the topology
	Kind      Kind     // Failure classification
	Invalid   []string // Offending names, sorted
}

// Error implements the error interface.
func (e *TopologyValidationError) Error() string {
	switch e.Kind {
	case KindUnknownConfigType:
		return fmt.Sprintf("the following config types are not defined in the stack: %v", e.Invalid)
	default:
		return fmt.Sprintf("invalid topology (%s): %v", e.Kind, e.Invalid)
	}
}

// IsUnknownConfigType returns true if err (or anything it wraps) is an
// unknown config type failure.
func IsUnknownConfigType(err error) bool {
	var tve *TopologyValidationError
	return errors.As(err, &tve) && tve.Kind == KindUnknownConfigType
}

// InvalidConfigTypes returns the unknown config types carried by err, across
// every joined or wrapped TopologyValidationError.
func InvalidConfigTypes(err error) []string {
	var out []string
	walkErrors(err, func(e error) {
		if tve, ok := e.(*TopologyValidationError); ok && tve.Kind == KindUnknownConfigType {
			out = append(out, tve.Invalid...)
		}
	})
	return out
}

// walkErrors visits err and every error it wraps, including errors.Join trees.
func walkErrors(err error, visit func(error)) {
	if err == nil {
		return
	}
	visit(err)
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walkErrors(e, visit)
		}
	case interface{ Unwrap() error }:
		walkErrors(u.Unwrap(), visit)
	}
}
