package validation

import (
	"fmt"
	"maps"
	"time"

	"github.com/go-logr/logr"
)

// Observer receives structured events while a pipeline runs.
type Observer interface {
	// Event emits a structured event.
	Event(event Event)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured validation event.
type Event struct {
	Type      EventType         // Type of event
	Validator string            // Validator name, empty for pipeline-level events
	Topology  string            // Topology name
	Message   string            // Human-readable message
	Invalid   []string          // Offending names, set on validator.failed
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of validation event.
type EventType string

const (
	// EventPipelineStarted indicates a pipeline run has started.
	EventPipelineStarted EventType = "pipeline.started"
	// EventPipelineCompleted indicates a pipeline run finished, whether or not it passed.
	EventPipelineCompleted EventType = "pipeline.completed"

	// EventValidatorStarted indicates a validator is about to run.
	EventValidatorStarted EventType = "validator.started"
	// EventValidatorPassed indicates a validator accepted the topology.
	EventValidatorPassed EventType = "validator.passed"
	// EventValidatorFailed indicates a validator rejected the topology.
	EventValidatorFailed EventType = "validator.failed"
)

// LogObserver implements Observer on top of a logr.Logger.
type LogObserver struct {
	log           logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates an observer that logs events through log.
func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{
		log:           log,
		contextFields: make(map[string]string),
	}
}

// Event implements Observer. Failures are logged at info level with the
// offending names; everything else at V(1).
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	// Merge context fields
	fields := maps.Clone(o.contextFields)
	maps.Copy(fields, event.Fields)

	kv := []any{"event", string(event.Type)}
	if event.Topology != "" {
		kv = append(kv, "topology", event.Topology)
	}
	if event.Validator != "" {
		kv = append(kv, "validator", event.Validator)
	}
	if len(event.Invalid) > 0 {
		kv = append(kv, "invalid", event.Invalid)
	}
	for k, v := range fields {
		kv = append(kv, k, v)
	}

	if event.Type == EventValidatorFailed {
		o.log.Info(event.Message, kv...)
		return
	}
	o.log.V(1).Info(event.Message, kv...)
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := maps.Clone(o.contextFields)
	maps.Copy(newFields, fields)

	return &LogObserver{
		log:           o.log,
		contextFields: newFields,
	}
}

// nopObserver discards events.
type nopObserver struct{}

func (nopObserver) Event(Event) {}
func (o nopObserver) WithFields(map[string]string) Observer { return o }

// Helper functions for common events

func emitValidatorStarted(o Observer, topo, validator string) {
	o.Event(Event{
		Type:      EventValidatorStarted,
		Topology:  topo,
		Validator: validator,
		Message:   "starting",
	})
}

func emitValidatorPassed(o Observer, topo, validator string, d time.Duration) {
	o.Event(Event{
		Type:      EventValidatorPassed,
		Topology:  topo,
		Validator: validator,
		Message:   fmt.Sprintf("passed in %v", d.Round(time.Microsecond)),
	})
}

func emitValidatorFailed(o Observer, topo, validator string, err error) {
	o.Event(Event{
		Type:      EventValidatorFailed,
		Topology:  topo,
		Validator: validator,
		Message:   fmt.Sprintf("failed: %v", err),
		Invalid:   InvalidConfigTypes(err),
	})
}
