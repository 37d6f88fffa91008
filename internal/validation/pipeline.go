package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/imamik/topocheck/internal/topology"
)

const tracerName = "github.com/imamik/topocheck/internal/validation"

// Mode controls what a pipeline does after a validator fails.
type Mode string

const (
	// ModeFailFast stops at the first failing validator.
	ModeFailFast Mode = "fail-fast"
	// ModeCollect runs every validator and joins all failures.
	ModeCollect Mode = "collect"
)

// ValidModes returns all valid modes.
func ValidModes() []Mode {
	return []Mode{ModeFailFast, ModeCollect}
}

// IsValid returns true if the mode is known.
func (m Mode) IsValid() bool {
	switch m {
	case ModeFailFast, ModeCollect:
		return true
	default:
		return false
	}
}

// Recorder receives per-validator outcomes, typically to update metrics.
type Recorder interface {
	RecordValidation(validator string, passed bool, invalid int, duration time.Duration)
}

// Result is the outcome of one validator.
type Result struct {
	Validator string
	Passed    bool
	Err       error
	Duration  time.Duration
}

// Report is the outcome of a pipeline run.
type Report struct {
	Topology string
	Results  []Result
	Duration time.Duration
}

// Passed returns true if every validator that ran passed.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Failures returns the results of validators that rejected the topology.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Pipeline runs a sequence of validators against a topology.
// A Pipeline holds no per-run state and may be shared between goroutines.
type Pipeline struct {
	validators []Validator
	mode       Mode
	observer   Observer
	recorder   Recorder
	tracer     trace.Tracer
}

// Option is a functional option for pipeline configuration.
type Option func(*Pipeline)

// WithMode sets the failure mode.
func WithMode(m Mode) Option {
	return func(p *Pipeline) {
		p.mode = m
	}
}

// WithObserver sets the observer receiving pipeline events.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		p.observer = o
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) {
		p.recorder = r
	}
}

// WithTracerProvider sets the tracer provider used for spans. Defaults to
// the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Pipeline) {
		p.tracer = tp.Tracer(tracerName)
	}
}

// NewPipeline creates a pipeline. With no validators, DefaultValidators is used.
func NewPipeline(validators []Validator, opts ...Option) *Pipeline {
	if len(validators) == 0 {
		validators = DefaultValidators()
	}
	p := &Pipeline{
		validators: validators,
		mode:       ModeFailFast,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer(tracerName)
	}
	return p
}

// Validators returns the names of the configured validators in run order.
func (p *Pipeline) Validators() []string {
	names := make([]string, len(p.validators))
	for i, v := range p.validators {
		names[i] = v.Name()
	}
	return names
}

// Run validates t. The returned report lists every validator that ran; the
// error is non-nil if any of them failed or ctx was cancelled.
func (p *Pipeline) Run(ctx context.Context, t topology.ClusterTopology) (*Report, error) {
	start := time.Now()
	name := topologyName(t)
	report := &Report{Topology: name}

	ctx, span := p.tracer.Start(ctx, "validation.pipeline",
		trace.WithAttributes(
			attribute.String("topology", name),
			attribute.String("mode", string(p.mode)),
		))
	defer span.End()

	p.observer.Event(Event{
		Type:     EventPipelineStarted,
		Topology: name,
		Message:  fmt.Sprintf("running %d validators", len(p.validators)),
	})

	var errs []error
	for _, v := range p.validators {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("validation cancelled: %w", err))
			break
		}

		res := p.runOne(ctx, name, t, v)
		report.Results = append(report.Results, res)

		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s validator failed: %w", v.Name(), res.Err))
			if p.mode != ModeCollect {
				break
			}
		}
	}

	report.Duration = time.Since(start)
	err := errors.Join(errs...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	p.observer.Event(Event{
		Type:     EventPipelineCompleted,
		Topology: name,
		Message:  fmt.Sprintf("completed in %v", report.Duration.Round(time.Microsecond)),
		Fields: map[string]string{
			"passed": fmt.Sprintf("%t", err == nil),
		},
	})

	return report, err
}

// runOne runs a single validator inside its own span.
func (p *Pipeline) runOne(ctx context.Context, topo string, t topology.ClusterTopology, v Validator) Result {
	_, span := p.tracer.Start(ctx, "validation."+v.Name())
	defer span.End()

	emitValidatorStarted(p.observer, topo, v.Name())

	start := time.Now()
	err := v.Validate(t)
	d := time.Since(start)

	invalid := InvalidConfigTypes(err)
	span.SetAttributes(attribute.Int("invalid_config_types", len(invalid)))
	if p.recorder != nil {
		p.recorder.RecordValidation(v.Name(), err == nil, len(invalid), d)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "topology rejected")
		emitValidatorFailed(p.observer, topo, v.Name(), err)
		return Result{Validator: v.Name(), Err: err, Duration: d}
	}

	emitValidatorPassed(p.observer, topo, v.Name(), d)
	return Result{Validator: v.Name(), Passed: true, Duration: d}
}

// topologyName returns the topology's name if it has one.
func topologyName(t topology.ClusterTopology) string {
	if named, ok := t.(interface{ Name() string }); ok {
		return named.Name()
	}
	return ""
}
