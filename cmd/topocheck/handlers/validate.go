package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/trace"

	"github.com/imamik/topocheck/internal/config"
	"github.com/imamik/topocheck/internal/metrics"
	"github.com/imamik/topocheck/internal/request"
	"github.com/imamik/topocheck/internal/tracing"
	"github.com/imamik/topocheck/internal/ui/report"
	"github.com/imamik/topocheck/internal/ui/tui"
	"github.com/imamik/topocheck/internal/util/async"
	"github.com/imamik/topocheck/internal/validation"
)

// ErrValidationFailed is returned when at least one file failed validation
// or could not be checked. The report has already been written.
var ErrValidationFailed = errors.New("validation failed")

// Factory function variables for validate - can be replaced in tests.
var (
	// isTerminal reports whether w is an interactive terminal.
	isTerminal = report.IsTerminal

	// runValidateTUI shows live progress while files are validated.
	runValidateTUI = tui.RunValidateTUI
)

// ValidateOptions holds the inputs of the validate command.
type ValidateOptions struct {
	ConfigPath string
	Overrides  map[string]any
	Files      []string
	JSON       bool
	Version    string
	Out        io.Writer
	Err        io.Writer
}

// Validate checks every request file and writes a report to opts.Out.
func Validate(ctx context.Context, opts ValidateOptions) error {
	rt, err := loadRuntime(ctx, opts.ConfigPath, opts.Overrides, opts.Err)
	if err != nil {
		return err
	}
	defer rt.close()

	tp, shutdown, err := tracerProvider(rt.cfg.Tracing, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			rt.log.Error(err, "failed to flush traces")
		}
	}()

	m := metrics.New()
	interactive := !opts.JSON && isTerminal(opts.Out)

	// Log lines would tear the progress display.
	eventLog := rt.log.WithName("validation")
	if interactive {
		eventLog = logr.Discard()
	}

	v := &fileValidator{
		resolver:     request.NewResolver(rt.repo),
		fetchTimeout: rt.cfg.Stacks.FetchTimeout,
		metrics:      m,
		pipeline: validation.NewPipeline(nil,
			validation.WithMode(rt.cfg.Validation.Mode),
			validation.WithObserver(validation.NewLogObserver(eventLog)),
			validation.WithRecorder(m),
			validation.WithTracerProvider(tp),
		),
	}

	var results []report.FileReport
	if interactive {
		err = runValidateTUI(ctx, opts.Out, opts.Files, func(ctx context.Context, send tui.Sender) error {
			var runErr error
			results, runErr = validateFiles(ctx, v, opts.Files, rt.cfg.Validation.Parallelism, send)
			return runErr
		})
	} else {
		results, err = validateFiles(ctx, v, opts.Files, rt.cfg.Validation.Parallelism, nil)
	}
	if err != nil {
		return err
	}

	summary := report.NewSummary(results)
	if opts.JSON {
		err = report.WriteJSON(opts.Out, summary)
	} else {
		err = report.WriteText(opts.Out, summary, isTerminal(opts.Out))
	}
	if err != nil {
		return err
	}

	if path := rt.cfg.Metrics.Textfile; path != "" {
		if err := m.WriteTextfile(path); err != nil {
			return err
		}
		rt.log.V(1).Info("wrote metrics", "path", path)
	}

	if !summary.OK() {
		return ErrValidationFailed
	}
	return nil
}

// tracerProvider returns a stdout exporter writing to opts.Err when tracing
// is enabled, and a no-op provider otherwise.
func tracerProvider(cfg config.TracingConfig, opts ValidateOptions) (trace.TracerProvider, tracing.ShutdownFunc, error) {
	if !cfg.Enabled {
		tp, shutdown := tracing.Noop()
		return tp, shutdown, nil
	}
	tp, shutdown, err := tracing.NewStdout(opts.Err, opts.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	return tp, shutdown, nil
}

// fileValidator checks a single request file.
type fileValidator struct {
	resolver     *request.Resolver
	pipeline     *validation.Pipeline
	metrics      *metrics.Metrics
	fetchTimeout time.Duration
}

func (v *fileValidator) check(ctx context.Context, file string) report.FileReport {
	start := time.Now()

	req, err := request.Load(file)
	if err != nil {
		v.metrics.RecordRequest(metrics.ResultError)
		return report.FromError(file, err, time.Since(start))
	}

	fetchCtx, cancel := context.WithTimeout(ctx, v.fetchTimeout)
	topo, err := v.resolver.Resolve(fetchCtx, req)
	cancel()
	if err != nil {
		v.metrics.RecordRequest(metrics.ResultError)
		return report.FromError(file, err, time.Since(start))
	}

	res, err := v.pipeline.Run(ctx, topo)
	if ctxErr := ctx.Err(); ctxErr != nil {
		v.metrics.RecordRequest(metrics.ResultError)
		return report.FromError(file, fmt.Errorf("validation cancelled: %w", ctxErr), time.Since(start))
	}

	fr := report.FromValidation(file, req.Blueprint.Stack.String(), res)
	if err != nil {
		v.metrics.RecordRequest(metrics.ResultFailed)
	} else {
		v.metrics.RecordRequest(metrics.ResultPassed)
	}
	return fr
}

// validateFiles checks files with at most parallelism running at once.
// Results keep the order of files. send, if set, receives progress messages.
func validateFiles(ctx context.Context, v *fileValidator, files []string, parallelism int, send tui.Sender) ([]report.FileReport, error) {
	results := make([]report.FileReport, len(files))
	notify := func(msg any) {
		if send != nil {
			send(msg)
		}
	}

	tasks := make([]async.Task, len(files))
	for i, file := range files {
		tasks[i] = async.Task{Name: file, Func: func(ctx context.Context) error {
			notify(tui.FileStartedMsg{File: file})

			fr := v.check(ctx, file)
			results[i] = fr

			notify(tui.FileDoneMsg{File: file, Status: fileStatus(fr), Detail: fileDetail(fr)})
			return nil
		}}
	}

	if err := async.RunParallel(ctx, parallelism, tasks); err != nil {
		return nil, fmt.Errorf("validation interrupted: %w", err)
	}
	return results, nil
}

func fileStatus(fr report.FileReport) tui.Status {
	switch {
	case fr.Errored():
		return tui.StatusErrored
	case fr.Passed:
		return tui.StatusPassed
	default:
		return tui.StatusFailed
	}
}

func fileDetail(fr report.FileReport) string {
	if fr.Errored() {
		return fr.Error
	}
	var invalid int
	for _, v := range fr.Validators {
		invalid += len(v.InvalidConfigTypes)
	}
	if invalid > 0 {
		return fmt.Sprintf("%d unknown config type(s)", invalid)
	}
	return ""
}
