package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/topocheck/cmd/topocheck/handlers"
)

// Validate returns the command for validating topology requests.
//
// Flags:
//
//	--mode: fail-fast or collect (default from config)
//	--parallelism: how many files are checked at once
//	--json: Output in JSON format
//	--metrics-file: Write Prometheus metrics to this file
//	--trace: Print OpenTelemetry spans to stderr
func Validate() *cobra.Command {
	var (
		jsonOutput  bool
		trace       bool
		mode        string
		parallelism int
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate topology requests against their stacks",
		Long: `Validate one or more topology request files.

Each request is resolved against the stack it references and run through
the validator pipeline. Every configuration type that the request uses but
its stack does not define is reported.

Exit status is non-zero if any file fails validation or cannot be checked.

Examples:
  # Validate a request against stacks in ./stacks
  topocheck validate cluster.yaml

  # Validate many files, reporting every failure, as JSON
  topocheck validate --mode collect --json requests/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, overrides := configFlags(cmd)
			if cmd.Flags().Changed("mode") {
				overrides["validation.mode"] = mode
			}
			if cmd.Flags().Changed("parallelism") {
				overrides["validation.parallelism"] = parallelism
			}
			if cmd.Flags().Changed("metrics-file") {
				overrides["metrics.textfile"] = metricsFile
			}
			if trace {
				overrides["tracing.enabled"] = true
			}

			return handlers.Validate(cmd.Context(), handlers.ValidateOptions{
				ConfigPath: configPath,
				Overrides:  overrides,
				Files:      args,
				JSON:       jsonOutput,
				Version:    version,
				Out:        cmd.OutOrStdout(),
				Err:        cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print OpenTelemetry spans to stderr")
	cmd.Flags().StringVar(&mode, "mode", "", "Failure mode: fail-fast or collect")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "Number of files validated concurrently")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")

	return cmd
}
