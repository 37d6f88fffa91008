package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/topocheck/cmd/topocheck/handlers"
)

// Init returns the command for interactively creating a topology request.
//
// Flags:
//
//	--output, -o: Path to output file (default "<blueprint>.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a topology request",
		Long: `Interactively create a topology request file.

The wizard asks for:

  - Blueprint name
  - Target stack (from the configured stack source)
  - Config types set on the blueprint and overridden by the cluster
  - A first host group and its components

The generated request only references config types the stack defines,
so it passes validation as written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, overrides := configFlags(cmd)
			return handlers.Init(cmd.Context(), configPath, overrides, outputPath, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")

	return cmd
}
