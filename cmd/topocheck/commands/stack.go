package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/topocheck/cmd/topocheck/handlers"
)

// Stack returns the parent command for inspecting stack definitions.
func Stack() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Inspect available stack definitions",
	}

	cmd.AddCommand(stackList())
	cmd.AddCommand(stackTypes())

	return cmd
}

func stackList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available stacks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, overrides := configFlags(cmd)
			return handlers.StackList(cmd.Context(), configPath, overrides, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func stackTypes() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "types NAME-VERSION",
		Short: "List the config types a stack defines",
		Long: `List every config type a stack defines, with the service that owns it.

Examples:
  topocheck stack types HDP-2.6`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, overrides := configFlags(cmd)
			return handlers.StackTypes(cmd.Context(), configPath, overrides, args[0], jsonOutput, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
