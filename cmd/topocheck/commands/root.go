// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the topocheck CLI.
//
// The --config flag is persistent so every subcommand resolves the same
// configuration file.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "topocheck",
		Short:         "Validate cluster topologies against stack definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (default: search for topocheck.yaml)")
	cmd.PersistentFlags().String("stack-dir", "", "Read stack definitions from this directory")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(Validate())
	cmd.AddCommand(Stack())
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// configFlags returns the config path and the overrides set on the command
// line, keyed by configuration path.
func configFlags(cmd *cobra.Command) (string, map[string]any) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")

	overrides := map[string]any{}
	if flags.Changed("stack-dir") {
		dir, _ := flags.GetString("stack-dir")
		overrides["stacks.source"] = "dir"
		overrides["stacks.dir"] = dir
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		overrides["log.level"] = level
	}
	return configPath, overrides
}
