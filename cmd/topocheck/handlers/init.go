package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/imamik/topocheck/internal/config"
	"github.com/imamik/topocheck/internal/config/wizard"
	"github.com/imamik/topocheck/internal/topology"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive request wizard.
	runWizard = wizard.RunWizard

	// writeRequest writes the generated request to a file.
	writeRequest = wizard.WriteRequest

	// saveConfig writes a starter topocheck.yaml.
	saveConfig = config.Save
)

// Init runs the request wizard over the available stacks and writes the
// result to outputPath (default "<blueprint>.yaml"). When no configuration
// file exists yet, a topocheck.yaml pointing at the stacks used is written
// alongside.
func Init(ctx context.Context, configPath string, overrides map[string]any, outputPath string, out, errOut io.Writer) error {
	rt, err := loadRuntime(ctx, configPath, overrides, errOut)
	if err != nil {
		return err
	}
	defer rt.close()

	stacks, err := loadStacks(ctx, rt)
	if err != nil {
		return err
	}

	printWelcome(out, len(stacks))

	result, err := runWizard(ctx, stacks)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	req := wizard.BuildRequest(result)
	if outputPath == "" {
		outputPath = result.BlueprintName + ".yaml"
	}

	if err := writeRequest(req, outputPath); err != nil {
		if errors.Is(err, wizard.ErrAborted) {
			fmt.Fprintln(out, "Aborted, nothing written.")
			return nil
		}
		return fmt.Errorf("failed to write request: %w", err)
	}
	rt.log.V(1).Info("wrote request", "path", outputPath, "stack", result.Stack.String())

	if rt.cfg.Path() == "" && !fileExists(config.DefaultConfigFilename) {
		if err := saveConfig(rt.cfg, config.DefaultConfigFilename); err != nil {
			return fmt.Errorf("failed to write %s: %w", config.DefaultConfigFilename, err)
		}
		fmt.Fprintf(out, "Configuration saved to: %s\n", config.DefaultConfigFilename)
	}

	printInitSuccess(out, outputPath)
	return nil
}

// loadStacks fetches every stack the repository lists.
func loadStacks(ctx context.Context, rt *runtime) ([]*topology.StackDefinition, error) {
	refs, err := rt.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stacks: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no stacks available from source %q", rt.cfg.Stacks.Source)
	}

	stacks := make([]*topology.StackDefinition, 0, len(refs))
	for _, ref := range refs {
		def, err := rt.repo.Get(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to load stack %s: %w", ref, err)
		}
		stacks = append(stacks, def)
	}
	return stacks, nil
}

func printWelcome(out io.Writer, stacks int) {
	fmt.Fprintln(out, "topocheck - topology request wizard")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "This wizard creates a topology request for one of %d available stack(s).\n", stacks)
	fmt.Fprintln(out, "Only config types the chosen stack defines can be selected.")
	fmt.Fprintln(out)
}

func printInitSuccess(out io.Writer, outputPath string) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Request saved to: %s\n", outputPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Fill in the configuration properties")
	fmt.Fprintf(out, "  2. Run: topocheck validate %s\n", outputPath)
}
