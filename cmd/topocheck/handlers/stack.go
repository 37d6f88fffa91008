package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/imamik/topocheck/internal/topology"
)

// StackConfigType is one config type of a stack, as printed by `stack types`.
type StackConfigType struct {
	Type    string `json:"type"`
	Service string `json:"service,omitempty"`
}

// StackList prints the refs of every available stack, one per line.
func StackList(ctx context.Context, configPath string, overrides map[string]any, out, errOut io.Writer) error {
	rt, err := loadRuntime(ctx, configPath, overrides, errOut)
	if err != nil {
		return err
	}
	defer rt.close()

	refs, err := rt.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stacks: %w", err)
	}
	if len(refs) == 0 {
		fmt.Fprintln(errOut, "No stacks found.")
		return nil
	}
	for _, ref := range refs {
		fmt.Fprintln(out, ref)
	}
	return nil
}

// StackTypes prints the config types declared by the stack named by ref
// ("NAME-VERSION") together with the service owning each one.
func StackTypes(ctx context.Context, configPath string, overrides map[string]any, ref string, jsonOutput bool, out, errOut io.Writer) error {
	parsed, err := topology.ParseRef(ref)
	if err != nil {
		return err
	}

	rt, err := loadRuntime(ctx, configPath, overrides, errOut)
	if err != nil {
		return err
	}
	defer rt.close()

	def, err := rt.repo.Get(ctx, parsed)
	if err != nil {
		return fmt.Errorf("failed to load stack %s: %w", parsed, err)
	}

	types := stackConfigTypes(def)
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(types)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tSERVICE")
	for _, t := range types {
		svc := t.Service
		if svc == "" {
			svc = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", t.Type, svc)
	}
	return w.Flush()
}

func stackConfigTypes(def *topology.StackDefinition) []StackConfigType {
	all := def.Configuration().AllConfigTypes()
	types := make([]StackConfigType, 0, len(all))
	for _, t := range all {
		types = append(types, StackConfigType{Type: t, Service: def.ServiceForConfigType(t)})
	}
	return types
}
