package wizard

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/topocheck/internal/topology"
)

// nameRegex validates blueprint and host group names.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// runIdentityGroup prompts for the blueprint name.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Blueprint Name").
				Description("Used to name the request and its blueprint").
				Placeholder("two-node").
				Value(&result.BlueprintName).
				Validate(validateName),
		).Title("Blueprint"),
	).RunWithContext(ctx)
}

// runStackGroup prompts for the target stack.
func runStackGroup(ctx context.Context, stacks []*topology.StackDefinition, result *WizardResult) error {
	selected := stacks[0].Ref().String()

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Stack").
				Description("The stack the cluster will be deployed with").
				Options(StacksToOptions(stacks)...).
				Value(&selected),
		).Title("Stack"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	ref, err := topology.ParseRef(selected)
	if err != nil {
		return err
	}
	result.Stack = ref
	return nil
}

// runConfigTypesGroup prompts for blueprint config types and cluster overrides.
func runConfigTypesGroup(ctx context.Context, stack *topology.StackDefinition, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Blueprint Configurations").
				Description("Config types the blueprint sets").
				Options(ConfigTypeOptions(stack)...).
				Value(&result.BlueprintConfigTypes),
			huh.NewMultiSelect[string]().
				Title("Cluster Overrides").
				Description("Config types overridden when the cluster is created").
				Options(ConfigTypeOptions(stack)...).
				Value(&result.ClusterConfigTypes),
		).Title("Configurations"),
	).RunWithContext(ctx)
}

// runHostGroupGroup prompts for a first host group.
func runHostGroupGroup(ctx context.Context, result *WizardResult) error {
	result.HostGroup = "master"
	var components string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Host Group").
				Placeholder("master").
				Value(&result.HostGroup).
				Validate(validateName),
			huh.NewInput().
				Title("Components (Optional)").
				Description("Comma-separated component names").
				Placeholder("NAMENODE, RESOURCEMANAGER").
				Value(&components),
		).Title("Host Groups"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.Components = parseList(components)
	return nil
}

func validateName(s string) error {
	if s == "" {
		return errNameRequired
	}
	if !nameRegex.MatchString(s) {
		return errNameInvalid
	}
	return nil
}

// parseList splits a comma-separated list, dropping blanks.
func parseList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
