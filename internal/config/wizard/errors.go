package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errNameRequired = errors.New("name is required")
	errNameInvalid  = errors.New("name must be 1-64 alphanumeric characters, dots, underscores or hyphens, starting with alphanumeric")
	errNoStacks     = errors.New("no stacks available; add stack definitions first")
)
