// Package main is the entry point for the topocheck CLI.
//
// topocheck checks cluster topology requests against the stack definitions
// they target, reporting every configuration type a request uses that its
// stack does not define.
//
// Commands: validate, stack, init, version, completion.
//
// For detailed usage information, run:
//
//	topocheck --help
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/topocheck/cmd/topocheck/commands"
	"github.com/imamik/topocheck/cmd/topocheck/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		// The report has already been printed.
		if !errors.Is(err, handlers.ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
