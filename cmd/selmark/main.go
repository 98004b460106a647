// Package main is the entry point for the selmark command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/dshills/selmark/internal/cli/root"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := root.DefaultDependencies(fmt.Sprintf("%s (%s)", version, commit))
	if err := root.Run(ctx, deps, os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "selmark: %v\n", err)
		return 1
	}
	return 0
}
