// Package root builds the selmark command line application.
package root

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dshills/selmark/internal/logging"
)

const appName = "selmark"

// NewApp constructs the selmark command tree.
func NewApp(deps Dependencies) *cli.Command {
	var closeLogger func() error

	return &cli.Command{
		Name:      appName,
		Usage:     "render editor selections as inline markers, and read them back",
		Writer:    deps.Stdout,
		ErrWriter: deps.Stderr,
		Reader:    deps.Stdin,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			contentCommand(deps),
			markCommand(deps),
			parseCommand(deps),
			watchCommand(deps),
			versionCommand(deps),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			closeFn, err := logging.Init(ctx, loggingFlags(cmd), logging.InitOptions{
				App:     appName,
				Version: deps.Version,
				Mode:    logging.ModeForCommand(cmd.Args().First()),
				Stderr:  deps.Stderr,
			})
			if err != nil {
				return ctx, fmt.Errorf("init logging: %w", err)
			}
			closeLogger = closeFn
			return ctx, nil
		},
		After: func(context.Context, *cli.Command) error {
			if closeLogger == nil {
				return nil
			}
			err := closeLogger()
			closeLogger = nil
			return err
		},
	}
}

// Run executes the application with os.Args style arguments.
func Run(ctx context.Context, deps Dependencies, args []string) error {
	return NewApp(deps).Run(ctx, args)
}
