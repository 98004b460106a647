package root

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dshills/selmark/internal/config"
	"github.com/dshills/selmark/internal/config/watcher"
)

const flagDebounce = "debounce"

var errWatchNeedsFile = errors.New("watch needs a FILE argument")

func watchCommand(deps Dependencies) *cli.Command {
	flags := append(markerFlags(), selFlag(false), columnsFlag(), formatFlag(),
		&cli.DurationFlag{
			Name:  flagDebounce,
			Usage: "wait this long for changes to settle before re-rendering",
			Value: 100 * time.Millisecond,
		})
	return &cli.Command{
		Name:      "watch",
		Usage:     "re-render FILE with its selections every time it changes",
		ArgsUsage: "FILE",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			req, err := newMarkRequest(cmd)
			if err != nil {
				return err
			}
			if isStdin(req.path) {
				return errWatchNeedsFile
			}
			cfg, err := loadConfig(ctx, cmd, deps)
			if err != nil {
				return err
			}
			return runWatch(ctx, deps, cfg, req, cmd.Duration(flagDebounce))
		},
	}
}

// runWatch renders once, then again whenever the document or the config
// file changes, until ctx is done. Render failures are logged and the
// watch continues.
func runWatch(ctx context.Context, deps Dependencies, cfg *config.Config, req markRequest, debounce time.Duration) error {
	logger := slog.Default().With("path", req.path)

	docPath, err := filepath.Abs(req.path)
	if err != nil {
		return err
	}
	var cfgPath string
	if p := cfg.Path(); p != "" {
		if cfgPath, err = filepath.Abs(p); err != nil {
			return err
		}
	}

	w, err := watcher.New(watcher.WithDebounce(debounce), watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(docPath); err != nil {
		return err
	}
	if cfgPath != "" {
		if err := w.Watch(cfgPath); err != nil {
			return err
		}
	}

	render := func() {
		text, err := readInput(deps, docPath)
		if err != nil {
			logger.Warn("read failed", "error", err)
			return
		}
		if err := req.render(deps, cfg, text, true); err != nil {
			logger.Warn("render failed", "error", err)
		}
	}

	w.OnChange(func(ev watcher.Event) {
		logger.Debug("file changed", "file", ev.Path, "op", ev.Op.String())
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			if ev.Path == docPath {
				logger.Info("document removed; waiting for it to return")
			}
			return
		}
		if ev.Path == cfgPath {
			if err := cfg.Load(ctx); err != nil {
				logger.Warn("config reload failed", "config", cfgPath, "error", err)
				return
			}
			logger.Info("config reloaded", "config", cfgPath)
		}
		render()
	})

	logger.Info("watching", "files", len(w.WatchedFiles()))
	render()
	return w.Run(ctx)
}
