package root

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/dshills/selmark/internal/config"
	"github.com/dshills/selmark/internal/engine"
	"github.com/dshills/selmark/internal/engine/cursor"
)

func contentCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:      "content",
		Usage:     "print the document text, optionally with LF line breaks",
		ArgsUsage: "[FILE]",
		Flags:     []cli.Flag{normalizeEolFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(ctx, cmd, deps)
			if err != nil {
				return err
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}
			text, err := readInput(deps, cmd.Args().First())
			if err != nil {
				return err
			}
			doc := engine.NewDocument(text)
			content, err := engine.GetContent(doc, opts)
			if err != nil {
				return err
			}
			if cmd.String(flagFormat) == formatJSON {
				out, err := sourceJSON(content, doc.LineEnding().String())
				if err != nil {
					return err
				}
				return writeJSON(deps.Stdout, out)
			}
			return writeText(deps.Stdout, content, false)
		},
	}
}

func markCommand(deps Dependencies) *cli.Command {
	flags := append(markerFlags(), selFlag(false), columnsFlag(), formatFlag())
	return &cli.Command{
		Name:      "mark",
		Usage:     "print the document with selections drawn as inline markers",
		ArgsUsage: "[FILE]",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(ctx, cmd, deps)
			if err != nil {
				return err
			}
			req, err := newMarkRequest(cmd)
			if err != nil {
				return err
			}
			text, err := readInput(deps, req.path)
			if err != nil {
				return err
			}
			return req.render(deps, cfg, text, false)
		},
	}
}

func parseCommand(deps Dependencies) *cli.Command {
	flags := append(markerFlags(), columnsFlag(), formatFlag())
	return &cli.Command{
		Name:      "parse",
		Usage:     "strip inline markers and print the content and selections they describe",
		ArgsUsage: "[FILE]",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(ctx, cmd, deps)
			if err != nil {
				return err
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}
			unit, err := cursor.ParseColumnUnit(cmd.String(flagColumns))
			if err != nil {
				return err
			}
			marked, err := readInput(deps, cmd.Args().First())
			if err != nil {
				return err
			}

			doc, sels, err := engine.ParseMarked(marked, opts)
			if err != nil {
				return err
			}
			if sels, err = cursor.FromByteColumns(doc, unit, sels); err != nil {
				return err
			}
			slog.Debug("parsed markup", "selections", len(sels), "bytes", doc.Len())

			if cmd.String(flagFormat) == formatJSON {
				out, err := parsedJSON(doc.Text(), sels, unit)
				if err != nil {
					return err
				}
				return writeJSON(deps.Stdout, out)
			}
			return writeText(deps.Stdout, parsedText(doc.Text(), sels), false)
		},
	}
}

func versionCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the selmark version",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(deps.Stdout, "%s %s\n", cmd.Root().Name, deps.Version)
			return err
		},
	}
}

// loadConfig layers the --config file, the environment and the marker
// flags of cmd over the defaults.
func loadConfig(ctx context.Context, cmd *cli.Command, deps Dependencies) (*config.Config, error) {
	opts := []config.Option{config.WithEnv(deps.Env)}
	if path := cmd.String(flagConfig); path != "" {
		opts = append(opts, config.WithFile(path))
	}
	if section := cmd.String(flagConfigSection); section != "" {
		opts = append(opts, config.WithSection(section))
	}
	if deps.FS != nil {
		opts = append(opts, config.WithFileSystem(deps.FS))
	}

	cfg := config.New(opts...)
	if err := cfg.Load(ctx); err != nil {
		return nil, err
	}
	if err := cfg.SetFlags(optionFlags(cmd)); err != nil {
		return nil, err
	}

	for _, key := range []string{config.KeyNormalizeEol, config.KeyCaret, config.KeyAnchor, config.KeyActive} {
		if src, ok := cfg.SourceOf(key); ok {
			slog.Debug("option resolved", "key", key, "source", src.String())
		}
	}
	return cfg, nil
}

// markRequest holds what mark and watch need to render a document.
type markRequest struct {
	path   string
	specs  []string
	unit   cursor.ColumnUnit
	format string
}

func newMarkRequest(cmd *cli.Command) (markRequest, error) {
	unit, err := cursor.ParseColumnUnit(cmd.String(flagColumns))
	if err != nil {
		return markRequest{}, err
	}
	return markRequest{
		path:   cmd.Args().First(),
		specs:  cmd.StringSlice(flagSel),
		unit:   unit,
		format: cmd.String(flagFormat),
	}, nil
}

// render draws the requested selections into text and writes the result.
// Selections are parsed against each new text so column units that depend
// on the line contents convert correctly.
func (r markRequest) render(deps Dependencies, cfg *config.Config, text string, ensureNewline bool) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	sels, err := cursor.ParseSelections(r.specs)
	if err != nil {
		return err
	}
	doc := engine.NewDocument(text)
	if sels, err = cursor.ToByteColumns(doc, r.unit, sels); err != nil {
		return err
	}

	marked, err := engine.GetContentWithSelections(doc, sels, opts)
	if err != nil {
		return err
	}
	slog.Debug("rendered selections", "path", r.path, "selections", len(sels))

	overlaps, err := engine.OverlappingSelections(doc, sels)
	if err != nil {
		return err
	}
	for _, pair := range overlaps {
		slog.Warn("selections overlap; parse cannot read the markers back",
			"path", r.path, "first", r.specs[pair[0]], "second", r.specs[pair[1]])
	}

	if r.format == formatJSON {
		out, err := markedJSON(marked, sels)
		if err != nil {
			return err
		}
		return writeJSON(deps.Stdout, out)
	}
	return writeText(deps.Stdout, marked, ensureNewline)
}
