package root

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dshills/selmark/internal/config"
	"github.com/dshills/selmark/internal/engine/cursor"
	"github.com/dshills/selmark/internal/logging"
)

const (
	flagConfig        = "config"
	flagConfigSection = "config-section"
	flagLogLevel      = "log-level"
	flagLogFormat     = "log-format"
	flagLogFile       = "log-file"

	flagNormalizeEol = "normalize-eol"
	flagCaret        = "caret"
	flagAnchorStart  = "anchor-start"
	flagAnchorEnd    = "anchor-end"
	flagActiveStart  = "active-start"
	flagActiveEnd    = "active-end"

	flagSel     = "sel"
	flagColumns = "columns"
	flagFormat  = "format"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "read options from `FILE` (.toml, .yaml, .yml or .json)",
		},
		&cli.StringFlag{
			Name:  flagConfigSection,
			Usage: "read options from the dotted `TABLE` of the config file, e.g. tools.selmark",
		},
		&cli.StringFlag{
			Name:      flagLogLevel,
			Usage:     "log level (debug, info, warn, error)",
			Validator: choiceValidator("debug", "info", "warn", "warning", "error"),
		},
		&cli.StringFlag{
			Name:      flagLogFormat,
			Usage:     "log format (text, json)",
			Validator: choiceValidator(string(logging.FormatText), string(logging.FormatJSON)),
		},
		&cli.StringFlag{
			Name:  flagLogFile,
			Usage: "write logs to `FILE` instead of stderr",
		},
	}
}

func normalizeEolFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  flagNormalizeEol,
		Usage: "convert CRLF line breaks to LF in the output",
		Value: true,
	}
}

func markerFlags() []cli.Flag {
	return []cli.Flag{
		normalizeEolFlag(),
		&cli.StringFlag{Name: flagCaret, Usage: "symbol for collapsed selections"},
		&cli.StringFlag{Name: flagAnchorStart, Usage: "symbol opening a range at its anchor"},
		&cli.StringFlag{Name: flagAnchorEnd, Usage: "symbol closing a range at its anchor"},
		&cli.StringFlag{Name: flagActiveStart, Usage: "symbol opening a range at its active end"},
		&cli.StringFlag{Name: flagActiveEnd, Usage: "symbol closing a range at its active end"},
	}
}

func columnsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagColumns,
		Usage: "unit of selection columns (bytes, utf16, graphemes)",
		Value: cursor.ColumnBytes.String(),
		Validator: func(s string) error {
			_, err := cursor.ParseColumnUnit(s)
			return err
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      flagFormat,
		Aliases:   []string{"f"},
		Usage:     "output format (text, json)",
		Value:     formatText,
		Validator: choiceValidator(formatText, formatJSON),
	}
}

func selFlag(required bool) cli.Flag {
	return &cli.StringSliceFlag{
		Name:     flagSel,
		Aliases:  []string{"s"},
		Usage:    "selection as LINE:COL (caret) or LINE:COL-LINE:COL (anchor-active); repeatable",
		Required: required,
	}
}

func choiceValidator(values ...string) func(string) error {
	allowed := make(map[string]struct{}, len(values))
	for _, value := range values {
		allowed[value] = struct{}{}
	}
	return func(val string) error {
		if _, ok := allowed[strings.ToLower(val)]; !ok {
			return fmt.Errorf("invalid value %q (allowed: %s)", val, strings.Join(values, ", "))
		}
		return nil
	}
}

// optionFlags collects the marker flags given on the command line as a raw
// configuration map. Pair flags are passed through as given, so a lone
// --anchor-start is reported as an incomplete pair.
func optionFlags(cmd *cli.Command) map[string]any {
	data := make(map[string]any)
	if cmd.IsSet(flagNormalizeEol) {
		data[config.KeyNormalizeEol] = cmd.Bool(flagNormalizeEol)
	}
	if cmd.IsSet(flagCaret) {
		data[config.KeyCaret] = cmd.String(flagCaret)
	}
	if pair := pairFlags(cmd, flagAnchorStart, flagAnchorEnd); pair != nil {
		data[config.KeyAnchor] = pair
	}
	if pair := pairFlags(cmd, flagActiveStart, flagActiveEnd); pair != nil {
		data[config.KeyActive] = pair
	}
	return data
}

func pairFlags(cmd *cli.Command, start, end string) map[string]any {
	pair := make(map[string]any)
	if cmd.IsSet(start) {
		pair["start"] = cmd.String(start)
	}
	if cmd.IsSet(end) {
		pair["end"] = cmd.String(end)
	}
	if len(pair) == 0 {
		return nil
	}
	return pair
}

func loggingFlags(cmd *cli.Command) logging.Config {
	var cfg logging.Config
	if v := cmd.String(flagLogLevel); v != "" {
		cfg.Level = &v
	}
	if v := cmd.String(flagLogFormat); v != "" {
		cfg.Format = &v
	}
	if v := cmd.String(flagLogFile); v != "" {
		cfg.File = &v
	}
	return cfg
}
