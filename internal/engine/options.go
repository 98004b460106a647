package engine

import "github.com/dshills/selmark/internal/engine/markup"

type (
	// Options configures content extraction. A nil *Options uses defaults.
	Options = markup.Options

	// MarkerPair holds the start and end symbols of one side of a range.
	MarkerPair = markup.MarkerPair
)

// Default marker symbols.
const (
	DefaultCaret       = markup.DefaultCaret
	DefaultAnchorStart = markup.DefaultAnchorStart
	DefaultAnchorEnd   = markup.DefaultAnchorEnd
	DefaultActiveStart = markup.DefaultActiveStart
	DefaultActiveEnd   = markup.DefaultActiveEnd
)

// Bool returns a pointer to b, for filling Options.NormalizeEol.
func Bool(b bool) *bool {
	return markup.Bool(b)
}
