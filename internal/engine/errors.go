package engine

import "github.com/dshills/selmark/internal/engine/markup"

// Errors returned by engine operations.
var (
	// ErrOffsetOutOfRange indicates a selection endpoint outside the document.
	ErrOffsetOutOfRange = markup.ErrOffsetOutOfRange

	// ErrInvalidConfiguration indicates unusable options.
	ErrInvalidConfiguration = markup.ErrInvalidConfiguration

	// ErrMalformedMarkup indicates annotated text that cannot be parsed.
	ErrMalformedMarkup = markup.ErrMalformedMarkup
)
