package markup

import (
	"errors"
	"fmt"

	"github.com/dshills/selmark/internal/engine/buffer"
)

// Errors returned by markup operations.
var (
	// ErrOffsetOutOfRange indicates a selection endpoint does not resolve to
	// a valid offset in the document snapshot, e.g. a stale selection
	// against a changed document. It is the same value as
	// buffer.ErrOffsetOutOfRange so either can be matched with errors.Is.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrInvalidConfiguration indicates an option value cannot be used.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMalformedMarkup indicates annotated text whose markers cannot be
	// turned back into selections.
	ErrMalformedMarkup = errors.New("malformed markup")
)

// MarkupError describes where annotated text failed to parse.
type MarkupError struct {
	// Offset is the byte offset in the annotated text.
	Offset int
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *MarkupError) Error() string {
	return fmt.Sprintf("malformed markup at offset %d: %s", e.Offset, e.Message)
}

// Is implements error matching for MarkupError.
func (e *MarkupError) Is(target error) bool {
	return target == ErrMalformedMarkup
}
