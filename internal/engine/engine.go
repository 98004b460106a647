package engine

import (
	"github.com/dshills/selmark/internal/engine/buffer"
	"github.com/dshills/selmark/internal/engine/cursor"
	"github.com/dshills/selmark/internal/engine/markup"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in a document.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// PointUTF16 represents a UTF-16 line/column position (for LSP).
	PointUTF16 = buffer.PointUTF16

	// Document is an immutable text snapshot with a line index.
	Document = buffer.Document

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// Source is the read-only document view the engine consumes.
	Source = markup.Document
)

// NewDocument creates a document snapshot of text.
func NewDocument(text string) *Document {
	return buffer.NewDocument(text)
}

// GetContent returns the text of doc, with CRLF normalized to LF unless
// opts disables it.
func GetContent(doc Source, opts *Options) (string, error) {
	cfg, err := markup.Resolve(opts)
	if err != nil {
		return "", err
	}
	return markup.Extract(doc, cfg.NormalizeEol), nil
}

// GetContentWithSelections returns the text of doc with every selection
// drawn as inline markers.
//
// Options are resolved before any offset is computed, so an invalid
// configuration is reported even for an empty selection list. A selection
// that does not resolve against doc fails the whole call with
// ErrOffsetOutOfRange.
func GetContentWithSelections(doc Source, sels []Selection, opts *Options) (string, error) {
	cfg, err := markup.Resolve(opts)
	if err != nil {
		return "", err
	}
	return markup.WithMarkers(doc, sels, cfg)
}

// OverlappingSelections reports the index pairs of ranged selections in
// sels whose ranges overlap. GetContentWithSelections renders them, but
// ParseMarked rejects the result since ranges do not nest.
func OverlappingSelections(doc Source, sels []Selection) ([][2]int, error) {
	return markup.Overlapping(doc, sels)
}

// ParseMarked is the inverse of GetContentWithSelections. It strips the
// markers configured by opts from marked and returns the remaining content
// as a document together with the selections the markers described.
//
// When opts normalizes line endings, the returned document has LF line
// breaks. Selections stay valid either way since columns never count the
// CR of a CRLF.
func ParseMarked(marked string, opts *Options) (*Document, []Selection, error) {
	cfg, err := markup.Resolve(opts)
	if err != nil {
		return nil, nil, err
	}
	parsed, err := markup.Parse(marked, cfg.Markers)
	if err != nil {
		return nil, nil, err
	}
	content := parsed.Content
	if cfg.NormalizeEol {
		content = buffer.NormalizeLineEndings(content)
	}
	return buffer.NewDocument(content), parsed.Selections, nil
}
