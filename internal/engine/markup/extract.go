package markup

import (
	"github.com/dshills/selmark/internal/engine/buffer"
)

// Document is the read-only view of a document the engine consumes.
// *buffer.Document implements it; editor integrations can supply their own.
//
// PointToOffset is authoritative: the engine never recomputes offsets
// from LineText, it only relies on the mapping being stable for the
// duration of one call.
type Document interface {
	Text() string
	LineCount() uint32
	LineText(line uint32) string
	PointToOffset(p buffer.Point) (buffer.ByteOffset, error)
}

// Extract returns the full text of doc, from its first character to its
// last. With normalizeEol every CRLF is replaced by LF; otherwise the text
// is returned byte-for-byte. A nil document yields "".
func Extract(doc Document, normalizeEol bool) string {
	if doc == nil {
		return ""
	}
	text := doc.Text()
	if normalizeEol {
		return buffer.NormalizeLineEndings(text)
	}
	return text
}
