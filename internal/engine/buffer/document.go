package buffer

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// Errors returned by document operations.
var (
	// ErrOffsetOutOfRange indicates a position does not resolve to a valid
	// offset in the document.
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// Document is an immutable snapshot of line-structured text.
//
// Lines are separated by '\n'. A '\r' directly before the '\n' belongs to
// the line break: it is excluded from LineText but still counted in
// offsets, so offsets always index into Text unchanged.
//
// A Document is safe for concurrent use.
type Document struct {
	text       string
	lineStarts []int
}

// NewDocument creates a document snapshot over text.
// The text is stored byte-for-byte; no line ending conversion happens.
func NewDocument(text string) *Document {
	return &Document{
		text:       text,
		lineStarts: computeLineStarts(text),
	}
}

// computeLineStarts returns the byte offset at which each line begins.
// There is always at least one line.
func computeLineStarts(s string) []int {
	starts := make([]int, 1, 1+len(s)/32)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Text returns the full document content.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	return d.text
}

// Len returns the total byte length of the document.
func (d *Document) Len() ByteOffset {
	if d == nil {
		return 0
	}
	return ByteOffset(len(d.text))
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return d.Len() == 0
}

// LineEnding scans the text and returns its dominant line ending.
func (d *Document) LineEnding() LineEnding {
	return DetectLineEnding(d.Text())
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() uint32 {
	if d == nil {
		return 1
	}
	return uint32(len(d.lineStarts))
}

// LineStartOffset returns the byte offset of the start of a line.
// Lines past the end report the document length.
func (d *Document) LineStartOffset(line uint32) ByteOffset {
	if d == nil || int(line) >= len(d.lineStarts) {
		return d.Len()
	}
	return ByteOffset(d.lineStarts[line])
}

// LineEndOffset returns the byte offset of the end of a line, before the
// line break (and before a CR that is part of a CRLF pair).
func (d *Document) LineEndOffset(line uint32) ByteOffset {
	if d == nil || int(line) >= len(d.lineStarts) {
		return d.Len()
	}
	if int(line)+1 >= len(d.lineStarts) {
		return ByteOffset(len(d.text))
	}
	end := d.lineStarts[line+1] - 1 // the '\n'
	if end > d.lineStarts[line] && d.text[end-1] == '\r' {
		end--
	}
	return ByteOffset(end)
}

// LineText returns the text of a specific line without its line break.
func (d *Document) LineText(line uint32) string {
	if d == nil || int(line) >= len(d.lineStarts) {
		return ""
	}
	return d.text[d.LineStartOffset(line):d.LineEndOffset(line)]
}

// LineLen returns the length of a specific line in bytes (without line break).
func (d *Document) LineLen(line uint32) int {
	return int(d.LineEndOffset(line) - d.LineStartOffset(line))
}

// PointToOffset converts line/column to a byte offset.
// It fails with ErrOffsetOutOfRange when the line does not exist, the
// column lies past the end of the line text, or the column splits a
// UTF-8 sequence.
func (d *Document) PointToOffset(p Point) (ByteOffset, error) {
	count := d.LineCount()
	if p.Line >= count {
		return 0, fmt.Errorf("%w: line %d, document has %d lines", ErrOffsetOutOfRange, p.Line, count)
	}
	lineLen := d.LineLen(p.Line)
	if int(p.Column) > lineLen {
		return 0, fmt.Errorf("%w: column %d, line %d has %d bytes", ErrOffsetOutOfRange, p.Column, p.Line, lineLen)
	}
	off := d.LineStartOffset(p.Line) + ByteOffset(p.Column)
	if off < d.Len() && !utf8.RuneStart(d.text[off]) {
		return 0, fmt.Errorf("%w: %s splits a UTF-8 sequence", ErrOffsetOutOfRange, p)
	}
	return off, nil
}

// OffsetToPoint converts a byte offset to line/column.
// Offsets outside the document are clamped to its bounds.
func (d *Document) OffsetToPoint(offset ByteOffset) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > d.Len() {
		offset = d.Len()
	}
	if d == nil {
		return Point{}
	}
	// Last line whose start is <= offset.
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return ByteOffset(d.lineStarts[i]) > offset
	}) - 1
	return Point{
		Line:   uint32(line),
		Column: uint32(offset - ByteOffset(d.lineStarts[line])),
	}
}
