package buffer

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// PointUTF16ToPoint converts a UTF-16 line/column to a byte-column Point.
// A column that lands inside a surrogate pair or past the end of the line
// fails with ErrOffsetOutOfRange.
func (d *Document) PointUTF16ToPoint(p PointUTF16) (Point, error) {
	if p.Line >= d.LineCount() {
		return Point{}, fmt.Errorf("%w: line %d, document has %d lines", ErrOffsetOutOfRange, p.Line, d.LineCount())
	}
	line := d.LineText(p.Line)

	var col uint32
	byteCol := 0
	for byteCol < len(line) && col < p.Column {
		r, size := utf8.DecodeRuneInString(line[byteCol:])
		col += uint32(utf16.RuneLen(r))
		byteCol += size
	}
	if col != p.Column {
		return Point{}, fmt.Errorf("%w: %s is not on a character boundary", ErrOffsetOutOfRange, p)
	}
	return Point{Line: p.Line, Column: uint32(byteCol)}, nil
}

// PointToPointUTF16 converts a byte-column Point to a UTF-16 line/column.
func (d *Document) PointToPointUTF16(p Point) (PointUTF16, error) {
	off, err := d.PointToOffset(p)
	if err != nil {
		return PointUTF16{}, err
	}
	prefix := d.text[d.LineStartOffset(p.Line):off]

	var col uint32
	for _, r := range prefix {
		col += uint32(utf16.RuneLen(r))
	}
	return PointUTF16{Line: p.Line, Column: col}, nil
}

// GraphemeColumnToPoint converts a column counted in grapheme clusters to a
// byte-column Point. Column == cluster count addresses the end of the line.
func (d *Document) GraphemeColumnToPoint(line, column uint32) (Point, error) {
	if line >= d.LineCount() {
		return Point{}, fmt.Errorf("%w: line %d, document has %d lines", ErrOffsetOutOfRange, line, d.LineCount())
	}
	text := d.LineText(line)

	var clusters uint32
	byteCol := 0
	g := uniseg.NewGraphemes(text)
	for clusters < column && g.Next() {
		_, to := g.Positions()
		byteCol = to
		clusters++
	}
	if clusters != column {
		return Point{}, fmt.Errorf("%w: grapheme column %d, line %d has %d clusters", ErrOffsetOutOfRange, column, line, clusters)
	}
	return Point{Line: line, Column: uint32(byteCol)}, nil
}

// PointToGraphemeColumn returns the number of grapheme clusters preceding p
// on its line. The point must sit on a cluster boundary.
func (d *Document) PointToGraphemeColumn(p Point) (uint32, error) {
	off, err := d.PointToOffset(p)
	if err != nil {
		return 0, err
	}
	text := d.text[d.LineStartOffset(p.Line):d.LineEndOffset(p.Line)]
	target := int(off - d.LineStartOffset(p.Line))

	var clusters uint32
	g := uniseg.NewGraphemes(text)
	pos := 0
	for pos < target && g.Next() {
		_, pos = g.Positions()
		clusters++
	}
	if pos != target {
		return 0, fmt.Errorf("%w: %s splits a grapheme cluster", ErrOffsetOutOfRange, p)
	}
	return clusters, nil
}
