package cursor

import (
	"fmt"
	"strings"

	"github.com/dshills/selmark/internal/engine/buffer"
)

// ColumnUnit names how the Column of a Point is counted.
type ColumnUnit uint8

const (
	// ColumnBytes counts UTF-8 bytes. This is the native unit of buffer.Point.
	ColumnBytes ColumnUnit = iota
	// ColumnUTF16 counts UTF-16 code units, as LSP and most editors do.
	ColumnUTF16
	// ColumnGraphemes counts user-perceived characters.
	ColumnGraphemes
)

// String returns the unit name.
func (u ColumnUnit) String() string {
	switch u {
	case ColumnBytes:
		return "bytes"
	case ColumnUTF16:
		return "utf16"
	case ColumnGraphemes:
		return "graphemes"
	default:
		return "unknown"
	}
}

// ParseColumnUnit parses a unit name as accepted on the command line.
func ParseColumnUnit(s string) (ColumnUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bytes", "byte":
		return ColumnBytes, nil
	case "utf16", "utf-16":
		return ColumnUTF16, nil
	case "graphemes", "grapheme", "chars":
		return ColumnGraphemes, nil
	default:
		return ColumnBytes, fmt.Errorf("unknown column unit %q (want bytes, utf16 or graphemes)", s)
	}
}

// ToByteColumns converts selections whose columns are counted in unit into
// selections with byte columns. The input slice is not modified.
func ToByteColumns(doc *buffer.Document, unit ColumnUnit, sels []Selection) ([]Selection, error) {
	out := make([]Selection, len(sels))
	if unit == ColumnBytes {
		copy(out, sels)
		return out, nil
	}

	convert := func(p Point) (Point, error) {
		switch unit {
		case ColumnUTF16:
			return doc.PointUTF16ToPoint(buffer.PointUTF16{Line: p.Line, Column: p.Column})
		case ColumnGraphemes:
			return doc.GraphemeColumnToPoint(p.Line, p.Column)
		default:
			return Point{}, fmt.Errorf("unknown column unit %d", unit)
		}
	}

	for i, sel := range sels {
		anchor, err := convert(sel.Anchor)
		if err != nil {
			return nil, fmt.Errorf("selection %d anchor: %w", i, err)
		}
		active, err := convert(sel.Active)
		if err != nil {
			return nil, fmt.Errorf("selection %d active: %w", i, err)
		}
		out[i] = Selection{Anchor: anchor, Active: active}
	}
	return out, nil
}

// FromByteColumns converts selections with byte columns into selections
// whose columns are counted in unit. It is the inverse of ToByteColumns.
func FromByteColumns(doc *buffer.Document, unit ColumnUnit, sels []Selection) ([]Selection, error) {
	out := make([]Selection, len(sels))
	if unit == ColumnBytes {
		copy(out, sels)
		return out, nil
	}

	convert := func(p Point) (Point, error) {
		switch unit {
		case ColumnUTF16:
			u, err := doc.PointToPointUTF16(p)
			if err != nil {
				return Point{}, err
			}
			return Point{Line: u.Line, Column: u.Column}, nil
		case ColumnGraphemes:
			col, err := doc.PointToGraphemeColumn(p)
			if err != nil {
				return Point{}, err
			}
			return Point{Line: p.Line, Column: col}, nil
		default:
			return Point{}, fmt.Errorf("unknown column unit %d", unit)
		}
	}

	for i, sel := range sels {
		anchor, err := convert(sel.Anchor)
		if err != nil {
			return nil, fmt.Errorf("selection %d anchor: %w", i, err)
		}
		active, err := convert(sel.Active)
		if err != nil {
			return nil, fmt.Errorf("selection %d active: %w", i, err)
		}
		out[i] = Selection{Anchor: anchor, Active: active}
	}
	return out, nil
}
