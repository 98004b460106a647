package cursor

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSelection parses a selection written as "L:C" (a caret) or
// "L:C-L:C" (anchor, then active). Lines and columns are 0-indexed.
func ParseSelection(s string) (Selection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selection{}, fmt.Errorf("empty selection")
	}

	anchorStr, activeStr, ranged := strings.Cut(s, "-")
	anchor, err := parsePoint(anchorStr)
	if err != nil {
		return Selection{}, fmt.Errorf("selection %q: %w", s, err)
	}
	if !ranged {
		return NewCursorSelection(anchor), nil
	}

	active, err := parsePoint(activeStr)
	if err != nil {
		return Selection{}, fmt.Errorf("selection %q: %w", s, err)
	}
	return NewSelection(anchor, active), nil
}

// ParseSelections parses every entry with ParseSelection.
func ParseSelections(specs []string) ([]Selection, error) {
	sels := make([]Selection, 0, len(specs))
	for _, spec := range specs {
		sel, err := ParseSelection(spec)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

func parsePoint(s string) (Point, error) {
	lineStr, colStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Point{}, fmt.Errorf("position %q must be LINE:COLUMN", s)
	}
	line, err := strconv.ParseUint(strings.TrimSpace(lineStr), 10, 32)
	if err != nil {
		return Point{}, fmt.Errorf("invalid line %q", lineStr)
	}
	col, err := strconv.ParseUint(strings.TrimSpace(colStr), 10, 32)
	if err != nil {
		return Point{}, fmt.Errorf("invalid column %q", colStr)
	}
	return Point{Line: uint32(line), Column: uint32(col)}, nil
}

// FormatSelection writes sel in the form ParseSelection reads.
func FormatSelection(sel Selection) string {
	if sel.IsCollapsed() {
		return fmt.Sprintf("%d:%d", sel.Active.Line, sel.Active.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", sel.Anchor.Line, sel.Anchor.Column, sel.Active.Line, sel.Active.Column)
}
