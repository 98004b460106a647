package cursor

import (
	"fmt"

	"github.com/dshills/selmark/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Selection represents a range of selected text.
// Anchor is where the selection started; Active is the current cursor
// position (where typing occurs). When Anchor == Active, the selection is
// collapsed and represents a caret.
// Selection is an immutable value type.
type Selection struct {
	Anchor Point // Where selection started
	Active Point // Current cursor position
}

// NewSelection creates a selection from anchor to active.
func NewSelection(anchor, active Point) Selection {
	return Selection{Anchor: anchor, Active: active}
}

// NewSelectionAt creates a selection from line/column pairs, in the
// (anchorLine, anchorCol, activeLine, activeCol) order editors use.
func NewSelectionAt(anchorLine, anchorCol, activeLine, activeCol uint32) Selection {
	return Selection{
		Anchor: Point{Line: anchorLine, Column: anchorCol},
		Active: Point{Line: activeLine, Column: activeCol},
	}
}

// NewCursorSelection creates a collapsed selection (caret) at p.
func NewCursorSelection(p Point) Selection {
	return Selection{Anchor: p, Active: p}
}

// IsCollapsed returns true if the selection has no extent (just a caret).
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Active
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Point {
	if s.Anchor.Compare(s.Active) <= 0 {
		return s.Anchor
	}
	return s.Active
}

// End returns the upper bound of the selection.
func (s Selection) End() Point {
	if s.Anchor.Compare(s.Active) >= 0 {
		return s.Anchor
	}
	return s.Active
}

// Range returns the selection as a point range (always Start <= End).
func (s Selection) Range() buffer.PointRange {
	return buffer.PointRange{Start: s.Start(), End: s.End()}
}

// IsForward returns true if the selection extends forward (active >= anchor).
func (s Selection) IsForward() bool {
	return s.Active.Compare(s.Anchor) >= 0
}

// IsBackward returns true if the selection extends backward (active < anchor).
func (s Selection) IsBackward() bool {
	return s.Active.Before(s.Anchor)
}

// Flip returns a selection with anchor and active swapped.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Active, Active: s.Anchor}
}

// Equals returns true if two selections have the same anchor and active.
func (s Selection) Equals(other Selection) bool {
	return s.Anchor == other.Anchor && s.Active == other.Active
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Cursor%s", s.Active)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection%s%s%s", s.Anchor, dir, s.Active)
}

// Resolver maps a line/column position to a byte offset.
// *buffer.Document implements it.
type Resolver interface {
	PointToOffset(p Point) (buffer.ByteOffset, error)
}

// Offsets resolves anchor and active to byte offsets in doc.
func (s Selection) Offsets(doc Resolver) (anchor, active buffer.ByteOffset, err error) {
	anchor, err = doc.PointToOffset(s.Anchor)
	if err != nil {
		return 0, 0, fmt.Errorf("anchor %s: %w", s.Anchor, err)
	}
	if s.IsCollapsed() {
		return anchor, anchor, nil
	}
	active, err = doc.PointToOffset(s.Active)
	if err != nil {
		return 0, 0, fmt.Errorf("active %s: %w", s.Active, err)
	}
	return anchor, active, nil
}
