// Package cursor provides the selection model consumed by the marker engine.
//
// Selection Model:
//
// Selections use an anchor/active model where:
//   - Anchor: The position where the selection started
//   - Active: The current cursor position (where typing would occur)
//
// When Anchor == Active, the selection is collapsed and represents a caret.
// The selection can extend forward (active > anchor) or backward
// (active < anchor), preserving the user's selection direction.
//
// Positions are buffer.Point values with byte columns. Selections reported
// in UTF-16 or grapheme columns are converted with ToByteColumns.
//
// Basic usage:
//
//	sel := cursor.NewSelectionAt(0, 1, 0, 3) // anchor (0:1), active (0:3)
//	sel.IsForward()                           // true
//
//	caret, _ := cursor.ParseSelection("2:0")
//	caret.IsCollapsed() // true
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
