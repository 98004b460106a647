// Package engine provides the selection marker engine for selmark.
//
// The engine package serves as the main facade over the document snapshot,
// selection, and markup packages. It renders a document's content, either
// raw or with every cursor and selection drawn as inline text markers, and
// parses such marked text back.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: Immutable document snapshot with a line index and position conversion
//   - cursor: Selections (anchor and active points) and column-unit conversion
//   - markup: Marker placement, option resolution, and the inverse parser
//
// # Thread Safety
//
// All engine functions are pure. Documents are immutable after construction,
// so any number of goroutines may render the same document concurrently.
//
// # Basic Usage
//
// Render the content of a document:
//
//	doc := engine.NewDocument("aa\r\nbb")
//	text, _ := engine.GetContent(doc, nil) // "aa\nbb"
//
// Render selections as markers:
//
//	doc := engine.NewDocument("aaa bbb")
//	sels := []engine.Selection{
//	    cursor.NewSelectionAt(0, 1, 0, 3), // anchor (0:1), active (0:3)
//	}
//	text, _ := engine.GetContentWithSelections(doc, sels, nil) // "a[aa} bbb"
//
// # Markers
//
// Collapsed selections are drawn with the caret symbol. A ranged selection
// gets one symbol on each side: the side holding the active point uses the
// Active pair, the other side the Anchor pair. Start symbols are written
// before the range and End symbols after it:
//
//	a[aa} bbb    forward selection, active at the end
//	a{aa] bbb    backward selection, active at the start
//	a^aa bbb     cursor
//
// # Configuration
//
// Options override the defaults shallowly. A supplied pair replaces the
// whole default pair:
//
//	opts := &engine.Options{
//	    Caret:  "🍕",
//	    Anchor: &engine.MarkerPair{Start: "🦄", End: "🦄"},
//	    Active: &engine.MarkerPair{Start: "🚒", End: "🚒"},
//	}
//
// NormalizeEol (default true) replaces CRLF with LF after all markers are
// placed. Offsets are always computed against the un-normalized text.
//
// # Parsing
//
// ParseMarked reverses the rendering for non-overlapping selections:
//
//	doc, sels, _ := engine.ParseMarked("a[aa} bbb", nil)
//	// doc.Text() == "aaa bbb", sels[0] == Selection(0:1)→(0:3)
//
// # Error Handling
//
// The package defines several error types:
//
//   - ErrOffsetOutOfRange: A selection does not resolve against the document
//   - ErrInvalidConfiguration: Options cannot be used
//   - ErrMalformedMarkup: Marked text cannot be parsed
package engine
