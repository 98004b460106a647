package markup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/selmark/internal/engine/buffer"
	"github.com/dshills/selmark/internal/engine/cursor"
)

// Parsed is annotated text split back into content and selections.
type Parsed struct {
	// Content is the text with every marker removed.
	Content string
	// Selections are in document order, with byte columns into Content.
	Selections []cursor.Selection
}

// Document returns a snapshot of the parsed content.
func (p Parsed) Document() *buffer.Document {
	return buffer.NewDocument(p.Content)
}

type symbolRole uint8

const (
	roleCaret symbolRole = 1 << iota
	roleOpenAnchor
	roleOpenActive
	roleCloseAnchor
	roleCloseActive
)

const (
	roleOpen  = roleOpenAnchor | roleOpenActive
	roleClose = roleCloseAnchor | roleCloseActive
)

type symbol struct {
	text  string
	roles symbolRole
}

// symbols returns the marker symbols longest first, merging identical
// strings into one symbol with several roles.
func (m MarkerSet) symbols() ([]symbol, error) {
	byText := make(map[string]symbolRole, 5)
	for _, s := range []struct {
		name string
		text string
		role symbolRole
	}{
		{"caret", m.Caret, roleCaret},
		{"anchor.start", m.Anchor.Start, roleOpenAnchor},
		{"anchor.end", m.Anchor.End, roleCloseAnchor},
		{"active.start", m.Active.Start, roleOpenActive},
		{"active.end", m.Active.End, roleCloseActive},
	} {
		if s.text == "" {
			return nil, fmt.Errorf("%w: %s is empty and cannot be parsed", ErrInvalidConfiguration, s.name)
		}
		byText[s.text] |= s.role
	}

	syms := make([]symbol, 0, len(byText))
	for text, roles := range byText {
		syms = append(syms, symbol{text: text, roles: roles})
	}
	sort.Slice(syms, func(i, j int) bool {
		if len(syms[i].text) != len(syms[j].text) {
			return len(syms[i].text) > len(syms[j].text)
		}
		return syms[i].text < syms[j].text
	})
	return syms, nil
}

type openRange struct {
	offset int
	active bool
	at     int
}

type parsedSel struct {
	anchor, active int
	start          int
	at             int
}

// Parse removes the markers of set from marked and rebuilds the selections
// they describe. It is the inverse of WithMarkers for selections that do
// not overlap.
//
// The longest matching symbol wins. A symbol with several roles closes a
// pending range if it can, otherwise opens one if it can, otherwise is a
// caret. Ranges do not nest.
func Parse(marked string, set MarkerSet) (Parsed, error) {
	syms, err := set.symbols()
	if err != nil {
		return Parsed{}, err
	}

	var (
		content strings.Builder
		sels    []parsedSel
		open    *openRange
	)
	content.Grow(len(marked))

	for i := 0; i < len(marked); {
		sym, ok := matchSymbol(marked[i:], syms)
		if !ok {
			content.WriteByte(marked[i])
			i++
			continue
		}
		pos := content.Len()

		switch {
		case open != nil && sym.roles&roleClose != 0:
			closeActive := sym.roles&roleCloseActive != 0
			// With identical symbols, pick the role that pairs with the opener.
			if open.active && sym.roles&roleCloseAnchor != 0 {
				closeActive = false
			}
			if open.active == closeActive {
				return Parsed{}, &MarkupError{Offset: i, Message: "range has no single active side"}
			}
			if open.active {
				sels = append(sels, parsedSel{anchor: pos, active: open.offset, start: open.offset, at: open.at})
			} else {
				sels = append(sels, parsedSel{anchor: open.offset, active: pos, start: open.offset, at: open.at})
			}
			open = nil

		case sym.roles&roleOpen != 0:
			if open != nil {
				return Parsed{}, &MarkupError{Offset: i, Message: fmt.Sprintf("range opened at offset %d is still open", open.at)}
			}
			open = &openRange{
				offset: pos,
				// Prefer the anchor role when a symbol could open either side;
				// a following active closer then pairs with it.
				active: sym.roles&roleOpenAnchor == 0,
				at:     i,
			}

		case sym.roles&roleCaret != 0:
			sels = append(sels, parsedSel{anchor: pos, active: pos, start: pos, at: i})

		default:
			return Parsed{}, &MarkupError{Offset: i, Message: fmt.Sprintf("%q closes a range that was never opened", sym.text)}
		}
		i += len(sym.text)
	}
	if open != nil {
		return Parsed{}, &MarkupError{Offset: open.at, Message: "range is never closed"}
	}

	out := Parsed{Content: content.String()}
	if len(sels) == 0 {
		return out, nil
	}

	sort.SliceStable(sels, func(i, j int) bool { return sels[i].start < sels[j].start })
	doc := buffer.NewDocument(out.Content)
	out.Selections = make([]cursor.Selection, len(sels))
	for i, s := range sels {
		anchor, err := pointAt(doc, s.anchor, s.at)
		if err != nil {
			return Parsed{}, err
		}
		active, err := pointAt(doc, s.active, s.at)
		if err != nil {
			return Parsed{}, err
		}
		out.Selections[i] = cursor.NewSelection(anchor, active)
	}
	return out, nil
}

// pointAt converts a content offset into a Point. Offsets between the CR
// and LF of a line break, or inside a UTF-8 sequence, have no Point.
func pointAt(doc *buffer.Document, off, at int) (buffer.Point, error) {
	p := doc.OffsetToPoint(buffer.ByteOffset(off))
	if back, err := doc.PointToOffset(p); err != nil || back != buffer.ByteOffset(off) {
		return buffer.Point{}, &MarkupError{Offset: at, Message: "marker falls inside a line break or character"}
	}
	return p, nil
}

func matchSymbol(s string, syms []symbol) (symbol, bool) {
	for _, sym := range syms {
		if strings.HasPrefix(s, sym.text) {
			return sym, true
		}
	}
	return symbol{}, false
}
