package markup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/selmark/internal/engine/buffer"
	"github.com/dshills/selmark/internal/engine/cursor"
)

// markerKind orders markers that share an offset.
// Lower kinds end up further left.
type markerKind uint8

const (
	kindClose markerKind = iota
	kindCaret
	kindOpen
)

// insertion is one marker placed at an offset of the un-normalized text.
type insertion struct {
	offset buffer.ByteOffset
	kind   markerKind
	// peer is the offset of the other end of the range: the start for a
	// closing marker, the end for an opening one.
	peer  buffer.ByteOffset
	index int
	text  string
}

// WithMarkers returns the content of doc with every selection rendered as
// inline markers.
//
// Collapsed selections get cfg.Markers.Caret. A ranged selection gets one
// marker on each side: the active side uses the Active pair and the other
// side the Anchor pair, Start before the range and End after it.
//
// Offsets are resolved against the un-normalized text and every marker is
// placed by offset, so no placement can shift an offset still pending.
// CRLF normalization, when requested, runs last over the marked string.
//
// Overlapping ranged selections are placed at their correct offsets, but
// the output does not disambiguate which marker belongs to which range.
// Overlapping reports them.
func WithMarkers(doc Document, sels []cursor.Selection, cfg Config) (string, error) {
	content := Extract(doc, false)
	if len(sels) == 0 {
		return finish(content, cfg), nil
	}
	if doc == nil {
		return "", fmt.Errorf("%w: %d selections given without a document", ErrOffsetOutOfRange, len(sels))
	}

	points, err := insertionPoints(doc, len(content), sels, cfg.Markers)
	if err != nil {
		return "", err
	}
	return finish(apply(content, points), cfg), nil
}

// span is a selection resolved to a byte range of the un-normalized text.
type span struct {
	rng buffer.Range
	// activeFirst is set when the active endpoint sits at rng.Start.
	activeFirst bool
}

// resolveSpans resolves every selection against doc. Any endpoint that
// does not land inside content fails the whole call.
func resolveSpans(doc Document, contentLen int, sels []cursor.Selection) ([]span, error) {
	spans := make([]span, len(sels))
	for i, sel := range sels {
		anchor, active, err := sel.Offsets(doc)
		if err != nil {
			return nil, fmt.Errorf("selection %d: %w", i, err)
		}
		for _, off := range [2]buffer.ByteOffset{anchor, active} {
			if off < 0 || off > buffer.ByteOffset(contentLen) {
				return nil, fmt.Errorf("%w: selection %d resolves to offset %d, content has %d bytes",
					ErrOffsetOutOfRange, i, off, contentLen)
			}
		}
		if active < anchor {
			spans[i] = span{rng: buffer.Range{Start: active, End: anchor}, activeFirst: true}
		} else {
			spans[i] = span{rng: buffer.Range{Start: anchor, End: active}}
		}
	}
	return spans, nil
}

// insertionPoints resolves every selection into the markers it needs.
func insertionPoints(doc Document, contentLen int, sels []cursor.Selection, m MarkerSet) ([]insertion, error) {
	spans, err := resolveSpans(doc, contentLen, sels)
	if err != nil {
		return nil, err
	}

	points := make([]insertion, 0, 2*len(spans))
	for i, sp := range spans {
		r := sp.rng
		if r.IsEmpty() {
			points = append(points, insertion{offset: r.Start, kind: kindCaret, peer: r.Start, index: i, text: m.Caret})
			continue
		}

		startMarker, endMarker := m.Anchor.Start, m.Active.End
		if sp.activeFirst {
			startMarker, endMarker = m.Active.Start, m.Anchor.End
		}
		points = append(points,
			insertion{offset: r.Start, kind: kindOpen, peer: r.End, index: i, text: startMarker},
			insertion{offset: r.End, kind: kindClose, peer: r.Start, index: i, text: endMarker},
		)
	}
	return points, nil
}

// Overlapping returns the index pairs, lower index first and sorted, of
// ranged selections whose byte ranges overlap. WithMarkers still renders
// them, but Parse cannot read the result back. Carets and ranges that
// only touch are never reported.
func Overlapping(doc Document, sels []cursor.Selection) ([][2]int, error) {
	if len(sels) == 0 {
		return nil, nil
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %d selections given without a document", ErrOffsetOutOfRange, len(sels))
	}
	spans, err := resolveSpans(doc, len(doc.Text()), sels)
	if err != nil {
		return nil, err
	}

	order := make([]int, 0, len(spans))
	for i, sp := range spans {
		if !sp.rng.IsEmpty() {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return spans[order[a]].rng.Start < spans[order[b]].rng.Start
	})

	var pairs [][2]int
	var open []int
	for _, i := range order {
		cur := spans[i].rng
		kept := open[:0]
		for _, j := range open {
			if spans[j].rng.End > cur.Start {
				kept = append(kept, j)
			}
		}
		open = kept
		for _, j := range open {
			if spans[j].rng.Overlaps(cur) {
				pairs = append(pairs, [2]int{min(i, j), max(i, j)})
			}
		}
		open = append(open, i)
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a][0] != pairs[b][0] {
			return pairs[a][0] < pairs[b][0]
		}
		return pairs[a][1] < pairs[b][1]
	})
	return pairs, nil
}

// apply writes content with every marker spliced in.
//
// Points are sorted by ascending offset and streamed through one builder,
// which is output-identical to inserting them one at a time from the
// highest offset to the lowest. At a shared offset the order is: closing
// markers (innermost range first), carets, opening markers (outermost
// range first), then supplied selection order.
func apply(content string, points []insertion) string {
	sort.SliceStable(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.offset != b.offset {
			return a.offset < b.offset
		}
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		if a.kind != kindCaret && a.peer != b.peer {
			// Closers: the later start closes first.
			// Openers: the later end opens first.
			return a.peer > b.peer
		}
		return a.index < b.index
	})

	size := len(content)
	for _, p := range points {
		size += len(p.text)
	}

	var sb strings.Builder
	sb.Grow(size)
	prev := 0
	for _, p := range points {
		off := int(p.offset)
		sb.WriteString(content[prev:off])
		sb.WriteString(p.text)
		prev = off
	}
	sb.WriteString(content[prev:])
	return sb.String()
}

func finish(s string, cfg Config) string {
	if cfg.NormalizeEol {
		return buffer.NormalizeLineEndings(s)
	}
	return s
}
