package cursor

import (
	"errors"
	"testing"

	"github.com/dshills/selmark/internal/engine/buffer"
)

func TestNewCursorSelection(t *testing.T) {
	sel := NewCursorSelection(Point{Line: 1, Column: 4})

	if !sel.IsCollapsed() {
		t.Error("cursor selection should be collapsed")
	}
	if sel.Start() != sel.End() {
		t.Errorf("collapsed selection start %s != end %s", sel.Start(), sel.End())
	}
}

func TestSelectionForward(t *testing.T) {
	sel := NewSelectionAt(0, 1, 0, 3)

	if sel.IsCollapsed() {
		t.Error("ranged selection should not be collapsed")
	}
	if !sel.IsForward() || sel.IsBackward() {
		t.Error("expected forward selection")
	}
	if sel.Start() != (Point{Line: 0, Column: 1}) {
		t.Errorf("expected start (0:1), got %s", sel.Start())
	}
	if sel.End() != (Point{Line: 0, Column: 3}) {
		t.Errorf("expected end (0:3), got %s", sel.End())
	}
}

func TestSelectionBackward(t *testing.T) {
	sel := NewSelectionAt(1, 5, 1, 1)

	if !sel.IsBackward() {
		t.Error("expected backward selection")
	}
	r := sel.Range()
	if r.Start != (Point{Line: 1, Column: 1}) || r.End != (Point{Line: 1, Column: 5}) {
		t.Errorf("unexpected range %s", r)
	}
}

func TestSelectionMultiline(t *testing.T) {
	sel := NewSelectionAt(2, 1, 1, 0)

	if sel.Start() != (Point{Line: 1, Column: 0}) {
		t.Errorf("expected start (1:0), got %s", sel.Start())
	}
	if sel.End() != (Point{Line: 2, Column: 1}) {
		t.Errorf("expected end (2:1), got %s", sel.End())
	}
}

func TestSelectionFlip(t *testing.T) {
	sel := NewSelectionAt(0, 1, 0, 3)
	flipped := sel.Flip()

	if flipped.Anchor != sel.Active || flipped.Active != sel.Anchor {
		t.Errorf("flip mismatch: %s", flipped)
	}
	if !flipped.Flip().Equals(sel) {
		t.Error("double flip should restore the selection")
	}
}

func TestSelectionString(t *testing.T) {
	tests := []struct {
		sel  Selection
		want string
	}{
		{NewCursorSelection(Point{Line: 0, Column: 2}), "Cursor(0:2)"},
		{NewSelectionAt(0, 1, 0, 3), "Selection(0:1)→(0:3)"},
		{NewSelectionAt(0, 3, 0, 1), "Selection(0:3)←(0:1)"},
	}

	for _, tt := range tests {
		if got := tt.sel.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSelectionOffsets(t *testing.T) {
	doc := buffer.NewDocument("aaa bbb\nccc ddd")

	anchor, active, err := NewSelectionAt(1, 5, 1, 1).Offsets(doc)
	if err != nil {
		t.Fatalf("Offsets failed: %v", err)
	}
	if anchor != 13 || active != 9 {
		t.Errorf("Offsets = %d, %d; want 13, 9", anchor, active)
	}

	_, _, err = NewSelectionAt(0, 0, 4, 0).Offsets(doc)
	if !errors.Is(err, buffer.ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in   string
		want Selection
	}{
		{"0:1", NewCursorSelection(Point{Line: 0, Column: 1})},
		{"0:1-0:3", NewSelectionAt(0, 1, 0, 3)},
		{" 1:5 - 1:1 ", NewSelectionAt(1, 5, 1, 1)},
	}

	for _, tt := range tests {
		got, err := ParseSelection(tt.in)
		if err != nil {
			t.Errorf("ParseSelection(%q) error: %v", tt.in, err)
			continue
		}
		if !got.Equals(tt.want) {
			t.Errorf("ParseSelection(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseSelectionInvalid(t *testing.T) {
	for _, in := range []string{"", "1", "a:b", "1:2-", "1:2-3", "-1:0"} {
		if _, err := ParseSelection(in); err == nil {
			t.Errorf("ParseSelection(%q) expected error", in)
		}
	}
}

func TestToByteColumns(t *testing.T) {
	doc := buffer.NewDocument("f🍕ooba🍔r")
	sels := []Selection{NewSelectionAt(0, 3, 0, 7)}

	tests := []struct {
		unit ColumnUnit
		in   []Selection
		want Selection
	}{
		{ColumnBytes, []Selection{NewSelectionAt(0, 5, 0, 13)}, NewSelectionAt(0, 5, 0, 13)},
		{ColumnUTF16, sels, NewSelectionAt(0, 5, 0, 9)},
		{ColumnGraphemes, []Selection{NewSelectionAt(0, 2, 0, 6)}, NewSelectionAt(0, 5, 0, 9)},
	}

	for _, tt := range tests {
		got, err := ToByteColumns(doc, tt.unit, tt.in)
		if err != nil {
			t.Errorf("ToByteColumns(%s) error: %v", tt.unit, err)
			continue
		}
		if !got[0].Equals(tt.want) {
			t.Errorf("ToByteColumns(%s) = %s, want %s", tt.unit, got[0], tt.want)
		}
	}
}

func TestParseColumnUnit(t *testing.T) {
	for in, want := range map[string]ColumnUnit{
		"":          ColumnBytes,
		"bytes":     ColumnBytes,
		"UTF16":     ColumnUTF16,
		"graphemes": ColumnGraphemes,
	} {
		got, err := ParseColumnUnit(in)
		if err != nil || got != want {
			t.Errorf("ParseColumnUnit(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseColumnUnit("runes"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestFromByteColumns(t *testing.T) {
	doc := buffer.NewDocument("f🍕ooba🍔r")
	in := []Selection{NewSelectionAt(0, 5, 0, 9)}

	for unit, want := range map[ColumnUnit]Selection{
		ColumnBytes:     NewSelectionAt(0, 5, 0, 9),
		ColumnUTF16:     NewSelectionAt(0, 3, 0, 7),
		ColumnGraphemes: NewSelectionAt(0, 2, 0, 6),
	} {
		got, err := FromByteColumns(doc, unit, in)
		if err != nil {
			t.Errorf("FromByteColumns(%s) error: %v", unit, err)
			continue
		}
		if !got[0].Equals(want) {
			t.Errorf("FromByteColumns(%s) = %s, want %s", unit, got[0], want)
		}
		back, err := ToByteColumns(doc, unit, got)
		if err != nil || !back[0].Equals(in[0]) {
			t.Errorf("ToByteColumns(FromByteColumns(%s)) = %v, %v", unit, back, err)
		}
	}

	if _, err := FromByteColumns(doc, ColumnGraphemes, []Selection{NewSelectionAt(0, 2, 0, 2)}); !errors.Is(err, buffer.ErrOffsetOutOfRange) {
		t.Errorf("column inside a cluster: expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestFormatSelection(t *testing.T) {
	for _, in := range []string{"0:1", "0:1-2:3", "4:9-4:0"} {
		sel, err := ParseSelection(in)
		if err != nil {
			t.Fatalf("ParseSelection(%q) error: %v", in, err)
		}
		if got := FormatSelection(sel); got != in {
			t.Errorf("FormatSelection(%s) = %q, want %q", sel, got, in)
		}
	}
}
