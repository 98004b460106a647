package buffer

import "fmt"

// Range is a half-open byte span [Start, End) of the document text.
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// String returns the range as "[start:end)".
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Overlaps reports whether r and other share at least one byte.
// Ranges that only touch at an endpoint do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// PointRange is a span given as line/column positions, Start <= End.
type PointRange struct {
	Start Point
	End   Point
}

// String returns the range as "[start:end)".
func (r PointRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}
