// Package buffer provides an immutable, line-indexed document snapshot and
// the position types used to address it.
//
// The buffer package provides:
//
//   - Document: a read-only snapshot with a precomputed line index
//   - Coordinate conversion between byte offsets and line/column positions
//   - UTF-16 and grapheme-cluster column support for editor and LSP positions
//   - Line ending detection and CRLF normalization
//
// Basic usage:
//
//	doc := buffer.NewDocument("aaa bbb\nccc ddd")
//
//	off, err := doc.PointToOffset(buffer.Point{Line: 1, Column: 4}) // 12
//	p := doc.OffsetToPoint(12)                                      // (1:4)
//
// Position Types:
//
//   - ByteOffset: Raw byte position in the document text
//   - Point: Line and column position (0-indexed, column in bytes)
//   - PointUTF16: Line and column position with UTF-16 code unit column
//
// Line Breaks:
//
// Documents keep their text byte-for-byte. For CRLF text the CR is part of
// the line break: LineText excludes it, while offsets still count it. This
// matches how editors report positions against un-normalized content.
//
// Thread Safety:
//
// Document never changes after construction and is safe for concurrent use.
package buffer
