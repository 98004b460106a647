// Package markup renders document content with selections drawn as inline
// text markers, and parses such text back.
//
// Markers:
//
//   - Collapsed selections (carets) are marked with ^
//   - The anchor side of a ranged selection is marked with [ or ]
//   - The active side of a ranged selection is marked with { or }
//
// Start symbols go before the range, end symbols after it, so a forward
// selection of "aa" in "a aa b" renders as "a [aa} b" and the backward
// selection of the same text as "a {aa] b".
//
// Offsets:
//
// Selection endpoints are resolved through the document's own
// PointToOffset against the un-normalized text. CRLF normalization is
// applied only after every marker is in place; normalizing first would
// shift every offset after the first CRLF.
//
// All functions are pure and safe for concurrent use.
package markup
