package root

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/selmark/internal/engine/cursor"
)

// writeText writes s verbatim. When ensureNewline is set and s does not
// end with a line break, one is appended.
func writeText(w io.Writer, s string, ensureNewline bool) error {
	if ensureNewline && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeJSON(w io.Writer, doc []byte) error {
	_, err := w.Write(pretty.Pretty(doc))
	return err
}

// contentJSON encodes {"content": content}.
func contentJSON(content string) ([]byte, error) {
	return sjson.SetBytes([]byte(`{}`), "content", content)
}

// sourceJSON encodes the content together with the line ending detected
// in the source text, before any normalization.
func sourceJSON(content, lineEnding string) ([]byte, error) {
	doc, err := contentJSON(content)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(doc, "lineEnding", lineEnding)
}

// markedJSON encodes the rendered text together with the selections that
// were drawn, written as --sel values.
func markedJSON(marked string, sels []cursor.Selection) ([]byte, error) {
	doc, err := contentJSON(marked)
	if err != nil {
		return nil, err
	}
	specs := make([]string, len(sels))
	for i, sel := range sels {
		specs[i] = cursor.FormatSelection(sel)
	}
	return sjson.SetBytes(doc, "selections", specs)
}

// parsedJSON encodes parsed content and every selection with its anchor,
// active and direction.
func parsedJSON(content string, sels []cursor.Selection, unit cursor.ColumnUnit) ([]byte, error) {
	doc, err := contentJSON(content)
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "columns", unit.String()); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetRawBytes(doc, "selections", []byte(`[]`)); err != nil {
		return nil, err
	}

	for i, sel := range sels {
		prefix := "selections." + strconv.Itoa(i) + "."
		fields := []struct {
			path  string
			value any
		}{
			{"anchor.line", sel.Anchor.Line},
			{"anchor.column", sel.Anchor.Column},
			{"active.line", sel.Active.Line},
			{"active.column", sel.Active.Column},
			{"collapsed", sel.IsCollapsed()},
			{"backward", sel.IsBackward()},
			{"sel", cursor.FormatSelection(sel)},
		}
		for _, f := range fields {
			if doc, err = sjson.SetBytes(doc, prefix+f.path, f.value); err != nil {
				return nil, fmt.Errorf("encoding selection %d: %w", i, err)
			}
		}
	}
	return doc, nil
}

// parsedText writes content, a "---" separator line and one selection per
// line in --sel syntax.
func parsedText(content string, sels []cursor.Selection) string {
	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("---\n")
	for _, sel := range sels {
		b.WriteString(cursor.FormatSelection(sel))
		b.WriteByte('\n')
	}
	return b.String()
}
