package root

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInteractiveInput is returned when input would be read from a terminal.
var ErrInteractiveInput = errors.New("no input: pass a FILE or pipe text on stdin")

func isStdin(path string) bool {
	return path == "" || path == "-"
}

// readInput reads the document text from path, or from stdin when path is
// empty or "-".
func readInput(deps Dependencies, path string) (string, error) {
	if isStdin(path) {
		if deps.IsTerminal != nil && deps.IsTerminal(deps.Stdin) {
			return "", ErrInteractiveInput
		}
		if deps.Stdin == nil {
			return "", ErrInteractiveInput
		}
		return decodeText(deps.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	text, err := decodeText(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}

// decodeText strips a UTF-8 byte order mark and decodes UTF-16 input that
// starts with one. Input without a BOM passes through unchanged.
func decodeText(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(encoding.Nop.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
