package config

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/dshills/selmark/internal/engine/markup"
)

// Setting keys.
const (
	KeyNormalizeEol = "normalizeEol"
	KeyCaret        = "caret"
	KeyAnchor       = "anchor"
	KeyActive       = "active"
)

// DefaultMap returns the built-in defaults as a configuration map.
func DefaultMap() map[string]any {
	return map[string]any{
		KeyNormalizeEol: true,
		KeyCaret:        markup.DefaultCaret,
		KeyAnchor: map[string]any{
			"start": markup.DefaultAnchorStart,
			"end":   markup.DefaultAnchorEnd,
		},
		KeyActive: map[string]any{
			"start": markup.DefaultActiveStart,
			"end":   markup.DefaultActiveEnd,
		},
	}
}

// Decode converts a raw option map into markup options.
//
// Keys that are absent stay unset. A marker pair must name both start and
// end; defaults are never merged into a partial pair. Unknown keys and
// values of the wrong type fail with a *ValidationError.
//
// A pair missing a side is a *ValidationError here, so it never reaches
// markup.Resolve. Resolve itself accepts a *MarkerPair with an empty side:
// the pair replaces the default whole and the empty side renders nothing.
func Decode(data map[string]any) (*markup.Options, error) {
	opts := &markup.Options{}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := data[key]
		switch key {
		case KeyNormalizeEol:
			b, ok := val.(bool)
			if !ok {
				return nil, typeMismatch(key, "bool", val)
			}
			opts.NormalizeEol = markup.Bool(b)

		case KeyCaret:
			s, err := decodeSymbol(key, val)
			if err != nil {
				return nil, err
			}
			opts.Caret = s

		case KeyAnchor:
			p, err := decodePair(key, val)
			if err != nil {
				return nil, err
			}
			opts.Anchor = p

		case KeyActive:
			p, err := decodePair(key, val)
			if err != nil {
				return nil, err
			}
			opts.Active = p

		default:
			return nil, &ValidationError{
				Path:    key,
				Message: "unknown setting",
				Code:    ErrCodeUnknownSetting,
			}
		}
	}
	return opts, nil
}

func decodePair(key string, val any) (*markup.MarkerPair, error) {
	m, ok := val.(map[string]any)
	if !ok {
		return nil, typeMismatch(key, "table with start and end", val)
	}

	for k := range m {
		if k != "start" && k != "end" {
			return nil, &ValidationError{
				Path:    key + "." + k,
				Message: "unknown setting",
				Code:    ErrCodeUnknownSetting,
			}
		}
	}

	pair := &markup.MarkerPair{}
	for _, side := range []struct {
		name string
		dst  *string
	}{
		{"start", &pair.Start},
		{"end", &pair.End},
	} {
		raw, ok := m[side.name]
		if !ok {
			return nil, &ValidationError{
				Path:    key + "." + side.name,
				Message: "marker pair must set both start and end",
				Code:    ErrCodeRequiredMissing,
			}
		}
		s, err := decodeSymbol(key+"."+side.name, raw)
		if err != nil {
			return nil, err
		}
		*side.dst = s
	}
	return pair, nil
}

func decodeSymbol(path string, val any) (string, error) {
	s, ok := val.(string)
	if !ok {
		return "", typeMismatch(path, "string", val)
	}
	if !utf8.ValidString(s) {
		return "", &ValidationError{
			Path:    path,
			Message: "symbol is not valid UTF-8",
			Value:   s,
			Code:    ErrCodeInvalidValue,
		}
	}
	return s, nil
}

func typeMismatch(path, expected string, val any) *ValidationError {
	return &ValidationError{
		Path:    path,
		Message: fmt.Sprintf("expected %s, got %T", expected, val),
		Value:   val,
		Code:    ErrCodeTypeMismatch,
	}
}
