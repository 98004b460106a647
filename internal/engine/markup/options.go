package markup

import (
	"fmt"
	"unicode/utf8"
)

// Default marker symbols.
const (
	DefaultCaret       = "^"
	DefaultAnchorStart = "["
	DefaultAnchorEnd   = "]"
	DefaultActiveStart = "{"
	DefaultActiveEnd   = "}"
)

// MarkerPair holds the symbols written before the start and after the end
// of one side of a ranged selection.
type MarkerPair struct {
	Start string `json:"start" yaml:"start" toml:"start"`
	End   string `json:"end" yaml:"end" toml:"end"`
}

// MarkerSet holds every symbol the engine may insert.
// Symbols are opaque strings and may span several bytes.
type MarkerSet struct {
	Caret  string
	Anchor MarkerPair
	Active MarkerPair
}

// DefaultMarkerSet returns ^, [ ] and { }.
func DefaultMarkerSet() MarkerSet {
	return MarkerSet{
		Caret:  DefaultCaret,
		Anchor: MarkerPair{Start: DefaultAnchorStart, End: DefaultAnchorEnd},
		Active: MarkerPair{Start: DefaultActiveStart, End: DefaultActiveEnd},
	}
}

// Options are the caller-supplied settings for one extraction.
// Unset fields fall back to defaults. Anchor and Active override shallowly:
// a non-nil pair replaces the whole default pair, it is never merged with it.
type Options struct {
	// NormalizeEol collapses CRLF into LF. Nil means true.
	NormalizeEol *bool
	// Caret marks collapsed selections. Empty means DefaultCaret.
	Caret string
	// Anchor wraps the side of a ranged selection that is not active.
	Anchor *MarkerPair
	// Active wraps the side of a ranged selection that is active.
	Active *MarkerPair
}

// Bool returns a pointer to b, for filling Options.NormalizeEol.
func Bool(b bool) *bool {
	return &b
}

// Config is the resolved, immutable form of Options.
type Config struct {
	NormalizeEol bool
	Markers      MarkerSet
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{NormalizeEol: true, Markers: DefaultMarkerSet()}
}

// Resolve applies opts over the defaults and validates the result.
// A nil opts yields DefaultConfig.
func Resolve(opts *Options) (Config, error) {
	cfg := DefaultConfig()
	if opts == nil {
		return cfg, nil
	}

	if opts.NormalizeEol != nil {
		cfg.NormalizeEol = *opts.NormalizeEol
	}
	if opts.Caret != "" {
		cfg.Markers.Caret = opts.Caret
	}
	if opts.Anchor != nil {
		cfg.Markers.Anchor = *opts.Anchor
	}
	if opts.Active != nil {
		cfg.Markers.Active = *opts.Active
	}

	if err := cfg.Markers.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every symbol is insertable text.
func (m MarkerSet) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"caret", m.Caret},
		{"anchor.start", m.Anchor.Start},
		{"anchor.end", m.Anchor.End},
		{"active.start", m.Active.Start},
		{"active.end", m.Active.End},
	} {
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidConfiguration, f.name)
		}
	}
	return nil
}
