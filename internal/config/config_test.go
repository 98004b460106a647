package config

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/dshills/selmark/internal/config/layer"
	"github.com/dshills/selmark/internal/config/loader"
	"github.com/dshills/selmark/internal/engine/markup"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[path]; !ok {
		return nil, fs.ErrNotExist
	}
	return fileInfo(path), nil
}

type fileInfo string

func (f fileInfo) Name() string       { return string(f) }
func (f fileInfo) Size() int64        { return 0 }
func (f fileInfo) Mode() fs.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

func mustLoad(t *testing.T, opts ...Option) *Config {
	t.Helper()
	c := New(opts...)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func mustResolve(t *testing.T, c *Config) markup.Config {
	t.Helper()
	cfg, err := c.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	c := mustLoad(t, WithEnv(nil))

	if got := mustResolve(t, c); got != markup.DefaultConfig() {
		t.Errorf("Resolve() = %+v, want defaults", got)
	}
	if src, ok := c.SourceOf(KeyCaret); !ok || src != layer.SourceBuiltin {
		t.Errorf("SourceOf(caret) = %v, %v", src, ok)
	}
}

func TestConfigFileFormats(t *testing.T) {
	files := memFS{
		"/s.toml": "caret = \"|\"\n[anchor]\nstart = \"<\"\nend = \">\"\n",
		"/s.yaml": "caret: \"|\"\nanchor:\n  start: \"<\"\n  end: \">\"\n",
		"/s.json": `{"caret": "|", "anchor": {"start": "<", "end": ">"}}`,
	}

	for path := range files {
		t.Run(path, func(t *testing.T) {
			c := mustLoad(t, WithFile(path), WithFileSystem(files), WithEnv(nil))
			cfg := mustResolve(t, c)

			if cfg.Markers.Caret != "|" {
				t.Errorf("Caret = %q", cfg.Markers.Caret)
			}
			if cfg.Markers.Anchor != (markup.MarkerPair{Start: "<", End: ">"}) {
				t.Errorf("Anchor = %+v", cfg.Markers.Anchor)
			}
			if cfg.Markers.Active != markup.DefaultMarkerSet().Active {
				t.Errorf("Active = %+v, want default", cfg.Markers.Active)
			}
			if src, _ := c.SourceOf(KeyAnchor); src != layer.SourceFile {
				t.Errorf("SourceOf(anchor) = %v, want file", src)
			}
		})
	}
}

func TestConfigPrecedence(t *testing.T) {
	files := memFS{"/s.toml": "caret = \"file\"\nnormalizeEol = false\n"}
	t.Setenv("SELMARK_CARET", "env")

	c := mustLoad(t, WithFile("/s.toml"), WithFileSystem(files))
	cfg := mustResolve(t, c)
	if cfg.Markers.Caret != "env" {
		t.Errorf("Caret = %q, want env over file", cfg.Markers.Caret)
	}
	if cfg.NormalizeEol {
		t.Error("NormalizeEol should come from the file")
	}

	if err := c.SetFlags(map[string]any{KeyCaret: "flag"}); err != nil {
		t.Fatalf("SetFlags failed: %v", err)
	}
	if got := mustResolve(t, c).Markers.Caret; got != "flag" {
		t.Errorf("Caret = %q, want flag over env", got)
	}
	if src, _ := c.SourceOf(KeyCaret); src != layer.SourceArgs {
		t.Errorf("SourceOf(caret) = %v, want arguments", src)
	}
}

func TestConfigPairsAreNotMerged(t *testing.T) {
	files := memFS{"/s.json": `{"active": {"start": "<", "end": ">"}}`}
	c := mustLoad(t, WithFile("/s.json"), WithFileSystem(files), WithEnv(nil))

	if err := c.SetFlags(map[string]any{
		KeyActive: map[string]any{"start": "(", "end": ")"},
	}); err != nil {
		t.Fatalf("SetFlags failed: %v", err)
	}
	if got := mustResolve(t, c).Markers.Active; got != (markup.MarkerPair{Start: "(", End: ")"}) {
		t.Errorf("Active = %+v", got)
	}
}

func TestConfigPartialPair(t *testing.T) {
	files := memFS{"/s.toml": "[anchor]\nstart = \"<\"\n"}

	err := New(WithFile("/s.toml"), WithFileSystem(files), WithEnv(nil)).Load(context.Background())
	if !errors.Is(err, markup.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Path != "anchor.end" || verr.Code != ErrCodeRequiredMissing {
		t.Errorf("ValidationError = %+v", verr)
	}
}

func TestConfigPartialPairFromEnv(t *testing.T) {
	t.Setenv("SELMARK_ACTIVE", `{"end": "}"}`)

	err := New().Load(context.Background())
	if !errors.Is(err, markup.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestConfigSetFlagsValidates(t *testing.T) {
	c := mustLoad(t, WithEnv(nil))

	tests := []map[string]any{
		{KeyNormalizeEol: "yes"},
		{KeyCaret: 42},
		{KeyAnchor: "[]"},
		{KeyActive: map[string]any{"start": "{", "end": 1}},
		{KeyActive: map[string]any{"start": "{", "end": "}", "middle": "|"}},
		{"carrot": "^"},
	}
	for _, flags := range tests {
		if err := c.SetFlags(flags); !errors.Is(err, markup.ErrInvalidConfiguration) {
			t.Errorf("SetFlags(%v): expected ErrInvalidConfiguration, got %v", flags, err)
		}
	}

	if got := mustResolve(t, c); got != markup.DefaultConfig() {
		t.Errorf("rejected flags changed the configuration: %+v", got)
	}
}

func TestConfigSection(t *testing.T) {
	files := memFS{"/tools.yaml": "tools:\n  selmark:\n    caret: \"@\"\nother: 1\n"}

	c := mustLoad(t, WithFile("/tools.yaml"), WithFileSystem(files), WithSection("tools.selmark"), WithEnv(nil))
	if got := mustResolve(t, c).Markers.Caret; got != "@" {
		t.Errorf("Caret = %q, want @", got)
	}

	c = mustLoad(t, WithFile("/tools.yaml"), WithFileSystem(files), WithSection("missing"), WithEnv(nil))
	if got := mustResolve(t, c); got != markup.DefaultConfig() {
		t.Errorf("missing section should leave defaults, got %+v", got)
	}

	err := New(WithFile("/tools.yaml"), WithFileSystem(files), WithSection("other"), WithEnv(nil)).Load(context.Background())
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed for a scalar section, got %v", err)
	}
}

func TestConfigFileErrors(t *testing.T) {
	files := memFS{
		"/bad.toml": "caret = \n",
		"/s.ini":    "caret=^",
	}

	err := New(WithFile("/missing.toml"), WithFileSystem(files), WithEnv(nil)).Load(context.Background())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}

	err = New(WithFile("/bad.toml"), WithFileSystem(files), WithEnv(nil)).Load(context.Background())
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected *ParseError, got %v", err)
	}

	err = New(WithFile("/s.ini"), WithFileSystem(files), WithEnv(nil)).Load(context.Background())
	if !errors.Is(err, loader.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestConfigReload(t *testing.T) {
	files := memFS{"/s.toml": "caret = \"a\"\n"}
	c := mustLoad(t, WithFile("/s.toml"), WithFileSystem(files), WithEnv(nil))
	if err := c.SetFlags(map[string]any{KeyNormalizeEol: false}); err != nil {
		t.Fatalf("SetFlags failed: %v", err)
	}

	files["/s.toml"] = "caret = \"b\"\n"
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	cfg := mustResolve(t, c)
	if cfg.Markers.Caret != "b" {
		t.Errorf("Caret = %q, want reloaded value b", cfg.Markers.Caret)
	}
	if cfg.NormalizeEol {
		t.Error("reload dropped the flag layer")
	}
}

func TestDecodeEmptyCaretFallsBack(t *testing.T) {
	opts, err := Decode(map[string]any{KeyCaret: ""})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	cfg, err := markup.Resolve(opts)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Markers.Caret != markup.DefaultCaret {
		t.Errorf("Caret = %q, want default", cfg.Markers.Caret)
	}
}

func TestDecodeDefaultMap(t *testing.T) {
	opts, err := Decode(DefaultMap())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	cfg, err := markup.Resolve(opts)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg != markup.DefaultConfig() {
		t.Errorf("DefaultMap decodes to %+v", cfg)
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	_, err := Decode(map[string]any{KeyCaret: "\xff"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Code != ErrCodeInvalidValue {
		t.Errorf("expected invalid value error, got %v", err)
	}
}

func TestValidationErrorString(t *testing.T) {
	err := &ValidationError{Path: "caret", Message: "expected string, got int", Value: 42, Code: ErrCodeTypeMismatch}
	if got, want := err.Error(), "caret: expected string, got int (value: 42)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := ErrCodeRequiredMissing.String(); got != "required_missing" {
		t.Errorf("String() = %q", got)
	}
}

func TestDecodePartialPairVersusResolve(t *testing.T) {
	_, err := Decode(map[string]any{KeyAnchor: map[string]any{"start": "<"}})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "anchor.end" {
		t.Fatalf("Decode partial pair: expected *ValidationError for anchor.end, got %v", err)
	}

	cfg, err := markup.Resolve(&markup.Options{Anchor: &markup.MarkerPair{Start: "<"}})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Markers.Anchor != (markup.MarkerPair{Start: "<"}) {
		t.Errorf("Anchor = %+v, want the pair to replace the default whole", cfg.Markers.Anchor)
	}
}
