package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func pair(t *testing.T, config map[string]any, key string) map[string]any {
	t.Helper()
	m, ok := config[key].(map[string]any)
	if !ok {
		t.Fatalf("%s = %v (%T), want a map", key, config[key], config[key])
	}
	return m
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/selmark.toml", `
normalizeEol = false
caret = "|"

[anchor]
start = "<<"
end = ">>"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/selmark.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config["normalizeEol"] != false {
		t.Errorf("normalizeEol = %v, want false", config["normalizeEol"])
	}
	if config["caret"] != "|" {
		t.Errorf("caret = %v, want |", config["caret"])
	}
	anchor := pair(t, config, "anchor")
	if anchor["start"] != "<<" || anchor["end"] != ">>" {
		t.Errorf("anchor = %v", anchor)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "caret = \"^\"\nanchor = [\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("expected a line number for a TOML syntax error")
	}
	if perr.Unwrap() == nil {
		t.Error("expected the decoder error to be wrapped")
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/selmark.yaml", `
caret: "🍕"
active:
  start: "🚒"
  end: "🚒"
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/selmark.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config["caret"] != "🍕" {
		t.Errorf("caret = %v", config["caret"])
	}
	active := pair(t, config, "active")
	if active["start"] != "🚒" || active["end"] != "🚒" {
		t.Errorf("active = %v", active)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	config, err := NewYAMLLoader("").LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("config = %v, want empty map", config)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("caret: ^\n  anchor: [\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Path != "<reader>" {
		t.Errorf("Path = %q", perr.Path)
	}
}

func TestJSONLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/selmark.json", `{"normalizeEol": true, "anchor": {"start": "(", "end": ")"}}`)

	config, err := NewJSONLoaderWithFS(memfs, "/selmark.json").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config["normalizeEol"] != true {
		t.Errorf("normalizeEol = %v", config["normalizeEol"])
	}
	anchor := pair(t, config, "anchor")
	if anchor["start"] != "(" || anchor["end"] != ")" {
		t.Errorf("anchor = %v", anchor)
	}
}

func TestJSONLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid", `{"caret": `},
		{"array", `["^"]`},
		{"scalar", `"^"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJSONLoader("").LoadFromReader(strings.NewReader(tt.data))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("expected *ParseError, got %v", err)
			}
		})
	}
}

func TestLoaders_MissingFile(t *testing.T) {
	memfs := NewMemFS()
	for _, path := range []string{"/none.toml", "/none.yaml", "/none.json"} {
		l, err := ForPath(memfs, path)
		if err != nil {
			t.Fatalf("ForPath(%s) failed: %v", path, err)
		}
		config, err := l.Load()
		if err != nil || config != nil {
			t.Errorf("%s: Load = %v, %v; want nil, nil", path, config, err)
		}
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.toml", "*loader.TOMLLoader"},
		{"a.YAML", "*loader.YAMLLoader"},
		{"a.yml", "*loader.YAMLLoader"},
		{"a.json", "*loader.JSONLoader"},
	}
	for _, tt := range tests {
		l, err := ForPath(nil, tt.path)
		if err != nil {
			t.Fatalf("ForPath(%s) failed: %v", tt.path, err)
		}
		switch l.(type) {
		case *TOMLLoader:
			if tt.want != "*loader.TOMLLoader" {
				t.Errorf("ForPath(%s) = TOML loader", tt.path)
			}
		case *YAMLLoader:
			if tt.want != "*loader.YAMLLoader" {
				t.Errorf("ForPath(%s) = YAML loader", tt.path)
			}
		case *JSONLoader:
			if tt.want != "*loader.JSONLoader" {
				t.Errorf("ForPath(%s) = JSON loader", tt.path)
			}
		}
	}

	if _, err := ForPath(nil, "a.ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 2, Column: 3, Message: "bad"}, "parse error in a.toml at line 2, column 3: bad"},
		{&ParseError{Path: "a.yaml", Line: 4, Message: "bad"}, "parse error in a.yaml at line 4: bad"},
		{&ParseError{Path: "a.json", Message: "bad"}, "parse error in a.json: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
