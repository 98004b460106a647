package loader

import (
	"errors"
	"io"

	"github.com/tidwall/gjson"
)

var errNotObject = errors.New("top-level value is not an object")

// JSONLoader loads configuration from JSON files.
type JSONLoader struct {
	fs   FileSystem
	path string
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return NewJSONLoaderWithFS(DefaultFS(), path)
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path.
func (l *JSONLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *JSONLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := readFile(l.fs, path)
	if err != nil || data == nil {
		return nil, err
	}
	return l.parse(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return l.parse("<reader>", data)
}

// parse validates JSON data and converts its top-level object into a map.
func (l *JSONLoader) parse(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	result := gjson.ParseBytes(data)
	config, ok := result.Value().(map[string]any)
	if !ok {
		return nil, &ParseError{Path: source, Message: errNotObject.Error(), Err: errNotObject}
	}
	return config, nil
}
