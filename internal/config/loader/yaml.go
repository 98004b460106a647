package loader

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var yamlLine = regexp.MustCompile(`line (\d+)`)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path.
func (l *YAMLLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *YAMLLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := readFile(l.fs, path)
	if err != nil || data == nil {
		return nil, err
	}
	return l.parse(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *YAMLLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return l.parse("<reader>", data)
}

// parse parses YAML data into a map. An empty document yields an empty map.
func (l *YAMLLoader) parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return nil, perr
	}
	if config == nil {
		config = make(map[string]any)
	}
	for key, val := range config {
		v, err := normalizeYAML(val)
		if err != nil {
			return nil, &ParseError{Path: source, Message: fmt.Sprintf("%s: %v", key, err), Err: err}
		}
		config[key] = v
	}
	return config, nil
}

// normalizeYAML converts nested map[any]any values into map[string]any.
func normalizeYAML(val any) (any, error) {
	switch v := val.(type) {
	case map[string]any:
		for key, item := range v {
			n, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			v[key] = n
		}
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			s, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", key)
			}
			n, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			out[s] = n
		}
		return out, nil
	case []any:
		for i, item := range v {
			n, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			v[i] = n
		}
		return v, nil
	default:
		return val, nil
	}
}
