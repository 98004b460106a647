// Package layer provides configuration layer management for selmark.
//
// The layer package stacks option sources by priority. Higher priority
// layers replace the top-level keys of lower ones; nested maps such as a
// marker pair are never merged key by key.
package layer

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer (e.g., "defaults", "file", "env").
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path (if loaded from file).
	Path string

	// Data holds the option values as a nested map.
	Data map[string]any
}

// NewLayerWithData creates a new layer with initial data.
func NewLayerWithData(name string, source Source, priority int, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: priority,
		Data:     data,
	}
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents built-in default options.
	SourceBuiltin Source = iota
	// SourceFile represents a configuration file.
	SourceFile
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceArgs represents command-line flags.
	SourceArgs
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}

// cloneMap creates a deep copy of a map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

// cloneValue creates a deep copy of a value.
func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
