package loader

import (
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/selmark/internal/config/layer"
)

// ValueKind selects how an environment value is converted.
type ValueKind uint8

const (
	// KindString keeps the raw value.
	KindString ValueKind = iota
	// KindBool accepts true/false, yes/no, on/off and 1/0.
	KindBool
	// KindObject accepts a JSON object.
	KindObject
)

// EnvVar maps one environment variable onto a configuration path.
type EnvVar struct {
	Path string
	Kind ValueKind
}

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	mapping map[string]EnvVar // Env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader with the default SELMARK_* mappings.
func NewEnvLoader() *EnvLoader {
	return NewEnvLoaderWithMapping(DefaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(mapping map[string]EnvVar) *EnvLoader {
	return &EnvLoader{
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

// DefaultEnvMapping returns the default environment variable mappings.
func DefaultEnvMapping() map[string]EnvVar {
	return map[string]EnvVar{
		"SELMARK_NORMALIZE_EOL": {Path: "normalizeEol", Kind: KindBool},
		"SELMARK_CARET":         {Path: "caret", Kind: KindString},
		"SELMARK_ANCHOR":        {Path: "anchor", Kind: KindObject},
		"SELMARK_ACTIVE":        {Path: "active", Kind: KindObject},
	}
}

// Load reads the mapped environment variables into a configuration map.
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, v := range l.mapping {
		if val, ok := l.lookup(env); ok {
			layer.SetByPath(config, v.Path, parseValue(val, v.Kind))
		}
	}
	return config, nil
}

// parseValue converts s according to kind. Values that do not convert are
// kept as strings so validation can report them.
func parseValue(s string, kind ValueKind) any {
	switch kind {
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "on", "1":
			return true
		case "false", "no", "off", "0":
			return false
		}
	case KindObject:
		if gjson.Valid(s) {
			if obj, ok := gjson.Parse(s).Value().(map[string]any); ok {
				return obj
			}
		}
	}
	return s
}
