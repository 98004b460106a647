// Package config provides the configuration system for selmark.
//
// The config package loads, merges, and validates the marker options:
// line-ending normalization, the caret symbol, and the anchor and active
// marker pairs.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← SELMARK_CARET, SELMARK_NORMALIZE_EOL, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← --config selmark.toml / .yaml / .json
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Layers merge shallowly. A marker pair supplied by a higher layer replaces
// the lower pair as a whole; a pair naming only start or end is rejected
// instead of being completed from the defaults.
//
// # Sub-packages
//
//   - layer: Layer stacking and shallow merging
//   - loader: Configuration file loading (TOML, YAML, JSON, environment variables)
//   - watcher: File watching for live re-rendering
//
// # Usage
//
//	cfg := config.New(config.WithFile("selmark.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	opts, err := cfg.Options()
//
// # File Format
//
//	normalizeEol = true
//	caret = "^"
//
//	[anchor]
//	start = "["
//	end = "]"
//
//	[active]
//	start = "{"
//	end = "}"
package config
