package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dshills/selmark/internal/config/layer"
	"github.com/dshills/selmark/internal/config/loader"
	"github.com/dshills/selmark/internal/engine/markup"
)

// Config provides layered access to the selmark options.
type Config struct {
	mu sync.RWMutex

	// Layer manager for merged configuration
	layers *layer.Manager

	// File system used for the config file
	fs loader.FileSystem

	// Config file path; empty means no file layer
	path string

	// Dot-separated table inside the file that holds the options
	section string

	// Environment loader; nil disables the environment layer
	env *loader.EnvLoader
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the configuration file. Its format is chosen by extension.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system used to read the configuration file.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		if fsys != nil {
			c.fs = fsys
		}
	}
}

// WithSection reads the options from a nested table of the file, e.g.
// "tools.selmark".
func WithSection(section string) Option {
	return func(c *Config) {
		c.section = section
	}
}

// WithEnv sets the environment loader. A nil loader disables the
// environment layer.
func WithEnv(env *loader.EnvLoader) Option {
	return func(c *Config) {
		c.env = env
	}
}

// New creates a new Config instance with the given options.
func New(opts ...Option) *Config {
	c := &Config{
		layers: layer.NewManager(),
		fs:     loader.DefaultFS(),
		env:    loader.NewEnvLoader(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the configuration file path, if any.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Load loads configuration from all sources. Calling it again reloads the
// file and environment layers; the flag layer is kept.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.layers.AddLayer(layer.NewLayerWithData(
		layer.StandardLayerNames[layer.SourceBuiltin], layer.SourceBuiltin, layer.DefaultPriority(layer.SourceBuiltin), DefaultMap()))

	if err := c.loadFile(); err != nil {
		return err
	}
	return c.loadEnvironment()
}

func (c *Config) loadFile() error {
	name := layer.StandardLayerNames[layer.SourceFile]
	if c.path == "" {
		c.layers.RemoveLayer(name)
		return nil
	}

	if _, err := c.fs.Stat(c.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, c.path)
		}
		return fmt.Errorf("reading config file %s: %w", c.path, err)
	}

	l, err := loader.ForPath(c.fs, c.path)
	if err != nil {
		return err
	}
	data, err := l.Load()
	if err != nil {
		return err
	}

	if c.section != "" {
		sub, ok := layer.GetByPath(data, c.section)
		if !ok {
			data = nil
		} else if data, ok = sub.(map[string]any); !ok {
			return &ValidationError{
				Path:    c.section,
				Message: "section is not a table",
				Value:   sub,
				Code:    ErrCodeTypeMismatch,
			}
		}
	}

	if _, err := Decode(data); err != nil {
		return fmt.Errorf("%s: %w", c.path, err)
	}

	fileLayer := layer.NewLayerWithData(name, layer.SourceFile, layer.DefaultPriority(layer.SourceFile), data)
	fileLayer.Path = c.path
	c.layers.AddLayer(fileLayer)
	return nil
}

func (c *Config) loadEnvironment() error {
	name := layer.StandardLayerNames[layer.SourceEnv]
	if c.env == nil {
		c.layers.RemoveLayer(name)
		return nil
	}

	data, err := c.env.Load()
	if err != nil {
		return err
	}
	if _, err := Decode(data); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	c.layers.AddLayer(layer.NewLayerWithData(name, layer.SourceEnv, layer.DefaultPriority(layer.SourceEnv), data))
	return nil
}

// SetFlags replaces the command-line layer. Values are validated
// immediately.
func (c *Config) SetFlags(data map[string]any) error {
	if _, err := Decode(data); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers.AddLayer(layer.NewLayerWithData(
		layer.StandardLayerNames[layer.SourceArgs], layer.SourceArgs, layer.DefaultPriority(layer.SourceArgs), data))
	return nil
}

// Options returns the merged options of every layer.
func (c *Config) Options() (*markup.Options, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Decode(c.layers.Merge())
}

// Resolve returns the merged, validated marker configuration.
func (c *Config) Resolve() (markup.Config, error) {
	opts, err := c.Options()
	if err != nil {
		return markup.Config{}, err
	}
	return markup.Resolve(opts)
}

// SourceOf reports which layer supplies the effective value of key.
func (c *Config) SourceOf(key string) (layer.Source, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, l, ok := c.layers.Get(key)
	if !ok {
		return 0, false
	}
	return l.Source, true
}
