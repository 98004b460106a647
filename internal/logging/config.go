package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

const (
	EnvLogLevel      = "SELMARK_LOG_LEVEL"
	EnvLogFormat     = "SELMARK_LOG_FORMAT"
	EnvLogSink       = "SELMARK_LOG_SINK"
	EnvLogFile       = "SELMARK_LOG_FILE"
	EnvLogAddSource  = "SELMARK_LOG_ADD_SOURCE"
	EnvLogMaxSizeMB  = "SELMARK_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = "SELMARK_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays = "SELMARK_LOG_MAX_AGE_DAYS"
	EnvLogCompress   = "SELMARK_LOG_COMPRESS"
)

// Config holds logging settings. Nil fields fall back to the mode defaults.
type Config struct {
	Level     *string `yaml:"level,omitempty"`
	Format    *string `yaml:"format,omitempty"`
	Sink      *string `yaml:"sink,omitempty"`
	File      *string `yaml:"file,omitempty"`
	AddSource *bool   `yaml:"add_source,omitempty"`

	MaxSizeMB  *int  `yaml:"max_size_mb,omitempty"`
	MaxBackups *int  `yaml:"max_backups,omitempty"`
	MaxAgeDays *int  `yaml:"max_age_days,omitempty"`
	Compress   *bool `yaml:"compress,omitempty"`
}

func DefaultConfig(mode Mode) Config {
	// One-shot commands only report errors; watch mode narrates reloads.
	level := "error"
	if mode == ModeWatch {
		level = "info"
	}
	sink := string(SinkStderr)
	format := string(FormatText)
	addSource := false

	maxSizeMB := 10
	maxBackups := 3
	maxAgeDays := 7
	compress := true

	return Config{
		Level:      &level,
		Format:     &format,
		Sink:       &sink,
		AddSource:  &addSource,
		MaxSizeMB:  &maxSizeMB,
		MaxBackups: &maxBackups,
		MaxAgeDays: &maxAgeDays,
		Compress:   &compress,
	}
}

func (c Config) WithEnv() Config {
	return c.withLookup(os.LookupEnv)
}

func (c Config) withLookup(lookup func(string) (string, bool)) Config {
	get := func(env string) string {
		v, _ := lookup(env)
		return strings.TrimSpace(v)
	}
	applyString := func(dst **string, env string) {
		if v := get(env); v != "" {
			*dst = &v
		}
	}
	applyBool := func(dst **bool, env string) {
		raw := get(env)
		if raw == "" {
			return
		}
		v := !isDisabledString(raw)
		*dst = &v
	}
	applyInt := func(dst **int, env string) {
		raw := get(env)
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return
		}
		*dst = &n
	}

	applyString(&c.Level, EnvLogLevel)
	applyString(&c.Format, EnvLogFormat)
	applyString(&c.File, EnvLogFile)
	if get(EnvLogFile) != "" && get(EnvLogSink) == "" {
		sink := string(SinkFile)
		c.Sink = &sink
	}
	applyString(&c.Sink, EnvLogSink)
	applyBool(&c.AddSource, EnvLogAddSource)
	applyInt(&c.MaxSizeMB, EnvLogMaxSizeMB)
	applyInt(&c.MaxBackups, EnvLogMaxBackups)
	applyInt(&c.MaxAgeDays, EnvLogMaxAgeDays)
	applyBool(&c.Compress, EnvLogCompress)
	return c
}

func (c Config) Normalize() (Config, error) {
	normalizeString := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.ToLower(strings.TrimSpace(*s))
		if v == "" {
			return nil
		}
		return &v
	}
	c.Level = normalizeString(c.Level)
	c.Format = normalizeString(c.Format)
	c.Sink = normalizeString(c.Sink)
	if c.File != nil {
		v := strings.TrimSpace(*c.File)
		if v == "" {
			c.File = nil
		} else {
			c.File = &v
		}
	}
	for _, n := range []**int{&c.MaxSizeMB, &c.MaxBackups, &c.MaxAgeDays} {
		if *n != nil && **n < 0 {
			zero := 0
			*n = &zero
		}
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Level != nil {
		switch *c.Level {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("logging.level: invalid %q", *c.Level)
		}
	}
	if c.Format != nil {
		switch Format(*c.Format) {
		case FormatText, FormatJSON:
		default:
			return fmt.Errorf("logging.format: invalid %q", *c.Format)
		}
	}
	if c.Sink != nil {
		switch Sink(*c.Sink) {
		case SinkStderr, SinkFile, SinkNone:
		default:
			return fmt.Errorf("logging.sink: invalid %q", *c.Sink)
		}
	}
	return nil
}

func isDisabledString(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no", "off":
		return true
	default:
		return false
	}
}
