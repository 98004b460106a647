// Package logging configures the process-wide slog logger: level, text or
// JSON format, and a stderr or rotating file sink.
package logging
