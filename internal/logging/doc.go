// Package logging builds slog loggers with a compact console handler for
// interactive use and a JSON handler for captured output.
package logging
