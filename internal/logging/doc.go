// Package logging builds the slog loggers used across artpack.
//
// It exposes typed attribute constructors, a no-op logger for tests, and
// construction helpers that honour the configured format and level. The
// console format renders compact human-readable lines; JSON is available
// for machine consumption, and "auto" picks between them based on whether
// stdout is a terminal.
package logging
