// Package logging assembles the structured slog loggers used by stacks.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so every line of a run carries the
// same run_id. A no-op logger is provided for tests and for wiring code that
// runs before configuration is available.
package logging
