// Package config loads, normalizes, and validates stacks configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// STACKS_DESKTOP_DIR. The Config type centralizes every knob the CLI and the
// stacking engine need so the target directory, folder names, and
// classification overrides are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
