// Package preflight provides readiness checks for the filesystem paths
// stacks touches before any file is moved.
//
// The stack and unstack commands call RunAll and abort on the first failed
// check, so a read-only or missing target directory is reported once
// instead of as a failure per file.
package preflight
