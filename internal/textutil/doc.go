// Package textutil turns arbitrary display strings into names that are safe
// to use as a single path segment.
package textutil
