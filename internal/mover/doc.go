// Package mover relocates files without ever replacing an existing entry.
//
// When the destination name is taken, the file is renamed using the
// "name(N).ext" convention with the smallest free counter, after stripping
// any counter the name already carries.
package mover
