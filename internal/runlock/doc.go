// Package runlock enforces that only one stacks run shuffles a given
// directory at a time.
//
// Locks are advisory flock(2) locks on a file in the state directory. The
// lock file name is derived from the absolute target path, so runs against
// different directories do not block each other and nothing is ever written
// into the directory being organized.
package runlock
