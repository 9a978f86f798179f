// Package stacker implements the stack, unstack, and plan operations over a
// single directory.
//
// Stack sorts the regular files directly inside the root into category
// folders chosen by the classifier, then removes category folders that end
// up empty. Unstack moves everything out of the eligible category folders
// back into the root and removes the folders it emptied. Plan predicts what
// Stack would do without touching the filesystem.
//
// Failures moving an individual file are recorded in the Report and the run
// continues with the next file. The joined failures are returned once the
// run has finished its cleanup.
package stacker
