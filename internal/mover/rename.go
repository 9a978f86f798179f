package mover

import (
	"io/fs"
	"os"
)

// checkedRename refuses to rename over an existing entry. The check and the
// rename are not atomic.
func checkedRename(oldpath, newpath string) error {
	if exists(newpath) {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrExist}
	}
	return os.Rename(oldpath, newpath)
}
