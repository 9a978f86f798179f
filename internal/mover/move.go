package mover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"stacks/internal/fileutil"
)

// maxRaceRetries bounds how often Move picks a new name after losing a race
// for a destination that appeared between the check and the rename.
const maxRaceRetries = 16

// Move renames src to dst. If dst is taken, the file goes to NextName(dst)
// instead. The final path is returned. Regular files whose destination is on
// another filesystem are copied with verification and then removed. Other
// errors from the underlying rename (permissions, missing source) are
// returned as is.
func Move(src, dst string) (string, error) {
	target := dst
	if exists(dst) {
		target = NextName(dst)
	}
	for attempt := 0; ; attempt++ {
		err := renameNoReplace(src, target)
		if isCrossDevice(err) {
			err = copyAndRemove(src, target)
		}
		if err == nil {
			return target, nil
		}
		if !errors.Is(err, fs.ErrExist) || attempt >= maxRaceRetries {
			return "", err
		}
		target = NextName(dst)
	}
}

// copyAndRemove moves a regular file across filesystems. Directories are
// not copied; the cross-device error is returned for them.
func copyAndRemove(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: errCrossDevice}
	}
	if err := fileutil.CopyFileExclusive(src, dst); err != nil {
		return &os.LinkError{Op: "copy", Old: src, New: dst, Err: err}
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove %s after copy: %w", src, err)
	}
	return nil
}
