//go:build !linux

package mover

import (
	"errors"
	"syscall"
)

func renameNoReplace(oldpath, newpath string) error {
	return checkedRename(oldpath, newpath)
}

var errCrossDevice error = syscall.EXDEV

func isCrossDevice(err error) bool {
	return err != nil && errors.Is(err, syscall.EXDEV)
}
