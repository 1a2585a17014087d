//go:build !windows
// +build !windows

package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

func accessSearch(dir string) error {
	if err := unix.Access(dir, unix.X_OK); err != nil {
		return &os.PathError{Op: "chdir", Path: dir, Err: err}
	}
	return nil
}
