package fsutil

import (
	"io/fs"
	"os"
	"syscall"

	"github.com/spf13/afero"
)

// IsExecutable reports whether the file is a regular file with at least one
// execute bit set.
func IsExecutable(fi os.FileInfo) bool {
	m := fi.Mode()
	return m.IsRegular() && m&0111 != 0
}

// FindExecutable checks that file names a runnable program, following
// symbolic links.
func FindExecutable(fsys afero.Fs, file string) error {
	fi, err := fsys.Stat(file)
	if err != nil {
		return err
	}
	if IsExecutable(fi) {
		return nil
	}
	return &os.PathError{Op: "exec", Path: file, Err: fs.ErrPermission}
}

// Searchable checks that dir is a directory the current user may enter.
func Searchable(fsys afero.Fs, dir string) error {
	fi, err := fsys.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return &os.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}

	if _, ok := fsys.(*afero.OsFs); ok {
		return accessSearch(dir)
	}

	// Virtual filesystems have no owners, any search bit will do.
	if fi.Mode()&0111 == 0 {
		return &os.PathError{Op: "chdir", Path: dir, Err: fs.ErrPermission}
	}
	return nil
}
