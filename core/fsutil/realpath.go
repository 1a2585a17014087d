// Package fsutil holds path helpers that work over an afero filesystem so the
// shell can run against the host or an in-memory tree.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// maxSymlinks matches the Linux limit on links followed in a single lookup.
const maxSymlinks = 40

// ErrTooManyLinks is returned when resolution exceeds maxSymlinks.
var ErrTooManyLinks = errors.New("too many levels of symbolic links")

// Realpath returns the canonical absolute form of name: every symbolic link,
// "." and ".." element is resolved. Relative names are resolved against dir,
// which must be absolute. Each element must exist.
func Realpath(fsys afero.Fs, dir, name string) (string, error) {
	if name == "" {
		name = "."
	}
	if !filepath.IsAbs(name) {
		// filepath.Join would clean "link/.." away before the link is read.
		name = dir + string(filepath.Separator) + name
	}

	resolved := string(filepath.Separator)
	rest := splitPath(name)
	links := 0

	for len(rest) > 0 {
		elem := rest[0]
		rest = rest[1:]

		switch elem {
		case ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, elem)
		fi, err := lstat(fsys, next)
		if err != nil {
			return "", err
		}

		if fi.Mode()&os.ModeSymlink == 0 {
			resolved = next
			continue
		}

		links++
		if links > maxSymlinks {
			return "", &os.PathError{Op: "realpath", Path: name, Err: ErrTooManyLinks}
		}

		target, err := readlink(fsys, next)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(target) {
			resolved = string(filepath.Separator)
		}
		rest = append(splitPath(target), rest...)
	}

	return resolved, nil
}

func splitPath(p string) []string {
	var out []string
	for _, elem := range strings.Split(p, string(filepath.Separator)) {
		if elem != "" {
			out = append(out, elem)
		}
	}
	return out
}

func lstat(fsys afero.Fs, name string) (os.FileInfo, error) {
	if lfs, ok := fsys.(afero.Lstater); ok {
		fi, _, err := lfs.LstatIfPossible(name)
		return fi, err
	}
	return fsys.Stat(name)
}

func readlink(fsys afero.Fs, name string) (string, error) {
	if lr, ok := fsys.(afero.LinkReader); ok {
		return lr.ReadlinkIfPossible(name)
	}
	return "", &os.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}
