package fsutil

// Windows has no search bit on directories.
func accessSearch(dir string) error {
	return nil
}
