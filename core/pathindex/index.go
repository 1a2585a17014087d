// Package pathindex maps executable names to the file that runs them, built
// from a search path like $PATH.
package pathindex

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/josephlewis42/tinysh/core/fsutil"
	"github.com/spf13/afero"
)

// SkipHandler is called for each search path directory that couldn't be read.
type SkipHandler func(dir string, err error)

// Option configures an Index build.
type Option func(*builder)

type builder struct {
	onSkip  SkipHandler
	workdir string
}

// WithSkipHandler sets a callback for directories that are skipped.
func WithSkipHandler(handler SkipHandler) Option {
	return func(b *builder) {
		b.onSkip = handler
	}
}

// WithWorkdir resolves relative search path directories against dir instead
// of the process working directory.
func WithWorkdir(dir string) Option {
	return func(b *builder) {
		b.workdir = dir
	}
}

// Index holds the executables found on a search path. The first directory in
// the path that contains a name wins, like a shell's command hash table.
type Index struct {
	entries map[string]string
}

// Build scans every directory in pathVar in order.
//
// pathVar is split on the platform's list separator, an empty element means
// the current directory. Unreadable directories are reported to the
// SkipHandler and otherwise ignored.
func Build(fsys afero.Fs, pathVar string, opts ...Option) *Index {
	b := &builder{onSkip: func(string, error) {}}
	for _, opt := range opts {
		opt(b)
	}

	idx := &Index{entries: make(map[string]string)}
	for _, dir := range filepath.SplitList(pathVar) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		if b.workdir != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(b.workdir, dir)
		}

		if err := idx.addDir(fsys, dir); err != nil {
			b.onSkip(dir, err)
		}
	}
	return idx
}

func (idx *Index) addDir(fsys afero.Fs, dir string) error {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	for _, fi := range infos {
		name := fi.Name()
		if _, ok := idx.entries[name]; ok {
			continue
		}

		fullPath := filepath.Join(dir, name)

		// Directory listings don't follow links, most of /usr/bin is links.
		if fi.Mode()&os.ModeSymlink != 0 {
			if fi, err = fsys.Stat(fullPath); err != nil {
				continue
			}
		}

		if fsutil.IsExecutable(fi) {
			idx.entries[name] = fullPath
		}
	}
	return nil
}

// Lookup returns the path for the executable with the given name.
func (idx *Index) Lookup(name string) (string, bool) {
	path, ok := idx.entries[name]
	return path, ok
}

// Len returns the number of indexed executables.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Names returns the indexed names in sorted order.
func (idx *Index) Names() []string {
	out := make([]string, 0, len(idx.entries))
	for name := range idx.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
