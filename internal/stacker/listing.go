package stacker

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

type entry struct {
	name    string
	isDir   bool
	regular bool
}

// listRoot returns the immediate entries of dir, dropping ignored names.
// Symlinks are followed to decide whether an entry is a directory or a
// regular file; dangling links are neither.
func (s *Stacker) listRoot(dir string) ([]entry, []string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var (
		out     []entry
		ignored []string
	)
	for _, d := range dirents {
		name := d.Name()
		if s.ignored(name) {
			ignored = append(ignored, name)
			continue
		}
		e := entry{name: name}
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
			e.isDir = info.IsDir()
			e.regular = info.Mode().IsRegular()
		}
		out = append(out, e)
	}
	return out, ignored, nil
}

func (s *Stacker) ignored(name string) bool {
	for _, pattern := range s.ignore {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
