package mover

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SplitExt splits name into base and extension. Leading dots belong to the
// base, so ".bashrc" has no extension.
func SplitExt(name string) (base, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || strings.TrimLeft(name[:i], ".") == "" {
		return name, ""
	}
	return name[:i], name[i:]
}

// CountPrefix splits a "base(N).ext" name into the base and the text
// between the last parentheses. Names whose base does not end in ")" or has
// no "(" return the whole base and "0".
func CountPrefix(name string) (prefix, counter string) {
	base, _ := SplitExt(name)
	if !strings.HasSuffix(base, ")") {
		return base, "0"
	}
	left := strings.LastIndexByte(base, '(')
	if left < 0 {
		return base, "0"
	}
	return base[:left], base[left+1 : len(base)-1]
}

// HasCount reports whether name carries a numeric "(N)" counter.
func HasCount(name string) bool {
	_, counter := CountPrefix(name)
	if counter == "" {
		return false
	}
	for _, r := range counter {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NextName returns the first "base(N)ext" sibling of path, counting from 1,
// that does not exist on disk. A counter already present in the name is
// stripped first, so "a(1).txt" yields "a(2).txt" when "a(1).txt" exists.
func NextName(path string) string {
	return nextName(path, exists)
}

func nextName(path string, taken func(string) bool) string {
	dir, name := filepath.Split(path)
	base, ext := SplitExt(name)
	if HasCount(name) {
		base, _ = CountPrefix(name)
	}
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, base+"("+strconv.Itoa(i)+")"+ext)
		if !taken(candidate) {
			return candidate
		}
	}
}

// exists reports whether anything, including a dangling symlink, occupies path.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// Namer predicts Move destinations without touching the filesystem. Names
// handed out are reserved so later predictions avoid them.
type Namer struct {
	reserved map[string]struct{}
}

// NewNamer returns an empty Namer.
func NewNamer() *Namer {
	return &Namer{reserved: map[string]struct{}{}}
}

func (n *Namer) taken(path string) bool {
	if _, ok := n.reserved[path]; ok {
		return true
	}
	return exists(path)
}

// Target returns where Move would place a file headed for dst and reserves
// that name.
func (n *Namer) Target(dst string) string {
	target := dst
	if n.taken(dst) {
		target = nextName(dst, n.taken)
	}
	n.reserved[target] = struct{}{}
	return target
}
