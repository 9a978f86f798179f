package folders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"stacks/internal/classify"
	"stacks/internal/desktop"
)

// ErrNotEmpty is returned by RemoveIfEmpty when the folder still has entries.
var ErrNotEmpty = errors.New("folder not empty")

// Manager operates on category folders directly under Root.
type Manager struct {
	Root       string
	classifier *classify.Classifier
	provider   desktop.Provider
}

// New returns a Manager for root.
func New(root string, classifier *classify.Classifier, provider desktop.Provider) *Manager {
	return &Manager{Root: root, classifier: classifier, provider: provider}
}

// Path returns the absolute path of the category folder name.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.Root, name)
}

// Create ensures a directory exists for each name. Existing directories are
// left untouched. It returns the names that exist as directories afterwards
// and the joined per-name failures.
func (m *Manager) Create(names []string) ([]string, []string, error) {
	var (
		ready   []string
		created []string
		errs    []error
	)
	for _, name := range names {
		path := m.Path(name)
		err := os.Mkdir(path, 0o755)
		switch {
		case err == nil:
			created = append(created, name)
			ready = append(ready, name)
		case errors.Is(err, fs.ErrExist):
			info, statErr := os.Stat(path)
			if statErr == nil && info.IsDir() {
				ready = append(ready, name)
				continue
			}
			errs = append(errs, fmt.Errorf("create folder %q: %w", name, &fs.PathError{Op: "mkdir", Path: path, Err: errNotDirectory}))
		default:
			errs = append(errs, fmt.Errorf("create folder %q: %w", name, err))
		}
	}
	return ready, created, errors.Join(errs...)
}

var errNotDirectory = errors.New("exists and is not a directory")

// ToUnstack returns the category folders eligible for unstacking that exist
// as directories: the fixed categories first (Others, Music, Pictures,
// Videos), then installed application names in sorted order.
func (m *Manager) ToUnstack() []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		if isDir(m.Path(name)) {
			out = append(out, name)
		}
	}

	for _, name := range m.classifier.FixedCategories() {
		add(name)
	}
	var apps []string
	for _, app := range m.provider.InstalledApps() {
		if name, ok := classify.AppCategory(app); ok {
			apps = append(apps, name)
		}
	}
	sort.Strings(apps)
	for _, name := range apps {
		add(name)
	}
	return out
}

// Candidates returns every folder name ToUnstack would consider, whether or
// not it exists.
func (m *Manager) Candidates() []string {
	out := append([]string{}, m.classifier.FixedCategories()...)
	var apps []string
	for _, app := range m.provider.InstalledApps() {
		if name, ok := classify.AppCategory(app); ok {
			apps = append(apps, name)
		}
	}
	sort.Strings(apps)
	return dedupe(append(out, apps...))
}

// RemoveIfEmpty removes the named folder if it has no entries. Parent
// directories are never removed.
func (m *Manager) RemoveIfEmpty(name string) error {
	path := m.Path(name)
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read folder %q: %w", name, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrNotEmpty, name)
	}
	if err := os.Remove(path); err != nil {
		// An entry may have appeared after the check.
		if entries, readErr := os.ReadDir(path); readErr == nil && len(entries) > 0 {
			return fmt.Errorf("%w: %s", ErrNotEmpty, name)
		}
		return fmt.Errorf("remove folder %q: %w", name, err)
	}
	return nil
}

// Exists reports whether name is a directory under Root.
func (m *Manager) Exists(name string) bool {
	return isDir(m.Path(name))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
