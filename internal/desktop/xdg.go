package desktop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// XDG resolves desktop lookups from freedesktop.org conventions.
type XDG struct {
	Home           string
	ConfigHome     string
	ConfigDirs     []string
	DataHome       string
	DataDirs       []string
	CurrentDesktop []string // lowercased XDG_CURRENT_DESKTOP entries
	Locale         string   // e.g. de_DE.UTF-8; empty means untranslated names

	once     sync.Once
	userDirs map[string]string
	apps     *appIndex
	mimeapps *mimeAssociations
}

// NewXDG builds an XDG provider from the process environment.
func NewXDG() (*XDG, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	x := &XDG{
		Home:       home,
		ConfigHome: envPath("XDG_CONFIG_HOME", filepath.Join(home, ".config")),
		ConfigDirs: envPathList("XDG_CONFIG_DIRS", []string{"/etc/xdg"}),
		DataHome:   envPath("XDG_DATA_HOME", filepath.Join(home, ".local", "share")),
		DataDirs:   envPathList("XDG_DATA_DIRS", []string{"/usr/local/share", "/usr/share"}),
		Locale:     messagesLocale(),
	}
	for _, name := range strings.Split(os.Getenv("XDG_CURRENT_DESKTOP"), ":") {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			x.CurrentDesktop = append(x.CurrentDesktop, name)
		}
	}
	return x, nil
}

func (x *XDG) load() {
	x.once.Do(func() {
		x.userDirs = readUserDirs(filepath.Join(x.ConfigHome, "user-dirs.dirs"), x.Home)
		x.apps = scanApplications(x.applicationDirs(), x.Locale)
		x.mimeapps = loadMimeAssociations(x.mimeappsFiles(), x.mimeinfoCaches())
	})
}

// DesktopDir returns XDG_DESKTOP_DIR from user-dirs.dirs, or ~/Desktop.
func (x *XDG) DesktopDir() (string, error) {
	if x.Home == "" {
		return "", errors.New("desktop directory: home directory unknown")
	}
	x.load()
	if dir, ok := x.userDir("XDG_DESKTOP_DIR"); ok {
		return dir, nil
	}
	return filepath.Join(x.Home, "Desktop"), nil
}

// SpecialFolders returns the leaf names of the Pictures, Videos and Music
// user directories, falling back to the English names.
func (x *XDG) SpecialFolders() SpecialFolders {
	x.load()
	var folders SpecialFolders
	if dir, ok := x.userDir("XDG_PICTURES_DIR"); ok {
		folders.Pictures = filepath.Base(dir)
	}
	if dir, ok := x.userDir("XDG_VIDEOS_DIR"); ok {
		folders.Videos = filepath.Base(dir)
	}
	if dir, ok := x.userDir("XDG_MUSIC_DIR"); ok {
		folders.Music = filepath.Base(dir)
	}
	return folders.withDefaults()
}

// InstalledApps returns display names of every visible desktop entry.
func (x *XDG) InstalledApps() []string {
	x.load()
	out := make([]string, len(x.apps.names))
	copy(out, x.apps.names)
	return out
}

// DefaultApp resolves mimeType through mimeapps.list and mimeinfo.cache.
func (x *XDG) DefaultApp(mimeType string) (string, bool) {
	x.load()
	for _, id := range x.mimeapps.candidates(mimeType) {
		if name, ok := x.apps.byID[id]; ok {
			return name, true
		}
	}
	return "", false
}

// userDir reports a configured user directory. A directory equal to $HOME
// means the entry is disabled.
func (x *XDG) userDir(key string) (string, bool) {
	dir, ok := x.userDirs[key]
	if !ok || dir == "" || filepath.Clean(dir) == filepath.Clean(x.Home) {
		return "", false
	}
	return dir, true
}

func (x *XDG) applicationDirs() []string {
	dirs := make([]string, 0, len(x.DataDirs)+1)
	dirs = append(dirs, filepath.Join(x.DataHome, "applications"))
	for _, dir := range x.DataDirs {
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}
	return dirs
}

// mimeappsFiles lists mimeapps.list candidates in lookup order, each
// directory's desktop-specific variants before the generic file.
func (x *XDG) mimeappsFiles() []string {
	dirs := make([]string, 0, len(x.ConfigDirs)+len(x.DataDirs)+2)
	dirs = append(dirs, x.ConfigHome)
	dirs = append(dirs, x.ConfigDirs...)
	dirs = append(dirs, x.applicationDirs()...)

	files := make([]string, 0, len(dirs)*(len(x.CurrentDesktop)+1))
	for _, dir := range dirs {
		for _, name := range x.CurrentDesktop {
			files = append(files, filepath.Join(dir, name+"-mimeapps.list"))
		}
		files = append(files, filepath.Join(dir, "mimeapps.list"))
	}
	return files
}

func (x *XDG) mimeinfoCaches() []string {
	dirs := x.applicationDirs()
	files := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		files = append(files, filepath.Join(dir, "mimeinfo.cache"))
	}
	return files
}

func envPath(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" || !filepath.IsAbs(value) {
		return fallback
	}
	return value
}

func envPathList(key string, fallback []string) []string {
	var dirs []string
	for _, dir := range filepath.SplitList(os.Getenv(key)) {
		dir = strings.TrimSpace(dir)
		if dir != "" && filepath.IsAbs(dir) {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return fallback
	}
	return dirs
}

func messagesLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}
