package testsupport

import (
	"path/filepath"
	"strings"
	"testing"
)

// XDGEnv is an isolated freedesktop environment rooted in a temp directory.
type XDGEnv struct {
	Base       string
	Home       string
	Desktop    string
	ConfigHome string
	DataDir    string
	StateHome  string
}

// IsolateXDG points HOME and the XDG variables at a fresh temp tree so the
// desktop provider never sees the host's applications or user dirs. The
// desktop directory ($HOME/Desktop) is created.
func IsolateXDG(t *testing.T) XDGEnv {
	t.Helper()
	base := t.TempDir()
	env := XDGEnv{
		Base:       base,
		Home:       filepath.Join(base, "home"),
		ConfigHome: filepath.Join(base, "home", ".config"),
		DataDir:    filepath.Join(base, "usr", "share"),
		StateHome:  filepath.Join(base, "state"),
	}
	env.Desktop = filepath.Join(env.Home, "Desktop")

	t.Setenv("HOME", env.Home)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_DATA_HOME", filepath.Join(env.Home, ".local", "share"))
	t.Setenv("XDG_DATA_DIRS", env.DataDir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(base, "etc", "xdg"))
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	t.Setenv("XDG_CURRENT_DESKTOP", "")
	t.Setenv("LC_ALL", "C")
	t.Setenv("STACKS_DESKTOP_DIR", "")
	t.Setenv("STACKS_LOG_LEVEL", "")

	MkdirAll(t, env.Desktop)
	return env
}

// InstallApp writes a desktop entry named id with display name and
// registers it in mimeinfo.cache for the given MIME types.
func (e XDGEnv) InstallApp(t *testing.T, id, name string, mimeTypes ...string) {
	t.Helper()
	apps := filepath.Join(e.DataDir, "applications")
	WriteFile(t, filepath.Join(apps, id+".desktop"),
		"[Desktop Entry]\nType=Application\nName="+name+"\nMimeType="+strings.Join(mimeTypes, ";")+";\n")
	if len(mimeTypes) == 0 {
		return
	}
	cache := filepath.Join(apps, "mimeinfo.cache")
	lines := []string{"[MIME Cache]"}
	for _, mimeType := range mimeTypes {
		lines = append(lines, mimeType+"="+id+".desktop;")
	}
	appendLines(t, cache, lines)
}
