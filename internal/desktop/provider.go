package desktop

import (
	"sort"
	"strings"
)

// SpecialFolders holds the leaf names of the user's media directories.
type SpecialFolders struct {
	Pictures string
	Videos   string
	Music    string
}

// DefaultSpecialFolders are used when the desktop environment does not name
// the media directories.
var DefaultSpecialFolders = SpecialFolders{
	Pictures: "Pictures",
	Videos:   "Videos",
	Music:    "Music",
}

func (s SpecialFolders) withDefaults() SpecialFolders {
	if strings.TrimSpace(s.Pictures) == "" {
		s.Pictures = DefaultSpecialFolders.Pictures
	}
	if strings.TrimSpace(s.Videos) == "" {
		s.Videos = DefaultSpecialFolders.Videos
	}
	if strings.TrimSpace(s.Music) == "" {
		s.Music = DefaultSpecialFolders.Music
	}
	return s
}

// Provider exposes the desktop environment lookups stacks depends on.
type Provider interface {
	// DesktopDir returns the absolute path of the user's desktop directory.
	DesktopDir() (string, error)
	// SpecialFolders returns localized media folder names. Fields are never empty.
	SpecialFolders() SpecialFolders
	// InstalledApps returns the display names of installed applications.
	InstalledApps() []string
	// DefaultApp returns the display name of the default application for
	// mimeType, if one is registered and installed.
	DefaultApp(mimeType string) (string, bool)
}

// Static is a Provider with fixed answers.
type Static struct {
	Desktop  string
	Folders  SpecialFolders
	Apps     []string
	Defaults map[string]string // MIME type -> display name
}

func (s Static) DesktopDir() (string, error) { return s.Desktop, nil }

func (s Static) SpecialFolders() SpecialFolders { return s.Folders.withDefaults() }

func (s Static) InstalledApps() []string {
	seen := make(map[string]struct{}, len(s.Apps)+len(s.Defaults))
	out := make([]string, 0, len(s.Apps)+len(s.Defaults))
	add := func(name string) {
		if _, ok := seen[name]; ok || name == "" {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, name := range s.Apps {
		add(name)
	}
	// A default application is installed by definition.
	defaults := make([]string, 0, len(s.Defaults))
	for _, name := range s.Defaults {
		defaults = append(defaults, name)
	}
	sort.Strings(defaults)
	for _, name := range defaults {
		add(name)
	}
	return out
}

func (s Static) DefaultApp(mimeType string) (string, bool) {
	name, ok := s.Defaults[strings.ToLower(mimeType)]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Overrides replaces individual provider answers. Empty fields keep the
// wrapped provider's value.
type Overrides struct {
	DesktopDir string
	Folders    SpecialFolders
}

type overridden struct {
	Provider
	o Overrides
}

// WithOverrides wraps p so non-empty override fields take precedence.
func WithOverrides(p Provider, o Overrides) Provider {
	if o == (Overrides{}) {
		return p
	}
	return overridden{Provider: p, o: o}
}

func (p overridden) DesktopDir() (string, error) {
	if p.o.DesktopDir != "" {
		return p.o.DesktopDir, nil
	}
	return p.Provider.DesktopDir()
}

func (p overridden) SpecialFolders() SpecialFolders {
	folders := p.Provider.SpecialFolders()
	if p.o.Folders.Pictures != "" {
		folders.Pictures = p.o.Folders.Pictures
	}
	if p.o.Folders.Videos != "" {
		folders.Videos = p.o.Folders.Videos
	}
	if p.o.Folders.Music != "" {
		folders.Music = p.o.Folders.Music
	}
	return folders
}
