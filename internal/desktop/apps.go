package desktop

import (
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const desktopEntryGroup = "Desktop Entry"

type appIndex struct {
	byID  map[string]string // desktop file ID -> display name
	names []string          // distinct display names in discovery order
}

// scanApplications indexes .desktop files below dirs. Earlier directories
// take precedence for a given desktop file ID, including when the earlier
// entry is Hidden (which removes the application).
func scanApplications(dirs []string, locale string) *appIndex {
	idx := &appIndex{byID: map[string]string{}}
	claimed := map[string]struct{}{}
	seenNames := map[string]struct{}{}
	keys := localeKeys(locale)

	for _, root := range dirs {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".desktop") {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			id := strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
			if _, ok := claimed[id]; ok {
				return nil
			}
			kf, err := readKeyFile(path)
			if err != nil {
				return nil
			}
			claimed[id] = struct{}{}

			name, ok := applicationName(kf[desktopEntryGroup], id, keys)
			if !ok {
				return nil
			}
			idx.byID[id] = name
			if _, dup := seenNames[name]; !dup {
				seenNames[name] = struct{}{}
				idx.names = append(idx.names, name)
			}
			return nil
		})
	}
	return idx
}

// applicationName returns the display name of a desktop entry, or false if
// the entry is not a visible application.
func applicationName(entry map[string]string, id string, keys []string) (string, bool) {
	if entry == nil {
		return "", false
	}
	if t := entry["Type"]; t != "" && t != "Application" {
		return "", false
	}
	if strings.EqualFold(entry["Hidden"], "true") {
		return "", false
	}
	for _, key := range keys {
		if name := strings.TrimSpace(entry[key]); name != "" {
			return norm.NFC.String(name), true
		}
	}
	return nameFromID(id), true
}

// nameFromID derives a readable name from a desktop file ID such as
// "org.gnome.font-viewer.desktop" -> "Font Viewer".
func nameFromID(id string) string {
	base := strings.TrimSuffix(id, ".desktop")
	if i := strings.LastIndexByte(base, '.'); i >= 0 && i < len(base)-1 {
		base = base[i+1:]
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return norm.NFC.String(cases.Title(language.Und).String(strings.TrimSpace(base)))
}

// localeKeys lists the Name keys to try for a POSIX locale string, most
// specific first: lang_COUNTRY@MODIFIER, lang_COUNTRY, lang@MODIFIER, lang.
func localeKeys(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" || locale == "C" || locale == "POSIX" || strings.HasPrefix(locale, "C.") {
		return []string{"Name"}
	}
	var modifier string
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		modifier = locale[i+1:]
		locale = locale[:i]
	}
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}
	lang, country, _ := strings.Cut(locale, "_")

	var keys []string
	add := func(tag string) {
		keys = append(keys, "Name["+tag+"]")
	}
	if country != "" && modifier != "" {
		add(lang + "_" + country + "@" + modifier)
	}
	if country != "" {
		add(lang + "_" + country)
	}
	if modifier != "" {
		add(lang + "@" + modifier)
	}
	if lang != "" {
		add(lang)
	}
	return append(keys, "Name")
}
