package desktop

import "strings"

const (
	groupDefaultApplications = "Default Applications"
	groupAddedAssociations   = "Added Associations"
	groupRemovedAssociations = "Removed Associations"
	groupMIMECache           = "MIME Cache"
)

type mimeAssociations struct {
	defaults map[string][]string
	added    map[string][]string
	removed  map[string]map[string]struct{}
	cache    map[string][]string
}

// loadMimeAssociations merges mimeapps.list files (highest precedence first)
// and mimeinfo.cache files. Missing files are skipped.
func loadMimeAssociations(listFiles, cacheFiles []string) *mimeAssociations {
	m := &mimeAssociations{
		defaults: map[string][]string{},
		added:    map[string][]string{},
		removed:  map[string]map[string]struct{}{},
		cache:    map[string][]string{},
	}
	for _, path := range listFiles {
		kf, err := readKeyFile(path)
		if err != nil {
			continue
		}
		appendGroup(m.defaults, kf[groupDefaultApplications])
		appendGroup(m.added, kf[groupAddedAssociations])
		for mimeType, value := range kf[groupRemovedAssociations] {
			mimeType = strings.ToLower(mimeType)
			set := m.removed[mimeType]
			if set == nil {
				set = map[string]struct{}{}
				m.removed[mimeType] = set
			}
			for _, id := range splitList(value) {
				set[id] = struct{}{}
			}
		}
	}
	for _, path := range cacheFiles {
		kf, err := readKeyFile(path)
		if err != nil {
			continue
		}
		appendGroup(m.cache, kf[groupMIMECache])
	}
	return m
}

func appendGroup(dst map[string][]string, group map[string]string) {
	for mimeType, value := range group {
		mimeType = strings.ToLower(mimeType)
		dst[mimeType] = append(dst[mimeType], splitList(value)...)
	}
}

// candidates returns desktop file IDs for mimeType in preference order:
// explicit defaults, then added associations and the system cache minus
// removed associations.
func (m *mimeAssociations) candidates(mimeType string) []string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "" {
		return nil
	}
	out := append([]string{}, m.defaults[mimeType]...)
	removed := m.removed[mimeType]
	for _, list := range [][]string{m.added[mimeType], m.cache[mimeType]} {
		for _, id := range list {
			if _, ok := removed[id]; ok {
				continue
			}
			out = append(out, id)
		}
	}
	return out
}
