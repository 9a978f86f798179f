package desktop

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// keyFile is a parsed freedesktop "desktop entry" style file: [Group]
// headers followed by Key=Value lines. Only the first value of a repeated
// key is kept.
type keyFile map[string]map[string]string

func readKeyFile(path string) (keyFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseKeyFile(file)
}

func parseKeyFile(r io.Reader) (keyFile, error) {
	kf := keyFile{}
	var group map[string]string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := line[1 : len(line)-1]
			if existing, ok := kf[name]; ok {
				group = existing
			} else {
				group = map[string]string{}
				kf[name] = group
			}
			continue
		}
		if group == nil {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if _, exists := group[key]; exists || key == "" {
			continue
		}
		group[key] = unescapeValue(strings.TrimSpace(value))
	}
	return kf, scanner.Err()
}

var valueUnescaper = strings.NewReplacer(`\s`, " ", `\n`, "\n", `\t`, "\t", `\r`, "\r", `\\`, `\`)

func unescapeValue(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	return valueUnescaper.Replace(value)
}

// splitList splits a semicolon separated value, dropping empty items.
func splitList(value string) []string {
	parts := strings.Split(value, ";")
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
