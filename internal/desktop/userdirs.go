package desktop

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// readUserDirs parses an xdg-user-dirs configuration file. Values are
// shell-quoted and either absolute or relative to $HOME. A missing file
// yields an empty map.
func readUserDirs(path, home string) map[string]string {
	dirs := map[string]string{}
	file, err := os.Open(path)
	if err != nil {
		return dirs
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || !strings.HasPrefix(key, "XDG_") || !strings.HasSuffix(key, "_DIR") {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
			continue
		}
		value = value[1 : len(value)-1]
		switch {
		case value == "$HOME":
			value = home
		case strings.HasPrefix(value, "$HOME/"):
			value = filepath.Join(home, value[len("$HOME/"):])
		case filepath.IsAbs(value):
			value = filepath.Clean(value)
		default:
			continue
		}
		dirs[key] = value
	}
	return dirs
}
