package textutil

import "strings"

// fileNameReplacer replaces characters that cannot appear in a single path
// segment on the platforms stacks runs on.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	"\x00", "",
)

// SanitizeFileName makes name usable as one directory entry name. Slashes
// become dashes, NUL bytes are dropped, and surrounding whitespace is
// trimmed. Names that would still be unusable ("", ".", "..") return "".
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(fileNameReplacer.Replace(name))
	switch name {
	case "", ".", "..":
		return ""
	}
	return name
}
