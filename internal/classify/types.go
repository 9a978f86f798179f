package classify

import (
	"mime"
	"path/filepath"
	"strings"
)

// commonTypes supplements the platform MIME table so common media and
// document formats classify the same way on hosts without mime.types.
var commonTypes = map[string]string{
	".aac":  "audio/aac",
	".aif":  "audio/x-aiff",
	".aiff": "audio/x-aiff",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mid":  "audio/midi",
	".midi": "audio/midi",
	".mp3":  "audio/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/x-wav",
	".wma":  "audio/x-ms-wma",

	".3gp":  "video/3gpp",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".m4v":  "video/x-m4v",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".ogv":  "video/ogg",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",

	".bmp":  "image/bmp",
	".heic": "image/heic",
	".heif": "image/heif",
	".ico":  "image/vnd.microsoft.icon",
	".psd":  "image/vnd.adobe.photoshop",
	".tif":  "image/tiff",
	".tiff": "image/tiff",

	".7z":   "application/x-7z-compressed",
	".csv":  "text/csv",
	".deb":  "application/vnd.debian.binary-package",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".epub": "application/epub+zip",
	".gz":   "application/gzip",
	".iso":  "application/x-cd-image",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".odt":  "application/vnd.oasis.opendocument.text",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".rar":  "application/vnd.rar",
	".rtf":  "application/rtf",
	".sh":   "application/x-shellscript",
	".tar":  "application/x-tar",
	".txt":  "text/plain",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".zip":  "application/zip",
}

// extension returns the file extension of name including the dot. A name
// made only of a leading-dot part (".bashrc") has no extension.
func extension(name string) string {
	ext := filepath.Ext(name)
	if strings.TrimLeft(strings.TrimSuffix(name, ext), ".") == "" {
		return ""
	}
	return ext
}

// typeByExtension looks ext up in overrides, the platform table, then
// commonTypes. The result has no parameters.
func typeByExtension(ext string, overrides map[string]string) string {
	if ext == "" {
		return ""
	}
	lower := strings.ToLower(ext)
	if t, ok := overrides[lower]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return mediaType(t)
	}
	return commonTypes[lower]
}

// mediaType strips parameters such as "; charset=utf-8" and lowercases.
func mediaType(value string) string {
	if parsed, _, err := mime.ParseMediaType(value); err == nil {
		return parsed
	}
	base, _, _ := strings.Cut(value, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
