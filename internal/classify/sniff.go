package classify

import (
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// Sniffer guesses a MIME type from file contents.
type Sniffer interface {
	Sniff(path string) (string, error)
}

// ContentSniffer detects MIME types from magic numbers using
// github.com/gabriel-vasile/mimetype.
type ContentSniffer struct{}

// Sniff returns the detected MIME type without parameters, or "" when only
// the generic binary type could be inferred. Only regular files are opened:
// FIFOs, sockets and devices report "" so an open cannot block.
func (ContentSniffer) Sniff(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", nil
	}
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	if detected.Is("application/octet-stream") {
		return "", nil
	}
	return mediaType(detected.String()), nil
}
