package classify_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"stacks/internal/classify"
	"stacks/internal/desktop"
)

type fakeSniffer struct {
	mimeType string
	err      error
	calls    int
}

func (f *fakeSniffer) Sniff(string) (string, error) {
	f.calls++
	return f.mimeType, f.err
}

func testProvider() desktop.Static {
	return desktop.Static{
		Folders: desktop.SpecialFolders{Pictures: "Bilder", Videos: "Filme", Music: "Musik"},
		Defaults: map[string]string{
			"application/pdf":    "Document Viewer",
			"application/zip":    "Archive Manager",
			"text/plain":         "Text Editor",
			"video/mp4":          "Celluloid",
			"image/png":          "Image Viewer",
			"text/x-log":         "Log Viewer",
			"application/x-acdc": "AC/DC Writer",
			"text/csv":           "..",
		},
	}
}

func TestClassifyFallbackChain(t *testing.T) {
	c := classify.New(testProvider(), classify.Options{
		Extensions: map[string]string{".log": "text/x-log", ".acdc": "application/x-acdc"},
	})

	tests := []struct {
		name string
		want string
		rule classify.Rule
	}{
		{"holiday.png", "Bilder", classify.RuleMedia},
		{"HOLIDAY.JPG", "Bilder", classify.RuleMedia},
		{"clip.mp4", "Filme", classify.RuleMedia},
		{"movie.mkv", "Filme", classify.RuleMedia},
		{"song.mp3", "Musik", classify.RuleMedia},
		{"report.pdf", "Document Viewer", classify.RuleApplication},
		{"backup.zip", "Archive Manager", classify.RuleApplication},
		{"notes.txt", "Text Editor", classify.RuleApplication},
		{"server.log", "Log Viewer", classify.RuleApplication},
		{"letter.acdc", "AC-DC Writer", classify.RuleApplication},
		{"table.csv", "Others", classify.RuleFallback},
		{"setup.iso", "Others", classify.RuleFallback},
		{"README", "Others", classify.RuleFallback},
		{".bashrc", "Others", classify.RuleFallback},
		{"archive.unknownext", "Others", classify.RuleFallback},
	}
	for _, tc := range tests {
		got := c.Describe(tc.name)
		if got.Category != tc.want || got.Rule != tc.rule {
			t.Errorf("Describe(%q) = %q (%s, mime %q), want %q (%s)", tc.name, got.Category, got.Rule, got.MIMEType, tc.want, tc.rule)
		}
		if c.Classify(tc.name) != tc.want {
			t.Errorf("Classify(%q) disagrees with Describe", tc.name)
		}
	}
}

func TestVideoAlwaysLandsInVideosFolder(t *testing.T) {
	c := classify.New(testProvider(), classify.Options{})
	got := c.Describe("clip.mp4")
	if got.Category != "Filme" {
		t.Fatalf("expected localized videos folder despite registered app, got %q", got.Category)
	}
	if got.Source != classify.SourceExtension {
		t.Fatalf("expected extension source, got %s", got.Source)
	}
}

func TestSnifferUsedOnlyWithoutExtensionMatch(t *testing.T) {
	sniffer := &fakeSniffer{mimeType: "application/pdf"}
	c := classify.New(testProvider(), classify.Options{Sniffer: sniffer})

	if got := c.Describe("scan"); got.Category != "Document Viewer" || got.Source != classify.SourceSniff {
		t.Fatalf("expected sniffed pdf to map to Document Viewer, got %+v", got)
	}
	if got := c.Classify("holiday.png"); got != "Bilder" {
		t.Fatalf("unexpected category %q", got)
	}
	if sniffer.calls != 1 {
		t.Fatalf("expected sniffer to run once, ran %d times", sniffer.calls)
	}

	sniffer.mimeType = ""
	sniffer.err = errors.New("unreadable")
	if got := c.Describe("locked"); got.Category != "Others" || got.Source != classify.SourceNone {
		t.Fatalf("sniff failure should fall back to Others, got %+v", got)
	}
}

func TestContentSnifferDetectsMagicNumbers(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "screenshot")
	if err := os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	text := filepath.Join(dir, "todo")
	if err := os.WriteFile(text, []byte("buy milk\nwater plants\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := classify.New(testProvider(), classify.Options{Sniffer: classify.ContentSniffer{}})
	if got := c.Describe(png); got.Category != "Bilder" || got.MIMEType != "image/png" {
		t.Fatalf("expected sniffed png in Bilder, got %+v", got)
	}
	if got := c.Describe(text); got.Category != "Text Editor" || got.MIMEType != "text/plain" {
		t.Fatalf("expected sniffed text in Text Editor, got %+v", got)
	}

	plain := classify.New(testProvider(), classify.Options{})
	if got := plain.Classify(png); got != "Others" {
		t.Fatalf("without sniffer expected Others, got %q", got)
	}
}

func TestFixedCategoriesAndCustomOthers(t *testing.T) {
	c := classify.New(testProvider(), classify.Options{Others: "Misc"})
	want := []string{"Misc", "Musik", "Bilder", "Filme"}
	if got := c.FixedCategories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("FixedCategories = %v, want %v", got, want)
	}
	if got := c.Classify("README"); got != "Misc" {
		t.Fatalf("expected custom fallback, got %q", got)
	}
}

func TestAppCategory(t *testing.T) {
	if name, ok := classify.AppCategory(" Files/Folders "); !ok || name != "Files-Folders" {
		t.Fatalf("unexpected AppCategory result %q %v", name, ok)
	}
	if _, ok := classify.AppCategory(".."); ok {
		t.Fatal("expected .. to be rejected")
	}
}
