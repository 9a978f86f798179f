package folders_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"stacks/internal/classify"
	"stacks/internal/desktop"
	"stacks/internal/folders"
)

func newManager(t *testing.T) (*folders.Manager, string) {
	t.Helper()
	root := t.TempDir()
	provider := desktop.Static{
		Folders: desktop.SpecialFolders{Pictures: "Bilder", Videos: "Videos", Music: "Musik"},
		Apps:    []string{"Text Editor", "Archive Manager", "Files/Folders"},
		Defaults: map[string]string{
			"application/pdf": "Document Viewer",
		},
	}
	c := classify.New(provider, classify.Options{})
	return folders.New(root, c, provider), root
}

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCreateIsIdempotent(t *testing.T) {
	m, root := newManager(t)
	mkdirs(t, root, "Others")

	ready, created, err := m.Create([]string{"Others", "Bilder", "Text Editor"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !reflect.DeepEqual(ready, []string{"Others", "Bilder", "Text Editor"}) {
		t.Fatalf("unexpected ready list %v", ready)
	}
	if !reflect.DeepEqual(created, []string{"Bilder", "Text Editor"}) {
		t.Fatalf("unexpected created list %v", created)
	}

	_, created, err = m.Create([]string{"Bilder"})
	if err != nil || len(created) != 0 {
		t.Fatalf("second Create should be a no-op, got %v %v", created, err)
	}
}

func TestCreateFailsOnExistingFile(t *testing.T) {
	m, root := newManager(t)
	if err := os.WriteFile(filepath.Join(root, "Musik"), []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}

	ready, _, err := m.Create([]string{"Musik", "Others"})
	if err == nil {
		t.Fatal("expected error for file in the way")
	}
	if !reflect.DeepEqual(ready, []string{"Others"}) {
		t.Fatalf("unexpected ready list %v", ready)
	}
}

func TestToUnstackSkipsUserFolders(t *testing.T) {
	m, root := newManager(t)
	mkdirs(t, root, "MyStuff", "Archive Manager", "Videos", "Others", "Files-Folders", "Document Viewer")
	if err := os.WriteFile(filepath.Join(root, "Bilder"), []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := m.ToUnstack()
	want := []string{"Others", "Videos", "Archive Manager", "Document Viewer", "Files-Folders"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ToUnstack = %v, want %v", got, want)
	}
}

func TestCandidatesDeduplicates(t *testing.T) {
	root := t.TempDir()
	provider := desktop.Static{Apps: []string{"Videos", "Zed", "Others"}}
	m := folders.New(root, classify.New(provider, classify.Options{}), provider)

	want := []string{"Others", "Music", "Pictures", "Videos", "Zed"}
	if got := m.Candidates(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
}

func TestRemoveIfEmpty(t *testing.T) {
	m, root := newManager(t)
	mkdirs(t, root, "Others", "Bilder")
	if err := os.WriteFile(filepath.Join(root, "Bilder", "cat.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := m.RemoveIfEmpty("Others"); err != nil {
		t.Fatalf("RemoveIfEmpty(Others): %v", err)
	}
	if m.Exists("Others") {
		t.Fatal("empty folder was not removed")
	}

	err := m.RemoveIfEmpty("Bilder")
	if !errors.Is(err, folders.ErrNotEmpty) {
		t.Fatalf("expected ErrNotEmpty, got %v", err)
	}
	if !m.Exists("Bilder") {
		t.Fatal("non-empty folder was removed")
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("root must survive: %v", err)
	}
}

func TestRemoveIfEmptyMissing(t *testing.T) {
	m, _ := newManager(t)
	err := m.RemoveIfEmpty("Nope")
	if err == nil || errors.Is(err, folders.ErrNotEmpty) {
		t.Fatalf("expected read error, got %v", err)
	}
}
