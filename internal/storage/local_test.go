package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"classic.png", "modern.JPG", "notes.txt", "photo.jpeg", "vector.svg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got := LocalImages(dir)
	want := map[string]bool{
		"/templates/classic.png": true,
		"/templates/modern.JPG":  true,
		"/templates/photo.jpeg":  true,
		"/templates/vector.svg":  true,
	}
	if len(got) != len(want) {
		t.Fatalf("images = %v, want %d entries", got, len(want))
	}
	for _, url := range got {
		if !want[url] {
			t.Fatalf("unexpected entry %q in %v", url, got)
		}
	}
}

func TestLocalImagesMissingDir(t *testing.T) {
	if got := LocalImages(filepath.Join(t.TempDir(), "nope")); got != nil {
		t.Fatalf("missing dir should yield nil, got %v", got)
	}
}

func TestIsImage(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPEG", "c.svg", "d.jpg"} {
		if !isImage(name) {
			t.Fatalf("%q should be recognized", name)
		}
	}
	for _, name := range []string{"a.gif", "b.pdf", "c", ".png.txt"} {
		if isImage(name) {
			t.Fatalf("%q should not be recognized", name)
		}
	}
}
