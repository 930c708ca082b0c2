package lecturestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}

	writeFile("02_pointers.txt", "Pointers\nA pointer stores an address.")
	writeFile("01_intro.txt", "Introduction to CS\nWelcome to the course.")
	writeFile("ignored.png", "binary junk")
	writeFile("empty.txt", "   \n  ")

	lectures, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}

	if len(lectures) != 2 {
		t.Fatalf("expected 2 lectures, got %d", len(lectures))
	}
	// sorted by file name, not read order
	if lectures[0].Title != "Introduction to CS" {
		t.Errorf("lectures[0].Title got %q, want Introduction to CS", lectures[0].Title)
	}
	if lectures[1].Title != "Pointers" {
		t.Errorf("lectures[1].Title got %q, want Pointers", lectures[1].Title)
	}
	if !strings.Contains(lectures[1].Content, "stores an address") {
		t.Errorf("lectures[1].Content got %q", lectures[1].Content)
	}
}

func TestLoadDirectory_Missing(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestLectureTitle(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    string
	}{
		{
			name:    "First_Line_Heading",
			path:    "/tmp/lec.txt",
			content: "Big O Notation\nDetails follow.",
			want:    "Big O Notation",
		},
		{
			name:    "Long_First_Line_Falls_Back_To_Stem",
			path:    "/tmp/03_sorting.txt",
			content: strings.Repeat("x", 150) + "\nmore",
			want:    "03_sorting",
		},
		{
			name:    "Single_Line_Content",
			path:    "/tmp/short.txt",
			content: "Only line",
			want:    "Only line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lectureTitle(tt.path, tt.content); got != tt.want {
				t.Errorf("lectureTitle got %q, want %q", got, tt.want)
			}
		})
	}
}
