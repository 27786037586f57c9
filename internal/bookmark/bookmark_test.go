package bookmark

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatParse_RoundTrip(t *testing.T) {
	for _, index := range []int{0, 1, 4, 99} {
		token := Format(index)
		got, ok := Parse(token)
		if !ok || got != index {
			t.Errorf("Parse(Format(%d)) = %d, %v", index, got, ok)
		}
	}
}

func TestFormat_IsOneBased(t *testing.T) {
	if got := Format(3); got != "#slide-4" {
		t.Errorf("Format(3) = %q, want %q", got, "#slide-4")
	}
}

func TestParse_OptionalHash(t *testing.T) {
	if idx, ok := Parse("slide-2"); !ok || idx != 1 {
		t.Errorf("Parse(slide-2) = %d, %v", idx, ok)
	}
	if idx, ok := Parse(" #slide-2\n"); !ok || idx != 1 {
		t.Errorf("Parse with surrounding whitespace = %d, %v", idx, ok)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, token := range []string{
		"", "#", "#slide-", "#slide-0", "#slide--1", "#slide-abc",
		"#slides-3", "#section-2", "slide-1.5", "#slide-1x",
	} {
		if _, ok := Parse(token); ok {
			t.Errorf("Parse(%q) accepted a malformed token", token)
		}
	}
}

func TestStore_WriteRead(t *testing.T) {
	deckPath := filepath.Join(t.TempDir(), "talk.md")
	s := NewStore(deckPath)

	if _, ok := s.Read(); ok {
		t.Fatal("Read on a missing file should report ok=false")
	}

	if err := s.Write(Format(2)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, ok := s.Read(); !ok || got != 2 {
		t.Fatalf("Read = %d, %v, want 2, true", got, ok)
	}
	if s.Path() != deckPath+".bookmark" {
		t.Errorf("unexpected sidecar path %q", s.Path())
	}
}

func TestStore_IgnoresForeignContent(t *testing.T) {
	deckPath := filepath.Join(t.TempDir(), "talk.md")
	s := NewStore(deckPath)
	if err := os.WriteFile(s.Path(), []byte("not a token"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Read(); ok {
		t.Fatal("foreign content should be ignored")
	}
}
