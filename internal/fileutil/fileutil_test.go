package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteIfChangedTracked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache")

	changed, err := WriteIfChangedTracked(path, []byte("a"))
	if err != nil || !changed {
		t.Fatalf("expected first write to change file, got changed=%v err=%v", changed, err)
	}
	changed, err = WriteIfChangedTracked(path, []byte("a"))
	if err != nil || changed {
		t.Fatalf("expected identical write to be skipped, got changed=%v err=%v", changed, err)
	}
	changed, err = WriteIfChangedTracked(path, []byte("b"))
	if err != nil || !changed {
		t.Fatalf("expected new content to be written, got changed=%v err=%v", changed, err)
	}
}

func TestResetDirRemovesPreviousContents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(filepath.Join(dir, "old", "deep"), 0755); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "old", "deep", "f.cs"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	if err := ResetDir(dir); err != nil {
		t.Fatalf("ResetDir failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty directory, got %d entries", len(entries))
	}
}

func TestListFilesSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.dll", "a.dll", "c.pdb"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("failed to create fixture: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.dll"), 0755); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	got, err := ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	want := []string{"a.dll", "b.dll", "c.pdb"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPrintJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatalf("PrintJSON failed: %v", err)
	}
	if buf.String() != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestDedupeStringsKeepsFirstOccurrence(t *testing.T) {
	got := DedupeStrings([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
