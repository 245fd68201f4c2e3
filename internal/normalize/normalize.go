package normalize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Move records one directory rename performed by Normalize.
type Move struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CollisionError is returned when splitting a dotted name would land on a
// path that already exists. The tree is left as it was before that move.
type CollisionError struct {
	Source      string
	Destination string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("cannot move %s: destination %s already exists", e.Source, e.Destination)
}

// Normalize splits every dotted directory name below root into nested
// directories, recursing into the resulting tree. It returns the moves in
// the order they were applied. Running it on a normalized tree is a no-op.
func Normalize(root string) ([]Move, error) {
	moves := make([]Move, 0)
	if err := normalizeDir(root, &moves); err != nil {
		return moves, err
	}
	return moves, nil
}

func normalizeDir(root string, moves *[]Move) error {
	dirs, err := listDirs(root)
	if err != nil {
		return err
	}

	for _, name := range dirs {
		if !strings.Contains(name, ".") {
			continue
		}
		segments := SplitName(name)
		if len(segments) == 0 {
			continue
		}

		source := filepath.Join(root, name)
		destination := filepath.Join(append([]string{root}, segments...)...)
		if _, err := os.Lstat(destination); err == nil {
			return &CollisionError{Source: source, Destination: destination}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to inspect %s: %w", destination, err)
		}

		if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(destination), err)
		}
		if err := os.Rename(source, destination); err != nil {
			return fmt.Errorf("failed to move %s to %s: %w", source, destination, err)
		}
		*moves = append(*moves, Move{From: source, To: destination})
	}

	dirs, err = listDirs(root)
	if err != nil {
		return err
	}
	for _, name := range dirs {
		if err := normalizeDir(filepath.Join(root, name), moves); err != nil {
			return err
		}
	}
	return nil
}

// SplitName splits a dotted directory name into its path segments. Empty
// segments from leading, trailing or repeated dots are dropped.
func SplitName(name string) []string {
	parts := strings.Split(name, ".")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// Pending returns the paths, relative to root, of directories whose names
// still contain a dot.
func Pending(root string) ([]string, error) {
	pending := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if strings.Contains(d.Name(), ".") {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			pending = append(pending, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(pending)
	return pending, nil
}

func listDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs, nil
}
