package layout

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/morozRed/lwdecomp/internal/normalize"
)

// Mismatch is a source file declaring namespaces that do not match the
// folder it lives in.
type Mismatch struct {
	File     string   `json:"file"`
	Expected string   `json:"expected"`
	Declared []string `json:"declared"`
}

// Report summarizes one module directory.
type Report struct {
	Root       string     `json:"root"`
	Files      int        `json:"files"`
	Namespaces []string   `json:"namespaces,omitempty"`
	Pending    []string   `json:"pending,omitempty"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// Clean reports whether the module has no layout issues.
func (r Report) Clean() bool {
	return len(r.Pending) == 0 && len(r.Mismatches) == 0
}

// Inspector checks module directories. It is not safe for concurrent use.
type Inspector struct {
	parser *NamespaceParser
}

func NewInspector() *Inspector {
	return &Inspector{parser: NewNamespaceParser()}
}

// ExpectedNamespace maps a slash-separated directory relative to the module
// root to the namespace its files should declare.
func ExpectedNamespace(relDir string) string {
	relDir = filepath.ToSlash(relDir)
	if relDir == "." || relDir == "" {
		return ""
	}
	return strings.ReplaceAll(relDir, "/", ".")
}

// Inspect walks root and reports its layout. Files without a namespace
// declaration are counted but never reported as mismatches.
func (i *Inspector) Inspect(ctx context.Context, root string) (Report, error) {
	report := Report{Root: root}

	pending, err := normalize.Pending(root)
	if err != nil {
		return report, err
	}
	report.Pending = pending

	seen := make(map[string]bool)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != ".cs" {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		declared, err := i.parser.Parse(ctx, content)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		report.Files++

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, ns := range declared {
			seen[ns] = true
		}
		if len(declared) == 0 {
			return nil
		}

		expected := ExpectedNamespace(filepath.Dir(rel))
		for _, ns := range declared {
			if ns == expected {
				return nil
			}
		}
		report.Mismatches = append(report.Mismatches, Mismatch{
			File:     rel,
			Expected: expected,
			Declared: declared,
		})
		return nil
	})
	if err != nil {
		return report, err
	}

	for ns := range seen {
		report.Namespaces = append(report.Namespaces, ns)
	}
	sort.Strings(report.Namespaces)
	return report, nil
}
