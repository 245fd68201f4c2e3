package targets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/morozRed/lwdecomp/internal/fileutil"
	"github.com/morozRed/lwdecomp/internal/selector"
	"gopkg.in/yaml.v3"
)

const (
	ServerSubpath = "Server"
	DataSubpath   = "Logic_World_Data"
)

// ClientSubpath is the client's managed assembly folder, relative to the
// install root.
var ClientSubpath = filepath.Join(DataSubpath, "Managed")

// Target is one group of modules decompiled from a single install subfolder
// into a single output folder.
type Target struct {
	Name          string   `yaml:"name" json:"name"`
	SourceSubpath string   `yaml:"source" json:"source"`
	ExplicitNames []string `yaml:"explicit,omitempty" json:"explicit,omitempty"`
	Keywords      []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// Rule returns the module selection rule for the target.
func (t Target) Rule() selector.Rule {
	return selector.Rule{
		ExplicitNames: t.ExplicitNames,
		Keywords:      t.Keywords,
	}
}

type file struct {
	Targets []Target `yaml:"targets"`
}

// Default returns the server and client targets.
func Default() []Target {
	shared := []string{"SUCC", "Jimmy", "LICC", "Lidgren", "Logic", "TypeFinder", "SECCS"}
	client := append(append([]string{}, shared...), "FancyInput", "FancyPantsConsole", "GameDataAccess")

	return []Target{
		{
			Name:          "LWServer",
			SourceSubpath: ServerSubpath,
			ExplicitNames: []string{"Server.dll"},
			Keywords:      shared,
		},
		{
			Name:          "LWClient",
			SourceSubpath: ClientSubpath,
			ExplicitNames: []string{"KnifeOutline.dll"},
			Keywords:      client,
		},
	}
}

// Load reads a YAML target list from path.
func Load(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML target list.
func Parse(data []byte) ([]Target, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse targets file: %w", err)
	}
	for i := range f.Targets {
		f.Targets[i].Name = strings.TrimSpace(f.Targets[i].Name)
		f.Targets[i].SourceSubpath = filepath.FromSlash(strings.TrimSpace(f.Targets[i].SourceSubpath))
	}
	if err := Validate(f.Targets); err != nil {
		return nil, err
	}
	return f.Targets, nil
}

// Validate checks that targets are usable as output and source folders.
func Validate(list []Target) error {
	if len(list) == 0 {
		return errors.New("at least one target is required")
	}

	seen := make(map[string]bool, len(list))
	for i, t := range list {
		name := t.Name
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("target %d: name is required", i)
		}
		if name != strings.TrimSpace(name) {
			return fmt.Errorf("target %q: name has surrounding whitespace", t.Name)
		}
		if name != filepath.Base(name) || name == "." || name == ".." {
			return fmt.Errorf("target %q: name must be a single folder name", t.Name)
		}
		if seen[name] {
			return fmt.Errorf("target %q: duplicate name", t.Name)
		}
		seen[name] = true

		if strings.TrimSpace(t.SourceSubpath) == "" {
			return fmt.Errorf("target %q: source is required", t.Name)
		}
		if filepath.IsAbs(t.SourceSubpath) {
			return fmt.Errorf("target %q: source must be relative to the install dir", t.Name)
		}
		if len(t.ExplicitNames) == 0 && len(t.Keywords) == 0 {
			return fmt.Errorf("target %q: explicit names or keywords are required", t.Name)
		}
	}
	return nil
}

// Names returns the target names in order.
func Names(list []Target) []string {
	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, t.Name)
	}
	return names
}

// RequiredSubpaths lists the install subfolders that must exist: the game
// data and server folders, then every target source not already covered.
func RequiredSubpaths(list []Target) []string {
	required := []string{DataSubpath, ServerSubpath}
	for _, t := range list {
		required = append(required, t.SourceSubpath)
	}
	return fileutil.DedupeStrings(required)
}
