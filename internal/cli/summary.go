package cli

import (
	"fmt"
	"strings"

	"github.com/morozRed/lwdecomp/internal/decompiler"
)

type ModuleHealth struct {
	Name       string   `json:"name"`
	Manifest   bool     `json:"manifest"`
	References int      `json:"references"`
	Files      int      `json:"files"`
	Pending    []string `json:"pending,omitempty"`
	Mismatches []string `json:"mismatches,omitempty"`
}

type TargetHealth struct {
	Name      string         `json:"name"`
	OutputDir string         `json:"output_dir"`
	Present   bool           `json:"present"`
	Modules   []ModuleHealth `json:"modules,omitempty"`
}

type DoctorSummary struct {
	Mode           string                `json:"mode"`
	CacheFile      string                `json:"cache_file"`
	InstallPath    string                `json:"install_path,omitempty"`
	InstallProblem string                `json:"install_problem,omitempty"`
	OutputDir      string                `json:"output_dir"`
	Decompiler     decompiler.Capability `json:"decompiler"`
	Targets        []TargetHealth        `json:"targets"`
	Healthy        bool                  `json:"healthy"`
	Missing        []string              `json:"missing,omitempty"`
	Warnings       []string              `json:"warnings,omitempty"`
	Suggestions    []string              `json:"suggestions,omitempty"`
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}
