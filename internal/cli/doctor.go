package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/morozRed/lwdecomp/internal/decompiler"
	"github.com/morozRed/lwdecomp/internal/fileutil"
	"github.com/morozRed/lwdecomp/internal/installpath"
	"github.com/morozRed/lwdecomp/internal/layout"
	"github.com/morozRed/lwdecomp/internal/manifest"
	"github.com/morozRed/lwdecomp/internal/targets"
	"github.com/spf13/cobra"
)

// probeDecompiler is replaced in tests.
var probeDecompiler = decompiler.Probe

func RunDoctor(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	summary := DoctorSummary{
		Mode:       "doctor",
		CacheFile:  s.CacheFile,
		OutputDir:  s.OutputDir,
		Decompiler: probeDecompiler(s.Config.Decompiler),
		Targets:    make([]TargetHealth, 0, len(s.Targets)),
	}

	cached, err := installpath.ReadCache(s.CacheFile)
	if err != nil {
		return err
	}
	summary.InstallPath = cached
	summary.InstallProblem = installpath.Check(cached, targets.RequiredSubpaths(s.Targets))
	if summary.InstallProblem != "" {
		summary.Missing = append(summary.Missing, "valid install path")
		summary.Suggestions = append(summary.Suggestions, "run lwdecomp to set the install path")
	}
	if !summary.Decompiler.Available {
		summary.Missing = append(summary.Missing, "decompiler executable")
		summary.Suggestions = append(summary.Suggestions, "install ilspycmd (dotnet tool install -g ilspycmd) or pass --decompiler")
	}

	inspector := layout.NewInspector()
	for _, target := range s.Targets {
		health, err := inspectTarget(cmd, inspector, filepath.Join(s.OutputDir, target.Name), target.Name, &summary)
		if err != nil {
			return err
		}
		summary.Targets = append(summary.Targets, health)
	}

	summary.Missing = fileutil.DedupeStrings(summary.Missing)
	sort.Strings(summary.Missing)
	summary.Suggestions = fileutil.DedupeStrings(summary.Suggestions)
	sort.Strings(summary.Suggestions)
	summary.Healthy = len(summary.Missing) == 0

	if asJSON {
		return fileutil.PrintJSON(cmd.OutOrStdout(), summary)
	}
	printDoctorSummary(cmd.OutOrStdout(), summary)
	return nil
}

func inspectTarget(cmd *cobra.Command, inspector *layout.Inspector, dir, name string, summary *DoctorSummary) (TargetHealth, error) {
	health := TargetHealth{Name: name, OutputDir: dir}
	if !fileutil.DirExists(dir) {
		summary.Missing = append(summary.Missing, name+" output")
		summary.Suggestions = append(summary.Suggestions, "run lwdecomp")
		return health, nil
	}
	health.Present = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return health, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		moduleDir := filepath.Join(dir, entry.Name())
		module := ModuleHealth{Name: entry.Name()}

		m, err := manifest.Read(filepath.Join(moduleDir, manifest.FileName(entry.Name())))
		switch {
		case err == nil && m.Name == entry.Name():
			module.Manifest = true
			module.References = len(m.References)
		case err == nil:
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s/%s: manifest names %q", name, entry.Name(), m.Name))
			module.Manifest = true
			module.References = len(m.References)
		default:
			summary.Missing = append(summary.Missing, fmt.Sprintf("%s/%s manifest", name, entry.Name()))
			summary.Suggestions = append(summary.Suggestions, "run lwdecomp")
		}

		report, err := inspector.Inspect(commandContext(cmd), moduleDir)
		if err != nil {
			return health, err
		}
		module.Files = report.Files
		module.Pending = report.Pending
		for _, mismatch := range report.Mismatches {
			module.Mismatches = append(module.Mismatches, mismatch.File)
		}
		if len(module.Pending) > 0 {
			summary.Missing = append(summary.Missing, fmt.Sprintf("%s/%s namespace folders", name, entry.Name()))
			summary.Suggestions = append(summary.Suggestions, "run lwdecomp")
		}
		if len(module.Mismatches) > 0 {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s/%s: %d files outside their namespace folder (%s)",
				name, entry.Name(), len(module.Mismatches), SummarizePaths(module.Mismatches, 3)))
		}
		health.Modules = append(health.Modules, module)
	}
	return health, nil
}

func printDoctorSummary(w io.Writer, summary DoctorSummary) {
	status := "issues"
	if summary.Healthy {
		status = "ok"
	}
	fmt.Fprintf(w, "doctor: %s\n", status)

	install := summary.InstallPath
	if install == "" {
		install = "(not set)"
	}
	if summary.InstallProblem != "" {
		fmt.Fprintf(w, "install: %s (%s)\n", install, summary.InstallProblem)
	} else {
		fmt.Fprintf(w, "install: %s\n", install)
	}

	if summary.Decompiler.Available {
		fmt.Fprintf(w, "decompiler: %s\n", summary.Decompiler.Resolved)
	} else {
		fmt.Fprintf(w, "decompiler: %s unavailable (%s)\n", summary.Decompiler.Command, summary.Decompiler.Reason)
	}

	for _, target := range summary.Targets {
		if !target.Present {
			fmt.Fprintf(w, "target %s: not decompiled\n", target.Name)
			continue
		}
		files := 0
		manifests := 0
		for _, module := range target.Modules {
			files += module.Files
			if module.Manifest {
				manifests++
			}
		}
		fmt.Fprintf(w, "target %s: modules=%d manifests=%d source_files=%d\n", target.Name, len(target.Modules), manifests, files)
	}

	for _, warning := range summary.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	if len(summary.Missing) > 0 {
		fmt.Fprintf(w, "missing (%d): %s\n", len(summary.Missing), SummarizePaths(summary.Missing, 8))
	}
	for _, suggestion := range summary.Suggestions {
		fmt.Fprintf(w, "next: %s\n", suggestion)
	}
}
