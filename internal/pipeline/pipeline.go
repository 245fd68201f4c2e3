package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/morozRed/lwdecomp/internal/decompiler"
	"github.com/morozRed/lwdecomp/internal/fileutil"
	"github.com/morozRed/lwdecomp/internal/manifest"
	"github.com/morozRed/lwdecomp/internal/normalize"
	"github.com/morozRed/lwdecomp/internal/selector"
	"github.com/morozRed/lwdecomp/internal/targets"
	"go.uber.org/zap"
)

// Options configures a run.
type Options struct {
	InstallRoot string
	// OutputDir receives one folder per target.
	OutputDir string
	Targets   []targets.Target
	Service   decompiler.Service
	Out       io.Writer
	Logger    *zap.Logger
}

type ModuleSummary struct {
	File       string   `json:"file"`
	Name       string   `json:"name"`
	OutputDir  string   `json:"output_dir"`
	Manifest   string   `json:"manifest"`
	References []string `json:"references"`
	Moves      int      `json:"moves"`
	DurationMS int64    `json:"duration_ms"`
}

type TargetSummary struct {
	Name       string          `json:"name"`
	SourceDir  string          `json:"source_dir"`
	OutputDir  string          `json:"output_dir"`
	Scanned    int             `json:"scanned"`
	Modules    []ModuleSummary `json:"modules"`
	DurationMS int64           `json:"duration_ms"`
}

type Summary struct {
	InstallRoot string          `json:"install_root"`
	OutputDir   string          `json:"output_dir"`
	Targets     []TargetSummary `json:"targets"`
	DurationMS  int64           `json:"duration_ms"`
}

// Run processes the targets in order. The first failure stops the run;
// output written up to that point is left in place.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	start := time.Now()
	summary := &Summary{
		InstallRoot: opts.InstallRoot,
		OutputDir:   opts.OutputDir,
		Targets:     make([]TargetSummary, 0, len(opts.Targets)),
	}
	for _, target := range opts.Targets {
		fmt.Fprintf(opts.Out, "\nDecompiling %s...\n", target.Name)
		targetSummary, err := runTarget(ctx, opts, target)
		if err != nil {
			return summary, fmt.Errorf("target %s: %w", target.Name, err)
		}
		summary.Targets = append(summary.Targets, targetSummary)
	}
	summary.DurationMS = time.Since(start).Milliseconds()
	return summary, nil
}

func runTarget(ctx context.Context, opts Options, target targets.Target) (TargetSummary, error) {
	start := time.Now()
	summary := TargetSummary{
		Name:      target.Name,
		SourceDir: filepath.Join(opts.InstallRoot, target.SourceSubpath),
		OutputDir: filepath.Join(opts.OutputDir, target.Name),
		Modules:   make([]ModuleSummary, 0),
	}

	if err := fileutil.ResetDir(summary.OutputDir); err != nil {
		return summary, err
	}

	files, err := fileutil.ListFiles(summary.SourceDir)
	if err != nil {
		return summary, fmt.Errorf("failed to list modules: %w", err)
	}
	summary.Scanned = len(files)

	selected := selector.Select(files, target.Rule())
	opts.Logger.Debug("selected modules",
		zap.String("target", target.Name),
		zap.Int("scanned", len(files)),
		zap.Strings("selected", selected),
	)

	for _, file := range selected {
		module, err := decompileModule(ctx, opts, summary.SourceDir, summary.OutputDir, file)
		if err != nil {
			return summary, err
		}
		summary.Modules = append(summary.Modules, module)
	}

	elapsed := time.Since(start)
	summary.DurationMS = elapsed.Milliseconds()
	fmt.Fprintf(opts.Out, "Decompilation done in %dms!\n", summary.DurationMS)
	return summary, nil
}

func decompileModule(ctx context.Context, opts Options, sourceDir, targetDir, file string) (ModuleSummary, error) {
	name := ModuleName(file)
	module := ModuleSummary{
		File:      file,
		Name:      name,
		OutputDir: filepath.Join(targetDir, name),
	}
	if err := fileutil.ResetDir(module.OutputDir); err != nil {
		return module, err
	}

	progress := startModule(opts.Out, file)
	result, err := opts.Service.Decompile(ctx, filepath.Join(sourceDir, file), module.OutputDir)
	if err != nil {
		progress.Fail()
		return module, err
	}
	module.DurationMS = progress.Done().Milliseconds()

	moves, err := normalize.Normalize(module.OutputDir)
	if err != nil {
		return module, fmt.Errorf("failed to normalize %s: %w", name, err)
	}
	module.Moves = len(moves)
	opts.Logger.Debug("normalized module", zap.String("module", name), zap.Int("moves", len(moves)))

	module.References = result.References
	if module.References == nil {
		module.References = []string{}
	}
	module.Manifest, err = manifest.Write(module.OutputDir, name, module.References)
	if err != nil {
		return module, err
	}
	opts.Logger.Debug("wrote manifest", zap.String("module", name), zap.String("path", module.Manifest))
	return module, nil
}

// ModuleName strips the module extension from a file name.
func ModuleName(file string) string {
	return strings.TrimSuffix(file, selector.ModuleExtension)
}

func (o Options) validate() error {
	switch {
	case o.InstallRoot == "":
		return errors.New("install root is required")
	case o.OutputDir == "":
		return errors.New("output dir is required")
	case o.Service == nil:
		return errors.New("decompiler service is required")
	case o.Out == nil:
		return errors.New("output writer is required")
	}
	return targets.Validate(o.Targets)
}
