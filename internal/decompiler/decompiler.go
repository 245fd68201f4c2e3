package decompiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result describes a decompiled module.
type Result struct {
	// References are the referenced assembly names in the order the
	// decompiler reported them.
	References []string
	// ProjectFile is the generated project file, if any.
	ProjectFile string
}

// Service decompiles one module into outputDir.
type Service interface {
	Decompile(ctx context.Context, modulePath, outputDir string) (Result, error)
}

// ILSpyCmd runs the ilspycmd command line decompiler.
type ILSpyCmd struct {
	Path   string
	Logger *zap.Logger
}

func NewILSpyCmd(path string, logger *zap.Logger) *ILSpyCmd {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ILSpyCmd{Path: path, Logger: logger}
}

// Args returns the command line used to decompile modulePath into outputDir.
// The module's own folder is passed as a reference search path so sibling
// assemblies resolve.
func (d *ILSpyCmd) Args(modulePath, outputDir string) []string {
	return []string{"-p", "-o", outputDir, "-r", filepath.Dir(modulePath), modulePath}
}

func (d *ILSpyCmd) Decompile(ctx context.Context, modulePath, outputDir string) (Result, error) {
	args := d.Args(modulePath, outputDir)
	d.Logger.Debug("running decompiler", zap.String("path", d.Path), zap.Strings("args", args))

	start := time.Now()
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.Path, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return Result{}, fmt.Errorf("failed to decompile %s: %w: %s", filepath.Base(modulePath), err, msg)
		}
		return Result{}, fmt.Errorf("failed to decompile %s: %w", filepath.Base(modulePath), err)
	}

	moduleName := strings.TrimSuffix(filepath.Base(modulePath), filepath.Ext(modulePath))
	projectFile, err := FindProjectFile(outputDir, moduleName)
	if err != nil {
		return Result{}, err
	}
	refs, err := ReadProjectReferences(projectFile)
	if err != nil {
		return Result{}, err
	}

	d.Logger.Debug("decompiled module",
		zap.String("module", moduleName),
		zap.String("project", projectFile),
		zap.Int("references", len(refs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return Result{References: refs, ProjectFile: projectFile}, nil
}

// ErrNoProjectFile is returned when the decompiler produced no project file.
var ErrNoProjectFile = errors.New("no project file generated")

// FindProjectFile returns the .csproj in dir, preferring <moduleName>.csproj.
func FindProjectFile(dir, moduleName string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csproj"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoProjectFile, dir)
	}
	preferred := filepath.Join(dir, moduleName+".csproj")
	for _, match := range matches {
		if match == preferred {
			return match, nil
		}
	}
	return matches[0], nil
}
