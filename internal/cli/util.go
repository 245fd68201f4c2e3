package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/morozRed/lwdecomp/internal/config"
	"github.com/morozRed/lwdecomp/internal/installpath"
	"github.com/morozRed/lwdecomp/internal/targets"
	"github.com/spf13/cobra"
)

type settings struct {
	Config    config.Config
	Targets   []targets.Target
	CacheFile string
	OutputDir string
}

func resolveWorkingDirectory() (string, error) {
	rootPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return rootPath, nil
}

func executableDirectory() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

// loadSettings merges .env files, the environment and command flags, in
// increasing priority.
func loadSettings(cmd *cobra.Command) (settings, error) {
	workingDir, err := resolveWorkingDirectory()
	if err != nil {
		return settings{}, err
	}

	cfg, err := config.Load(workingDir, executableDirectory())
	if err != nil {
		return settings{}, err
	}

	overrides := []struct {
		flag   string
		target *string
	}{
		{flag: "output", target: &cfg.OutputRoot},
		{flag: "targets", target: &cfg.TargetsFile},
		{flag: "decompiler", target: &cfg.Decompiler},
		{flag: "cache-file", target: &cfg.CacheFile},
	}
	for _, override := range overrides {
		value, err := OptionalStringFlag(cmd, override.flag)
		if err != nil {
			return settings{}, err
		}
		if value != "" {
			*override.target = value
		}
	}

	s := settings{Config: cfg, Targets: targets.Default()}
	if cfg.TargetsFile != "" {
		s.Targets, err = targets.Load(cfg.TargetsFile)
		if err != nil {
			return settings{}, err
		}
	}

	s.CacheFile = cfg.CacheFile
	if s.CacheFile == "" {
		s.CacheFile, err = installpath.DefaultCacheFile()
		if err != nil {
			return settings{}, err
		}
	}

	outputRoot := cfg.OutputRoot
	if outputRoot == "" {
		outputRoot = workingDir
	}
	outputRoot, err = filepath.Abs(outputRoot)
	if err != nil {
		return settings{}, fmt.Errorf("failed to resolve output path %q: %w", cfg.OutputRoot, err)
	}
	s.OutputDir = config.OutputDir(outputRoot)
	return s, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
