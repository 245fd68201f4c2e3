package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDecompiler = "LWDECOMP_DECOMPILER"
	EnvOutput     = "LWDECOMP_OUTPUT"
	EnvTargets    = "LWDECOMP_TARGETS"
	EnvCacheFile  = "LWDECOMP_CACHE_FILE"

	// DefaultDecompiler is looked up on PATH.
	DefaultDecompiler = "ilspycmd"
	// OutputDirName is created below the output root.
	OutputDirName = "decompiled"
)

// Config holds the run settings. Zero values fall back to defaults chosen
// by the caller (cache beside the executable, output in the working dir).
type Config struct {
	Decompiler  string
	OutputRoot  string
	TargetsFile string
	CacheFile   string
}

// Load reads .env files from dirs (missing files are skipped, earlier files
// win) and then the process environment.
func Load(dirs ...string) (Config, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cfg := Config{
		Decompiler:  strings.TrimSpace(os.Getenv(EnvDecompiler)),
		OutputRoot:  strings.TrimSpace(os.Getenv(EnvOutput)),
		TargetsFile: strings.TrimSpace(os.Getenv(EnvTargets)),
		CacheFile:   strings.TrimSpace(os.Getenv(EnvCacheFile)),
	}
	if cfg.Decompiler == "" {
		cfg.Decompiler = DefaultDecompiler
	}
	return cfg, nil
}

// OutputDir returns the decompilation output folder below root.
func OutputDir(root string) string {
	return filepath.Join(root, OutputDirName)
}
