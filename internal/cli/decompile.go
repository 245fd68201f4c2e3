package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/morozRed/lwdecomp/internal/decompiler"
	"github.com/morozRed/lwdecomp/internal/fileutil"
	"github.com/morozRed/lwdecomp/internal/installpath"
	"github.com/morozRed/lwdecomp/internal/logging"
	"github.com/morozRed/lwdecomp/internal/pipeline"
	"github.com/morozRed/lwdecomp/internal/prompt"
	"github.com/morozRed/lwdecomp/internal/targets"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newDecompiler is replaced in tests.
var newDecompiler = func(path string, logger *zap.Logger) decompiler.Service {
	return decompiler.NewILSpyCmd(path, logger)
}

func RunDecompile(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	installFlag, err := OptionalStringFlag(cmd, "install-path")
	if err != nil {
		return err
	}
	skipConfirm, err := OptionalBoolFlag(cmd, "yes", false)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	verbose, err := OptionalBoolFlag(cmd, "verbose", false)
	if err != nil {
		return err
	}

	logger := logging.New(verbose, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	// Keep stdout clean for the JSON summary.
	var out io.Writer = cmd.OutOrStdout()
	if asJSON {
		out = cmd.ErrOrStderr()
	}
	prompter := prompt.New(cmd.InOrStdin(), out)

	resolver := &installpath.Resolver{
		CacheFile: s.CacheFile,
		Required:  targets.RequiredSubpaths(s.Targets),
		Candidate: installFlag,
		Prompter:  prompter,
		Out:       out,
	}
	installRoot, err := resolver.Resolve()
	if err != nil {
		return err
	}
	logger.Debug("resolved install path", zap.String("path", installRoot), zap.String("cache", s.CacheFile))

	if !skipConfirm {
		question := fmt.Sprintf("Do you want to decompile the %s dlls?", strings.Join(targets.Names(s.Targets), " and "))
		ok, err := prompter.Confirm(question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Decompilation aborted by user.")
			return nil
		}
	}

	summary, err := pipeline.Run(commandContext(cmd), pipeline.Options{
		InstallRoot: installRoot,
		OutputDir:   s.OutputDir,
		Targets:     s.Targets,
		Service:     newDecompiler(s.Config.Decompiler, logger),
		Out:         out,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Finished successfully.")
	if asJSON {
		return fileutil.PrintJSON(cmd.OutOrStdout(), summary)
	}
	return nil
}
