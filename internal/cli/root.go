package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lwdecomp",
		Short: "Decompile the Logic World server and client assemblies",
		Long: `lwdecomp finds your Logic World install, decompiles the game's server
and client DLLs with ilspycmd and lays the sources out one folder per
namespace segment, next to a Unity .asmdef file for every assembly.

Output is written to ./decompiled/LWServer and ./decompiled/LWClient.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunDecompile,
	}
	addRunFlags(rootCmd)

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the install path, decompiler and decompiled output",
		Args:  cobra.NoArgs,
		RunE:  RunDoctor,
	}
	addConfigFlags(doctorCmd)
	doctorCmd.Flags().Bool("json", false, "Print machine-readable doctor output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lwdecomp %s\n", version)
		},
	}

	rootCmd.AddCommand(doctorCmd, versionCmd)
	return rootCmd
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("output", "", "Directory that receives the decompiled/ folder (default: working directory)")
	cmd.Flags().String("targets", "", "YAML file describing the targets to decompile (default: server and client)")
	cmd.Flags().String("decompiler", "", "Path to the ilspycmd executable (default: ilspycmd on PATH)")
	cmd.Flags().String("cache-file", "", "File remembering the install path (default: .lwInstallPath beside the executable)")
}

func addRunFlags(cmd *cobra.Command) {
	addConfigFlags(cmd)
	cmd.Flags().String("install-path", "", "Logic World install directory; cached when valid")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().Bool("json", false, "Print machine-readable run summary")
	cmd.Flags().BoolP("verbose", "v", false, "Emit debug logs to stderr")
}
