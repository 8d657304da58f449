package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var Version = "dev"

func init() {
	if Version != "dev" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	// Local build — use VCS info for a short, readable version.
	var revision, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) >= 7 {
				revision = s.Value[:7]
			}
		case "vcs.modified":
			if s.Value == "true" {
				modified = "-dirty"
			}
		}
	}
	if revision != "" {
		Version = "dev+" + revision + modified
		return
	}

	// go install @version — no VCS info, but module version is set.
	if v := info.Main.Version; v != "" && v != "(devel)" {
		Version = v
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tidygate",
		Short:   fmt.Sprintf("tidygate %s — clang-tidy commit gate for CMake projects", Version),
		Version: Version,
	}

	rootCmd.SetVersionTemplate("tidygate version {{.Version}}\n")

	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tidygate version %s\n", Version)
		},
	}

	rootCmd.AddCommand(buildRunCmd(), buildConfigCmd(), buildInitCmd(), buildInstallCmd(), versionCmd)
	return rootCmd
}

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		// Some failures carry a specific exit status (missing database,
		// failed cmake command); everything else blocks the commit with 1.
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}
