package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func buildConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show resolved settings and their sources",
		Long: `Show resolved settings and their sources.

Displays the built-in defaults followed by the values a tidygate.toml
in the current directory overrides. Flags passed to ` + "`tidygate run`" + `
override both and are not shown here.`,
		SilenceUsage: true,
		RunE:         runConfig,
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	defaults := defaultOptions()

	fmt.Println(dimStyle.Render("# defaults"))
	printSetting("build_dir", defaults.BuildDir)
	printSetting("cmake_cwd", defaults.CMakeCwd)
	printSetting("jobs", strconv.Itoa(defaults.Jobs))

	cfg, found, err := loadConfigFile(configFileName)
	if err != nil {
		return err
	}
	if !found {
		fmt.Println()
		fmt.Fprintln(os.Stderr, hintStyle.Render("  no tidygate.toml found (run `tidygate init` to create one)"))
		return nil
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("# " + configFileName))
	printFileSettings(cfg)

	fmt.Println()
	fmt.Fprintln(os.Stderr, hintStyle.Render("  flags passed to `tidygate run` override these values"))
	return nil
}

// printFileSettings prints only the keys the config file actually sets.
func printFileSettings(cfg tidygateTOML) {
	if cfg.BuildDir != "" {
		printSetting("build_dir", cfg.BuildDir)
	}
	if cfg.CompileCommands != "" {
		printSetting("compile_commands", cfg.CompileCommands)
	}
	if len(cfg.CMake) > 0 {
		printSetting("cmake", strings.Join(cfg.CMake, " && "))
	}
	if cfg.CMakeIfMissing {
		printSetting("cmake_if_missing", "true")
	}
	if cfg.CMakeCwd != "" {
		printSetting("cmake_cwd", cfg.CMakeCwd)
	}
	if cfg.Checks != "" {
		printSetting("checks", cfg.Checks)
	}
	if cfg.HeaderFilter != "" {
		printSetting("header_filter", cfg.HeaderFilter)
	}
	if cfg.WarningsAsErrors != "" {
		printSetting("warnings_as_errors", cfg.WarningsAsErrors)
	}
	if cfg.IncludeHeaders {
		printSetting("include_headers", "true")
	}
	if cfg.Jobs > 0 {
		printSetting("jobs", strconv.Itoa(cfg.Jobs))
	}
	if cfg.Fix {
		printSetting("fix", "true")
	}
	if cfg.FormatStyle != "" {
		printSetting("format_style", cfg.FormatStyle)
	}
	if len(cfg.ExtraArgs) > 0 {
		printSetting("extra_args", strings.Join(cfg.ExtraArgs, " "))
	}
	if len(cfg.ExtraArgsBefore) > 0 {
		printSetting("extra_args_before", strings.Join(cfg.ExtraArgsBefore, " "))
	}
}

func printSetting(key, value string) {
	fmt.Printf("%s = %s\n", key, valueStyle.Render(value))
}
