package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// initDefaults seeds both the wizard and the --defaults path.
type initDefaults struct {
	BuildDir       string
	Checks         string
	IncludeHeaders bool
	Fix            bool
	GenerateCMake  bool
}

func starterDefaults() initDefaults {
	return initDefaults{
		BuildDir:      "build",
		Checks:        "clang-analyzer-*,bugprone-*,modernize-*",
		GenerateCMake: true,
	}
}

func buildInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Generate a starter tidygate.toml in the current directory",
		SilenceUsage: true,
		RunE:         runInit,
	}
	cmd.Flags().Bool("force", false, "overwrite existing tidygate.toml")
	cmd.Flags().Bool("defaults", false, "skip the wizard and write default settings")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	dest := filepath.Join(dir, configFileName)
	force, _ := cmd.Flags().GetBool("force")
	if fileExists(dest) {
		if !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
		}
		warnf("overwriting existing %s", configFileName)
	}

	d := starterDefaults()
	useDefaults, _ := cmd.Flags().GetBool("defaults")
	if !useDefaults && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := runWizard(&d); err != nil {
			return err
		}
	}

	if err := os.WriteFile(dest, []byte(buildStarterTOML(d)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", configFileName, err)
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		infof("created %s", configFileName)
		hintf("edit %s to adjust checks, then run `tidygate install`", configFileName)
	}
	return nil
}

// runWizard collects the starter settings interactively.
func runWizard(d *initDefaults) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("CMake build directory").
				Description("must contain (or will receive) compile_commands.json").
				Value(&d.BuildDir),
			huh.NewInput().
				Title("Checks pattern").
				Description("clang-tidy -checks value; leave empty to use .clang-tidy").
				Value(&d.Checks),
			huh.NewConfirm().
				Title("Analyze staged headers too?").
				Value(&d.IncludeHeaders),
			huh.NewConfirm().
				Title("Apply fixes in place (-fix)?").
				Value(&d.Fix),
			huh.NewConfirm().
				Title("Generate the compilation database with CMake when missing?").
				Value(&d.GenerateCMake),
		),
	)
	return form.Run()
}

// buildStarterTOML renders the chosen settings as a commented config.
func buildStarterTOML(d initDefaults) string {
	var b strings.Builder
	b.WriteString("# tidygate configuration — see `tidygate run --help` for the matching flags\n\n")
	fmt.Fprintf(&b, "build_dir = %q\n", d.BuildDir)
	if d.Checks != "" {
		fmt.Fprintf(&b, "checks = %q\n", d.Checks)
	} else {
		b.WriteString("# checks = \"modernize-*,bugprone-*\"\n")
	}
	b.WriteString("# header_filter = \".*\"\n")
	b.WriteString("# warnings_as_errors = \"*\"\n")
	fmt.Fprintf(&b, "include_headers = %t\n", d.IncludeHeaders)
	fmt.Fprintf(&b, "fix = %t\n", d.Fix)
	if d.GenerateCMake {
		fmt.Fprintf(&b, "\ncmake = [%q]\n", "cmake -S . -B "+d.BuildDir+" -DCMAKE_EXPORT_COMPILE_COMMANDS=ON")
		b.WriteString("cmake_if_missing = true\n")
	}
	return b.String()
}
