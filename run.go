package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func buildRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [FILES...] [-- CLANG-TIDY-ARGS...]",
		Short: "Run clang-tidy over staged files and gate the commit",
		Long: `Run clang-tidy over the given files using a CMake compilation database.

Files with non-C/C++ extensions are skipped, so the whole staged file
list can be passed through as-is. The commit is blocked (non-zero exit)
when clang-tidy reports findings, when --fix rewrote files that must be
re-staged, or when the analyzer could not be executed at all.

Anything after -- is passed to clang-tidy verbatim.`,
		SilenceUsage: true,
		RunE:         runRun,
	}

	cmd.Flags().StringP("build-dir", "B", "build", "CMake build directory containing compile_commands.json")
	cmd.Flags().StringP("compile-commands", "C", "", "explicit path to compile_commands.json (overrides --build-dir)")
	cmd.Flags().StringArray("cmake", nil, "shell command to (re)generate compile_commands.json (repeatable)")
	cmd.Flags().Bool("cmake-if-missing", false, "only run --cmake commands when compile_commands.json is missing")
	cmd.Flags().String("cmake-cwd", ".", "working directory for --cmake commands")
	cmd.Flags().String("checks", "", "clang-tidy checks pattern (e.g. 'modernize-*,bugprone-*')")
	cmd.Flags().String("header-filter", "", "regex of headers to diagnose")
	cmd.Flags().String("warnings-as-errors", "", "checks pattern to upgrade from warnings to errors (e.g. '*')")
	cmd.Flags().Bool("include-headers", false, "also analyze header files passed by pre-commit")
	cmd.Flags().IntP("jobs", "j", 0, "maximum parallel clang-tidy processes (default: CPU count)")
	cmd.Flags().Bool("fix", false, "apply clang-tidy fixes in place; the commit fails if files change")
	cmd.Flags().String("format-style", "", "formatting style for --fix (e.g. 'file' or 'llvm')")
	cmd.Flags().StringArray("extra-arg", nil, "argument appended to the compiler command line (repeatable)")
	cmd.Flags().StringArray("extra-arg-before", nil, "argument prepended to the compiler command line (repeatable)")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel.Set(slog.LevelDebug)
	}

	files, passThrough := splitDash(cmd, args)

	opts, err := resolveOptions(cmd, passThrough)
	if err != nil {
		return err
	}

	selected := selectFiles(files, opts.IncludeHeaders)
	if len(selected) == 0 {
		debugf("no eligible files", "candidates", len(files))
		return nil
	}

	databaseDir, err := ensureCompileCommands(opts)
	if err != nil {
		return err
	}
	debugf("compilation database resolved", "dir", databaseDir)

	invs := buildInvocations(opts, databaseDir, selected)
	results := runPool(invs, opts.Jobs, opts.Fix, !quiet)

	verdict, report := aggregate(results)
	debugf("aggregate verdict", "verdict", verdict.String(), "files", len(results))

	switch verdict {
	case VerdictSuccess:
		if !quiet {
			infof("%d files clean", len(selected))
		}
		return nil

	case VerdictFindings:
		if !quiet {
			errorf("clang-tidy reported issues")
			hintf("fix the findings above, then commit again")
		}
		return errors.New("clang-tidy reported issues in staged files")

	case VerdictFixesApplied:
		if !quiet {
			errorf("clang-tidy applied fixes")
			for _, f := range modifiedFiles(results) {
				hintf("re-stage: %s", f)
			}
			hintf("git add the files above, then commit again")
			bell()
		}
		return errors.New("fixes were applied, re-stage the modified files")

	case VerdictExecError:
		if !quiet {
			errorf("analyzer could not be executed")
			fmt.Fprint(os.Stderr, report)
		}
		return errors.New("analyzer execution failed")
	}
	return nil
}

// splitDash separates file arguments from verbatim pass-through args
// after the -- marker.
func splitDash(cmd *cobra.Command, args []string) (files, passThrough []string) {
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		return args[:at], args[at:]
	}
	return args, nil
}
