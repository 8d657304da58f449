package main

import (
	"os"
	"os/exec"
	"runtime"
)

// clangTidyExecutable resolves the analyzer binary: the CLANG_TIDY env
// var wins, then a PATH lookup, then the bare name as a last resort
// (which surfaces a launch error with a usable message).
func clangTidyExecutable() string {
	if v := os.Getenv("CLANG_TIDY"); v != "" {
		return v
	}
	if p, err := exec.LookPath("clang-tidy"); err == nil {
		return p
	}
	return "clang-tidy"
}

// baseArgs builds the argument vector shared by every invocation —
// everything except the file path itself. Pure construction.
func baseArgs(opts *Options, databaseDir string) []string {
	args := []string{"-p=" + databaseDir, "-quiet"}
	if opts.Checks != "" {
		args = append(args, "-checks="+opts.Checks)
	}
	if opts.HeaderFilter != "" {
		args = append(args, "-header-filter="+opts.HeaderFilter)
	}
	if opts.WarningsAsErrors != "" {
		args = append(args, "-warnings-as-errors="+opts.WarningsAsErrors)
	}
	for _, a := range opts.ExtraArgsBefore {
		args = append(args, "--extra-arg-before", a)
	}
	for _, a := range opts.ExtraArgs {
		args = append(args, "--extra-arg", a)
	}
	if opts.Fix {
		args = append(args, "-fix")
		if opts.FormatStyle != "" {
			args = append(args, "-format-style="+opts.FormatStyle)
		}
	}
	args = append(args, opts.PassThrough...)
	return args
}

// buildInvocations binds one Invocation per selected file, the file
// path appended last. On darwin the command is routed through xcrun so
// the Xcode toolchain's clang-tidy resolves its SDK paths; an explicit
// CLANG_TIDY override skips the shim.
func buildInvocations(opts *Options, databaseDir string, files []string) []Invocation {
	exe := clangTidyExecutable()
	base := baseArgs(opts, databaseDir)

	invs := make([]Invocation, len(files))
	for i, f := range files {
		argv := make([]string, 0, len(base)+2)
		path := exe
		if runtime.GOOS == "darwin" && os.Getenv("CLANG_TIDY") == "" {
			path = "xcrun"
			argv = append(argv, exe)
		}
		argv = append(argv, base...)
		argv = append(argv, f)
		invs[i] = Invocation{File: f, Path: path, Args: argv}
	}
	return invs
}
