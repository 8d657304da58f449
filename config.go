package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "tidygate.toml"

// tidygateTOML mirrors the keys of a tidygate.toml file. Unknown keys
// are silently ignored (forward compatible).
type tidygateTOML struct {
	BuildDir         string   `toml:"build_dir"`
	CompileCommands  string   `toml:"compile_commands"`
	CMake            []string `toml:"cmake"`
	CMakeIfMissing   bool     `toml:"cmake_if_missing"`
	CMakeCwd         string   `toml:"cmake_cwd"`
	Checks           string   `toml:"checks"`
	HeaderFilter     string   `toml:"header_filter"`
	WarningsAsErrors string   `toml:"warnings_as_errors"`
	IncludeHeaders   bool     `toml:"include_headers"`
	Jobs             int      `toml:"jobs"`
	Fix              bool     `toml:"fix"`
	FormatStyle      string   `toml:"format_style"`
	ExtraArgs        []string `toml:"extra_args"`
	ExtraArgsBefore  []string `toml:"extra_args_before"`
}

// Options is the fully resolved configuration for one run: defaults,
// overlaid by tidygate.toml, overlaid by explicitly passed flags.
type Options struct {
	BuildDir         string
	CompileCommands  string // explicit path, overrides BuildDir when set
	CMake            []string
	CMakeIfMissing   bool
	CMakeCwd         string
	Checks           string
	HeaderFilter     string
	WarningsAsErrors string
	IncludeHeaders   bool
	Jobs             int
	Fix              bool
	FormatStyle      string
	ExtraArgs        []string
	ExtraArgsBefore  []string
	PassThrough      []string // verbatim clang-tidy args after --
}

func defaultOptions() *Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	return &Options{
		BuildDir: "build",
		CMakeCwd: ".",
		Jobs:     jobs,
	}
}

// loadConfigFile parses a tidygate.toml. A missing file returns the
// zero value with found=false and no error.
func loadConfigFile(path string) (tidygateTOML, bool, error) {
	var cfg tidygateTOML
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return cfg, false, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, true, nil
}

// applyFile overlays values set in a tidygate.toml. Zero values mean
// "not set" (a false bool in the file is indistinguishable from the
// default, which is also false).
func (o *Options) applyFile(cfg tidygateTOML) {
	if cfg.BuildDir != "" {
		o.BuildDir = cfg.BuildDir
	}
	if cfg.CompileCommands != "" {
		o.CompileCommands = cfg.CompileCommands
	}
	if len(cfg.CMake) > 0 {
		o.CMake = cfg.CMake
	}
	if cfg.CMakeIfMissing {
		o.CMakeIfMissing = true
	}
	if cfg.CMakeCwd != "" {
		o.CMakeCwd = cfg.CMakeCwd
	}
	if cfg.Checks != "" {
		o.Checks = cfg.Checks
	}
	if cfg.HeaderFilter != "" {
		o.HeaderFilter = cfg.HeaderFilter
	}
	if cfg.WarningsAsErrors != "" {
		o.WarningsAsErrors = cfg.WarningsAsErrors
	}
	if cfg.IncludeHeaders {
		o.IncludeHeaders = true
	}
	if cfg.Jobs > 0 {
		o.Jobs = cfg.Jobs
	}
	if cfg.Fix {
		o.Fix = true
	}
	if cfg.FormatStyle != "" {
		o.FormatStyle = cfg.FormatStyle
	}
	if len(cfg.ExtraArgs) > 0 {
		o.ExtraArgs = append(o.ExtraArgs, cfg.ExtraArgs...)
	}
	if len(cfg.ExtraArgsBefore) > 0 {
		o.ExtraArgsBefore = append(o.ExtraArgsBefore, cfg.ExtraArgsBefore...)
	}
}

// applyFlags overlays flags that were explicitly passed on the command
// line. Changed() guards keep file values intact for untouched flags
// while still letting a flag reset a file value to its zero.
func (o *Options) applyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("build-dir") {
		o.BuildDir, _ = f.GetString("build-dir")
	}
	if f.Changed("compile-commands") {
		o.CompileCommands, _ = f.GetString("compile-commands")
	}
	if f.Changed("cmake") {
		o.CMake, _ = f.GetStringArray("cmake")
	}
	if f.Changed("cmake-if-missing") {
		o.CMakeIfMissing, _ = f.GetBool("cmake-if-missing")
	}
	if f.Changed("cmake-cwd") {
		o.CMakeCwd, _ = f.GetString("cmake-cwd")
	}
	if f.Changed("checks") {
		o.Checks, _ = f.GetString("checks")
	}
	if f.Changed("header-filter") {
		o.HeaderFilter, _ = f.GetString("header-filter")
	}
	if f.Changed("warnings-as-errors") {
		o.WarningsAsErrors, _ = f.GetString("warnings-as-errors")
	}
	if f.Changed("include-headers") {
		o.IncludeHeaders, _ = f.GetBool("include-headers")
	}
	if f.Changed("jobs") {
		o.Jobs, _ = f.GetInt("jobs")
	}
	if f.Changed("fix") {
		o.Fix, _ = f.GetBool("fix")
	}
	if f.Changed("format-style") {
		o.FormatStyle, _ = f.GetString("format-style")
	}
	if f.Changed("extra-arg") {
		extra, _ := f.GetStringArray("extra-arg")
		o.ExtraArgs = append(o.ExtraArgs, extra...)
	}
	if f.Changed("extra-arg-before") {
		extra, _ := f.GetStringArray("extra-arg-before")
		o.ExtraArgsBefore = append(o.ExtraArgsBefore, extra...)
	}
}

// resolveOptions builds the final Options for a run command.
//
// Precedence:
//  1. Built-in defaults (build dir "build", jobs = CPU count)
//  2. tidygate.toml in the current directory (pre-commit runs hooks
//     at the repo root)
//  3. Explicitly passed flags
func resolveOptions(cmd *cobra.Command, passThrough []string) (*Options, error) {
	o := defaultOptions()

	cfg, found, err := loadConfigFile(configFileName)
	if err != nil {
		return nil, err
	}
	if found {
		o.applyFile(cfg)
		debugf("loaded config file", "path", configFileName)
	}

	o.applyFlags(cmd)

	if o.Jobs < 1 {
		o.Jobs = 1
	}
	o.PassThrough = passThrough
	return o, nil
}

// fileExists reports whether path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
