package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestInit_WritesStarterConfig(t *testing.T) {
	dir := chtmp(t)

	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"init", "--defaults", "-q"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		t.Fatal(err)
	}

	var cfg tidygateTOML
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("starter config is not valid TOML: %v", err)
	}
	if cfg.BuildDir != "build" {
		t.Errorf("build_dir = %q, want build", cfg.BuildDir)
	}
	if cfg.Checks == "" {
		t.Error("starter config should set a checks pattern")
	}
	if !cfg.CMakeIfMissing || len(cfg.CMake) == 0 {
		t.Errorf("starter config should regenerate a missing database: %+v", cfg)
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := chtmp(t)
	os.WriteFile(filepath.Join(dir, configFileName), []byte("build_dir = \"keep\"\n"), 0644)

	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"init", "--defaults", "-q"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error without --force")
	}
	if !strings.Contains(err.Error(), "--force") {
		t.Errorf("error should mention --force, got: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, configFileName))
	if !strings.Contains(string(data), "keep") {
		t.Errorf("existing config was clobbered:\n%s", data)
	}
}

func TestInit_ForceOverwrites(t *testing.T) {
	dir := chtmp(t)
	os.WriteFile(filepath.Join(dir, configFileName), []byte("build_dir = \"old\"\n"), 0644)

	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"init", "--defaults", "--force", "-q"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("init --force: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, configFileName))
	if strings.Contains(string(data), "old") {
		t.Errorf("config was not overwritten:\n%s", data)
	}
}

func TestBuildStarterTOML_OmittedChecksStayCommented(t *testing.T) {
	d := starterDefaults()
	d.Checks = ""
	out := buildStarterTOML(d)
	if !strings.Contains(out, "# checks =") {
		t.Errorf("empty checks should render as a commented example:\n%s", out)
	}

	var cfg tidygateTOML
	if err := toml.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("rendered config is not valid TOML: %v", err)
	}
	if cfg.Checks != "" {
		t.Errorf("checks should stay unset, got %q", cfg.Checks)
	}
}
