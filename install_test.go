package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const existingPreCommitConfig = `repos:
- repo: https://github.com/pre-commit/pre-commit-hooks
  rev: v4.5.0
  hooks:
  - id: trailing-whitespace
`

func TestInstall_NoConfig(t *testing.T) {
	chtmp(t)

	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"install", "-q"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error without a .pre-commit-config.yaml")
	}
	if !strings.Contains(err.Error(), "sample-config") {
		t.Errorf("error should hint at creating the config, got: %v", err)
	}
}

func TestInstall_AddsHook(t *testing.T) {
	dir := chtmp(t)
	os.WriteFile(filepath.Join(dir, preCommitConfig), []byte(existingPreCommitConfig), 0644)

	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"install", "-q"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("install: %v", err)
	}

	hooks := tidygateHooks(t, filepath.Join(dir, preCommitConfig))
	if len(hooks) != 1 {
		t.Fatalf("found %d tidygate hooks, want 1", len(hooks))
	}
	if hooks[0]["entry"] != "tidygate run" {
		t.Errorf("entry = %v", hooks[0]["entry"])
	}

	// The pre-existing repo must survive the patch.
	data, _ := os.ReadFile(filepath.Join(dir, preCommitConfig))
	if !strings.Contains(string(data), "trailing-whitespace") {
		t.Errorf("existing hooks were dropped:\n%s", data)
	}
}

func TestInstall_Idempotent(t *testing.T) {
	dir := chtmp(t)
	os.WriteFile(filepath.Join(dir, preCommitConfig), []byte(existingPreCommitConfig), 0644)

	for i := 0; i < 2; i++ {
		rootCmd := buildRootCmd()
		rootCmd.SetArgs([]string{"install", "-q"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("install #%d: %v", i+1, err)
		}
	}

	hooks := tidygateHooks(t, filepath.Join(dir, preCommitConfig))
	if len(hooks) != 1 {
		t.Errorf("found %d tidygate hooks after two installs, want 1", len(hooks))
	}
}

func TestInstall_DryRunDoesNotWrite(t *testing.T) {
	dir := chtmp(t)
	path := filepath.Join(dir, preCommitConfig)
	os.WriteFile(path, []byte(existingPreCommitConfig), 0644)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"install", "--dry-run", "-q"})
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("install --dry-run: %v", err)
	}

	buf := make([]byte, 8192)
	n, _ := r.Read(buf)
	if !strings.Contains(string(buf[:n]), "tidygate") {
		t.Errorf("dry run should print the patched config, got %q", buf[:n])
	}

	data, _ := os.ReadFile(path)
	if string(data) != existingPreCommitConfig {
		t.Errorf("dry run must not modify the file:\n%s", data)
	}
}

// tidygateHooks parses a pre-commit config and returns every hook
// entry with id tidygate.
func tidygateHooks(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}

	var found []map[string]interface{}
	repos, _ := raw["repos"].([]interface{})
	for _, r := range repos {
		repo, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		hooks, _ := repo["hooks"].([]interface{})
		for _, h := range hooks {
			entry, ok := h.(map[string]interface{})
			if ok && entry["id"] == "tidygate" {
				found = append(found, entry)
			}
		}
	}
	return found
}
