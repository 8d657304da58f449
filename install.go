package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const preCommitConfig = ".pre-commit-config.yaml"

// sourceFilePattern matches every extension the selector recognizes,
// headers included; the include-headers flag still decides whether the
// headers are analyzed.
const sourceFilePattern = `\.(c|cc|cpp|cxx|m|mm|h|hh|hpp|hxx|ipp|ixx)$`

func buildInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "install",
		Short:        "Add or update the tidygate hook in .pre-commit-config.yaml",
		SilenceUsage: true,
		RunE:         runInstall,
	}
	cmd.Flags().BoolP("dry-run", "n", false, "show the resulting config without writing it")
	return cmd
}

// tidygateHook is the local-repo hook entry written into the config.
func tidygateHook() map[string]interface{} {
	return map[string]interface{}{
		"id":             "tidygate",
		"name":           "tidygate",
		"entry":          "tidygate run",
		"language":       "system",
		"files":          sourceFilePattern,
		"pass_filenames": true,
	}
}

func runInstall(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(preCommitConfig)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no %s found — run `pre-commit sample-config > %s` first", preCommitConfig, preCommitConfig)
		}
		return fmt.Errorf("reading %s: %w", preCommitConfig, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", preCommitConfig, err)
	}
	if raw == nil {
		raw = make(map[string]interface{})
	}

	changed := patchConfig(raw)

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !changed {
		if !quiet {
			infof("tidygate hook already configured in %s", preCommitConfig)
		}
		return nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", preCommitConfig, err)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Print(string(out))
		return nil
	}

	if err := os.WriteFile(preCommitConfig, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", preCommitConfig, err)
	}
	if !quiet {
		infof("added tidygate hook to %s", preCommitConfig)
		hintf("run `pre-commit install` to activate it")
	}
	return nil
}

// patchConfig inserts or updates the tidygate hook entry in the parsed
// config, preserving everything else as-is. Reports whether the config
// was modified.
func patchConfig(raw map[string]interface{}) bool {
	hook := tidygateHook()

	repos, _ := raw["repos"].([]interface{})
	for _, r := range repos {
		repo, ok := r.(map[string]interface{})
		if !ok || repo["repo"] != "local" {
			continue
		}
		hooks, _ := repo["hooks"].([]interface{})
		for i, h := range hooks {
			entry, ok := h.(map[string]interface{})
			if !ok || entry["id"] != "tidygate" {
				continue
			}
			if hookEqual(entry, hook) {
				return false
			}
			hooks[i] = hook
			repo["hooks"] = hooks
			return true
		}
		// Existing local repo without a tidygate hook.
		repo["hooks"] = append(hooks, hook)
		return true
	}

	// No local repo yet — append one.
	raw["repos"] = append(repos, map[string]interface{}{
		"repo":  "local",
		"hooks": []interface{}{hook},
	})
	return true
}

// hookEqual compares the fields tidygate manages; extra user-added
// keys (args, stages) never count as drift.
func hookEqual(existing, want map[string]interface{}) bool {
	for k, v := range want {
		if existing[k] != v {
			return false
		}
	}
	return true
}
