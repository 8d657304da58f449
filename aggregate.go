package main

import (
	"fmt"
	"strings"
)

// Verdict is the aggregate outcome of a run. Higher values take
// precedence when results disagree.
type Verdict int

const (
	VerdictSuccess Verdict = iota
	VerdictFindings
	VerdictFixesApplied
	VerdictExecError
)

func (v Verdict) String() string {
	switch v {
	case VerdictSuccess:
		return "success"
	case VerdictFindings:
		return "findings-reported"
	case VerdictFixesApplied:
		return "fix-applied-needs-restage"
	case VerdictExecError:
		return "execution-error"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// aggregate folds the full result set into one verdict plus a report.
// The verdict is the maximum per-file verdict, so it is independent of
// completion order; the report walks results in their input (selection)
// order, keeping it reproducible across runs.
func aggregate(results []InvocationResult) (Verdict, string) {
	verdict := VerdictSuccess
	for _, r := range results {
		if v := r.verdict(); v > verdict {
			verdict = v
		}
	}
	return verdict, buildReport(verdict, results)
}

// modifiedFiles returns the files rewritten in place, selection order.
func modifiedFiles(results []InvocationResult) []string {
	var files []string
	for _, r := range results {
		if r.Changed {
			files = append(files, r.File)
		}
	}
	return files
}

func buildReport(verdict Verdict, results []InvocationResult) string {
	if verdict == VerdictSuccess {
		return ""
	}
	var b strings.Builder

	switch verdict {
	case VerdictExecError:
		// Per-file status lines first: which files failed to launch,
		// with the rest as context.
		for _, r := range results {
			switch {
			case r.LaunchErr != nil:
				fmt.Fprintf(&b, "%s: could not run analyzer: %v\n", r.File, r.LaunchErr)
			case r.Signaled:
				fmt.Fprintf(&b, "%s: analyzer terminated by signal\n", r.File)
			case r.ExitCode != 0:
				fmt.Fprintf(&b, "%s: exit status %d\n", r.File, r.ExitCode)
			default:
				fmt.Fprintf(&b, "%s: ok\n", r.File)
			}
		}
	case VerdictFixesApplied:
		b.WriteString("fixes were applied, re-stage and retry:\n")
		for _, f := range modifiedFiles(results) {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}

	// Captured diagnostics of every failing file, grouped by file in
	// selection order.
	for _, r := range results {
		if r.verdict() == VerdictSuccess || strings.TrimSpace(r.Output) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n=== %s ===\n%s\n", r.File, strings.TrimRight(r.Output, "\n"))
	}
	return b.String()
}
