package main

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Invocation is one analyzer command bound to a single file.
type Invocation struct {
	File string   // the file being analyzed
	Path string   // executable to run
	Args []string // full argument vector, file path included
	Dir  string   // working directory, empty = inherit
}

// InvocationResult is the outcome of exactly one Invocation.
type InvocationResult struct {
	File      string
	ExitCode  int    // normal exit status; -1 when the process never exited normally
	Output    string // combined stdout+stderr
	Changed   bool   // file content differed after the run (fix mode)
	Signaled  bool   // terminated by a signal rather than exiting
	LaunchErr error  // process could not be started at all
}

// verdict classifies a single result. Execution failures outrank an
// applied fix, which outranks plain findings: each demands a different
// remediation from the committer.
func (r InvocationResult) verdict() Verdict {
	switch {
	case r.LaunchErr != nil || r.Signaled:
		return VerdictExecError
	case r.Changed:
		return VerdictFixesApplied
	case r.ExitCode != 0:
		return VerdictFindings
	}
	return VerdictSuccess
}

// runPool executes the invocations as independent child processes with
// at most jobs running concurrently. Invocations start in input order
// as slots free up; a failure never cancels or blocks the others, and
// every invocation produces exactly one result at its input position.
//
// When stream is set, each file's captured output is flushed to stderr
// as soon as that file completes — whole blocks only, under a lock, so
// concurrent processes never garble each other.
func runPool(invs []Invocation, jobs int, trackChanges, stream bool) []InvocationResult {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]InvocationResult, len(invs))

	var flushMu sync.Mutex
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, inv := range invs {
		g.Go(func() error {
			res := runOne(inv, trackChanges)
			if stream {
				flushMu.Lock()
				flushResult(res)
				flushMu.Unlock()
			}
			results[i] = res
			return nil
		})
	}
	g.Wait()
	return results
}

// runOne launches a single invocation and classifies its outcome. A
// process that could not start is a launch error, one killed by a
// signal is flagged as such; both are distinct from the analyzer
// exiting non-zero because it reported diagnostics.
func runOne(inv Invocation, trackChanges bool) InvocationResult {
	res := InvocationResult{File: inv.File, ExitCode: -1}

	var before [sha256.Size]byte
	var hashed bool
	if trackChanges {
		before, hashed = contentHash(inv.File)
	}

	cmd := exec.Command(inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	debugf("running analyzer", "file", inv.File, "cmd", inv.Path+" "+strings.Join(inv.Args, " "))
	err := cmd.Run()
	res.Output = buf.String()

	switch {
	case err == nil:
		res.ExitCode = 0
	default:
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			if code := ee.ExitCode(); code >= 0 {
				res.ExitCode = code
			} else {
				res.Signaled = true
			}
		} else {
			res.LaunchErr = err
		}
	}

	// Compare content, not the exit code: some checks return 0 even
	// after rewriting the file.
	if hashed {
		if after, ok := contentHash(inv.File); ok && after != before {
			res.Changed = true
		}
	}
	return res
}

// contentHash fingerprints a file for before/after comparison.
func contentHash(path string) ([sha256.Size]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [sha256.Size]byte{}, false
	}
	return sha256.Sum256(data), true
}

// flushResult emits one completed file's diagnostics to stderr.
func flushResult(res InvocationResult) {
	if res.LaunchErr != nil {
		errorf("%s: could not run analyzer: %v", res.File, res.LaunchErr)
		return
	}
	if res.Signaled {
		errorf("%s: analyzer terminated by signal", res.File)
	}
	if strings.TrimSpace(res.Output) == "" {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s\n%s\n",
		fileStyle.Render("=== "+res.File+" ==="),
		strings.TrimRight(res.Output, "\n"))
}
