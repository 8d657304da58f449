package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// exitError carries a specific process exit status through cobra's
// error return up to main. The original hook contract distinguishes a
// missing compilation database (2) from a blocked commit (1), and a
// failed cmake command propagates its own status.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// ensureCompileCommands resolves the compilation database, optionally
// regenerating it first via the configured cmake commands. Returns the
// directory to hand to clang-tidy as -p (the database's parent).
//
// The cmake commands run once, in order, through `sh -c` in CMakeCwd,
// before any analysis starts. With CMakeIfMissing they are skipped
// entirely when the database already exists.
func ensureCompileCommands(opts *Options) (string, error) {
	ccPath := opts.CompileCommands
	if ccPath == "" {
		ccPath = filepath.Join(opts.BuildDir, "compile_commands.json")
	}

	needCMake := false
	if len(opts.CMake) > 0 {
		if opts.CMakeIfMissing {
			needCMake = !fileExists(ccPath)
		} else {
			needCMake = true
		}
	}

	if needCMake {
		for _, cmdline := range opts.CMake {
			debugf("running cmake command", "cmd", cmdline, "cwd", opts.CMakeCwd)
			c := exec.Command("sh", "-c", cmdline)
			c.Dir = opts.CMakeCwd
			c.Stdout = os.Stderr
			c.Stderr = os.Stderr
			if err := c.Run(); err != nil {
				code := 1
				var ee *exec.ExitError
				if errors.As(err, &ee) && ee.ExitCode() > 0 {
					code = ee.ExitCode()
				}
				return "", &exitError{code: code, msg: fmt.Sprintf("cmake command failed: %s", cmdline)}
			}
		}
	}

	if !fileExists(ccPath) {
		return "", &exitError{
			code: 2,
			msg: fmt.Sprintf("no compile_commands.json at %s (provide --compile-commands or --build-dir, or --cmake to generate it)",
				ccPath),
		}
	}

	abs, err := filepath.Abs(ccPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", ccPath, err)
	}
	return filepath.Dir(abs), nil
}
