package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// sourceExts are the translation-unit extensions checked by default.
var sourceExts = map[string]bool{
	".c":   true,
	".cc":  true,
	".cpp": true,
	".cxx": true,
	".m":   true,
	".mm":  true,
}

// headerExts are only eligible with --include-headers; a header usually
// needs a translation unit in the compilation database to be analyzable.
var headerExts = map[string]bool{
	".h":   true,
	".hh":  true,
	".hpp": true,
	".hxx": true,
	".ipp": true,
	".ixx": true,
}

// eligible reports whether path's extension selects it for analysis.
// Extension comparison is case-insensitive.
func eligible(path string, includeHeaders bool) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return sourceExts[ext] || (includeHeaders && headerExts[ext])
}

// selectFiles filters candidate paths down to the analyzable set,
// preserving input order. Directories are walked recursively and their
// eligible files collected in place. Paths with unrecognized extensions
// are dropped silently — pre-commit passes every staged file through,
// not just C/C++ ones.
func selectFiles(candidates []string, includeHeaders bool) []string {
	var kept []string
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			filepath.WalkDir(c, func(p string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return nil
				}
				if eligible(p, includeHeaders) {
					kept = append(kept, p)
				}
				return nil
			})
			continue
		}
		if eligible(c, includeHeaders) {
			kept = append(kept, c)
		}
	}
	return kept
}
