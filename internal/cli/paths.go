package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flowlint/flowlint/pkg/errors"
)

// lintExtensions are the file extensions picked up when walking directories.
// Explicitly named files are linted regardless of extension.
var lintExtensions = map[string]bool{
	".mmd":      true,
	".mermaid":  true,
	".md":       true,
	".markdown": true,
}

// discoverPaths resolves CLI arguments (files, directories, globs) into a
// deduplicated, sorted list of lintable file paths.
func discoverPaths(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if err := errors.ValidatePath(arg); err != nil {
			return nil, err
		}

		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			if err := walkDir(arg, add); err != nil {
				return nil, err
			}
		case err == nil:
			add(arg)
		default:
			matches, globErr := filepath.Glob(arg)
			if globErr != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidGlob, globErr, "bad glob pattern %q", arg)
			}
			if len(matches) == 0 {
				return nil, errors.New(errors.ErrCodeFileNotFound, "no files match %q", arg)
			}
			for _, m := range matches {
				if mi, err := os.Stat(m); err == nil && mi.IsDir() {
					if err := walkDir(m, add); err != nil {
						return nil, err
					}
				} else {
					add(m)
				}
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// walkDir collects files with a recognized extension under root, skipping
// hidden directories.
func walkDir(root string, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if lintExtensions[strings.ToLower(filepath.Ext(path))] {
			add(path)
		}
		return nil
	})
}
