package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// ScanPaths expands files and directories into the list of analyzable
// documents. Directories are walked recursively with glob-based excludes;
// only paths whose extension maps to a registered grammar are kept.
func (s *Service) ScanPaths(paths []string) ([]string, error) {
	dirGlobs, err := compileGlobs(s.cfg.Exclude.Dirs)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude dir pattern: %w", err)
	}
	fileGlobs, err := compileGlobs(s.cfg.Exclude.Files)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude file pattern: %w", err)
	}

	seen := make(map[string]bool)
	var files []string

	addFile := func(path string) {
		if seen[path] {
			return
		}
		if s.registry.DetectLanguage(path) == "" {
			return
		}
		for _, g := range fileGlobs {
			if g.Match(filepath.Base(path)) {
				return
			}
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(d.Name()) {
						return filepath.SkipDir
					}
				}
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
