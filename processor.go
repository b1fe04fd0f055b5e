package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// WalkOptions controls how directory arguments are expanded.
type WalkOptions struct {
	Recursive  bool
	ShowHidden bool
	NoIgnore   bool
	Include    []string
	Exclude    []string
	MaxDepth   int   // 0 for no limit
	MaxSize    int64 // bytes, 0 for no limit
	Langs      []string
	Languages  *LanguageIndex
}

// expandInputs turns the command line paths into the ordered list of files
// to count. Without Recursive every path passes through untouched, so a
// directory later fails as a read error.
func expandInputs(paths []string, opts WalkOptions) []string {
	if !opts.Recursive {
		return paths
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			// Let the collector report missing or unreadable paths.
			files = append(files, path)
			continue
		}
		walked, err := walkDirectory(path, opts)
		if err != nil {
			slog.Warn("skipping directory", "path", path, "error", err)
			continue
		}
		slog.Debug("expanded directory", "path", path, "files", len(walked))
		files = append(files, walked...)
	}
	return files
}

// parsePatterns splits a comma-separated string of patterns into a slice.
func parsePatterns(patterns string) []string {
	if patterns == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchesAnyPattern checks if name matches any of the glob patterns.
func matchesAnyPattern(name string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// walkDirectory walks root in lexical order and returns the regular files
// that pass the filters in opts.
func walkDirectory(root string, opts WalkOptions) ([]string, error) {
	var files []string
	var ignoreMatcher gitignore.IgnoreMatcher

	if !opts.NoIgnore {
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				slog.Warn("could not parse .gitignore", "path", gitIgnorePath, "error", err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	filterLangs := len(opts.Langs) > 0 && opts.Languages != nil

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("error accessing path", "path", path, "error", err)
			return nil
		}
		if path == root {
			return nil
		}

		baseName := d.Name()
		isDir := d.IsDir()

		// 1. Hidden
		if !opts.ShowHidden && isHidden(baseName) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		// 2. .gitignore; the matcher resolves path against root itself
		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		// 3. Exclude
		excluded, err := matchesAnyPattern(baseName, opts.Exclude)
		if err != nil {
			return err
		}
		if excluded {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if isDir {
			// 4. Max depth
			if opts.MaxDepth <= 0 {
				return nil
			}
			relPath, err := filepath.Rel(root, path)
			if err != nil {
				slog.Warn("skipping directory outside walk root", "path", path, "error", err)
				return fs.SkipDir
			}
			if countPathSeparators(relPath) >= opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		// 5. Include
		if len(opts.Include) > 0 {
			included, err := matchesAnyPattern(baseName, opts.Include)
			if err != nil {
				return err
			}
			if !included {
				return nil
			}
		}

		// 6. Language
		if filterLangs && !opts.Languages.Matches(path, opts.Langs) {
			return nil
		}

		// 7. Max size
		if opts.MaxSize > 0 {
			info, err := d.Info()
			if err != nil {
				slog.Warn("could not get file info", "path", path, "error", err)
				return nil
			}
			if info.Size() > opts.MaxSize {
				slog.Debug("skipping large file", "path", path, "size", info.Size())
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}
	return files, nil
}

// isHidden reports whether a base name starts with '.'. The "." and ".."
// entries are not hidden.
func isHidden(name string) bool {
	return name != "." && name != ".." && strings.HasPrefix(name, ".")
}

// countPathSeparators counts the separators in a relative path.
func countPathSeparators(path string) int {
	path = filepath.ToSlash(path)
	if path == "." || path == "" {
		return 0
	}
	return strings.Count(strings.Trim(path, "/"), "/")
}
