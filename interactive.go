package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// errSelectionAborted is returned when the user leaves the picker without choosing.
var errSelectionAborted = errors.New("interactive selection aborted")

// interactiveCandidates lists the regular files under root that the picker offers.
func interactiveCandidates(root string, showHidden bool) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		if !showHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for files: %w", err)
	}
	return candidates, nil
}

// runInteractiveFinder lets the user pick files under the current directory.
func runInteractiveFinder(showHidden bool) ([]string, error) {
	candidates, err := interactiveCandidates(".", showHidden)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no files found to select from")
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select files to count. Press Tab to multi-select, Enter to confirm."
			}
			path := candidates[i]
			info, statErr := os.Stat(path)
			if statErr != nil {
				return fmt.Sprintf("Path: %s\nError getting info: %v", path, statErr)
			}
			return fmt.Sprintf("Path: %s\nSize: %d bytes", path, info.Size())
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errSelectionAborted
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	selected := make([]string, len(idx))
	for i, index := range idx {
		selected[i] = candidates[index]
	}
	return selected, nil
}
