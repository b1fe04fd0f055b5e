package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const languagesFile = "languages.yml"

// languageDef is one entry of languages.yml, in the linguist layout.
type languageDef struct {
	Type       string   `yaml:"type"`
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LanguageIndex resolves file paths to language names for --lang.
type LanguageIndex struct {
	defs       map[string]languageDef
	byExt      map[string]string // lower-cased extension with dot
	byFilename map[string]string
}

// languageSearchDirs lists where languages.yml is looked up, in order.
func languageSearchDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", appName))
	}
	return append(dirs, ".")
}

// loadLanguageIndex parses the first languages.yml found in dirs.
func loadLanguageIndex(dirs []string) (*LanguageIndex, error) {
	for _, dir := range dirs {
		path := filepath.Join(dir, languagesFile)
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error reading language file %s: %w", path, err)
		}

		var defs map[string]languageDef
		if err := yaml.Unmarshal(raw, &defs); err != nil {
			return nil, fmt.Errorf("error parsing language file %s: %w", path, err)
		}
		idx := newLanguageIndex(defs)
		slog.Debug("loaded language definitions", "file", path, "languages", len(idx.defs))
		return idx, nil
	}
	return nil, fmt.Errorf("%s not found in %s", languagesFile, strings.Join(dirs, ", "))
}

// newLanguageIndex builds the lookup tables. When two languages claim the
// same extension or file name, the first one seen keeps it.
func newLanguageIndex(defs map[string]languageDef) *LanguageIndex {
	idx := &LanguageIndex{
		defs:       defs,
		byExt:      make(map[string]string),
		byFilename: make(map[string]string),
	}
	for name, def := range defs {
		for _, ext := range def.Extensions {
			ext = strings.ToLower(ext)
			if _, taken := idx.byExt[ext]; !taken {
				idx.byExt[ext] = name
			}
		}
		for _, fn := range def.Filenames {
			if _, taken := idx.byFilename[fn]; !taken {
				idx.byFilename[fn] = name
			}
		}
	}
	return idx
}

// Len is the number of languages defined.
func (idx *LanguageIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.defs)
}

// Lookup names the language of path. Exact file names win over extensions.
func (idx *LanguageIndex) Lookup(path string) (string, bool) {
	if idx == nil {
		return "", false
	}
	base := filepath.Base(path)
	if name, ok := idx.byFilename[base]; ok {
		return name, true
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return "", false
	}
	name, ok := idx.byExt[ext]
	return name, ok
}

// Matches reports whether path is written in one of langs. Names compare
// case-insensitively and surrounding blanks are ignored.
func (idx *LanguageIndex) Matches(path string, langs []string) bool {
	name, ok := idx.Lookup(path)
	if !ok {
		return false
	}
	for _, want := range langs {
		if strings.EqualFold(strings.TrimSpace(want), name) {
			return true
		}
	}
	return false
}
