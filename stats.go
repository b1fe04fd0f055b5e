package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"unicode/utf8"
)

// ErrKind tells open failures apart from read failures.
type ErrKind int

const (
	ErrKindOpen ErrKind = iota
	ErrKindRead
)

// errInvalidUTF8 is returned when a file opens fine but is not text.
var errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// FileError is a per-file failure. It never aborts a run.
type FileError struct {
	Path string
	Kind ErrKind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("wc: %s: %s", e.Path, reason(e.Err))
}

func (e *FileError) Unwrap() error { return e.Err }

// reason strips the "open <path>:" prefix that os adds to path errors,
// leaving only the OS message (e.g. "no such file or directory").
func reason(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}

// Collector reads files one at a time and accumulates their counts.
type Collector struct {
	tokenizer TokenCounter // nil when token counting is disabled
	stats     []FileStats
	total     AggregateStats
	attempted int
}

// NewCollector returns a Collector. tk may be nil.
func NewCollector(tk TokenCounter) *Collector {
	return &Collector{tokenizer: tk}
}

// Collect reads path and records its counts. On error nothing is recorded.
func (c *Collector) Collect(path string) (FileStats, error) {
	c.attempted++

	f, err := os.Open(path)
	if err != nil {
		return FileStats{}, &FileError{Path: path, Kind: ErrKindOpen, Err: err}
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return FileStats{}, &FileError{Path: path, Kind: ErrKindRead, Err: err}
	}
	if !utf8.Valid(content) {
		return FileStats{}, &FileError{Path: path, Kind: ErrKindRead, Err: errInvalidUTF8}
	}

	stats := countContent(path, content)
	if c.tokenizer != nil && len(content) > 0 {
		stats.Tokens = c.tokenizer.CountTokens(string(content))
	}

	c.total.Add(stats)
	c.stats = append(c.stats, stats)
	slog.Debug("counted file", "path", path, "lines", stats.Lines, "words", stats.Words, "chars", stats.Characters)
	return stats, nil
}

// Report returns everything collected so far.
func (c *Collector) Report() Report {
	files := make([]FileStats, len(c.stats))
	copy(files, c.stats)
	return Report{Files: files, Total: c.total, Attempted: c.attempted}
}

// collectAll runs the collector over paths in order. Per-file errors are
// written to errW and the file is skipped.
func collectAll(paths []string, tk TokenCounter, errW io.Writer) Report {
	c := NewCollector(tk)
	for _, path := range paths {
		if _, err := c.Collect(path); err != nil {
			fmt.Fprintln(errW, err)
		}
	}
	return c.Report()
}

// countContent computes line, word and byte counts for content.
func countContent(name string, content []byte) FileStats {
	return FileStats{
		Name:       name,
		Lines:      countLines(content),
		Words:      countWords(content),
		Characters: len(content),
	}
}

// countLines counts newline-delimited segments. A final segment without a
// trailing newline still counts.
func countLines(content []byte) int {
	n := bytes.Count(content, []byte{'\n'})
	if len(content) > 0 && content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// countWords counts maximal runs of bytes that are not ASCII whitespace.
func countWords(content []byte) int {
	words := 0
	inWord := false
	for _, b := range content {
		if isASCIISpace(b) {
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
		}
	}
	return words
}

// isASCIISpace matches space, tab, newline, form feed and carriage return.
// Vertical tab is not included.
func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
