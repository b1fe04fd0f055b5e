package main

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func allColumns() DisplayConfig {
	return resolveDisplayConfig(displayFlags{NoColor: true})
}

func oneFileReport() Report {
	fs := FileStats{Name: "a.txt", Lines: 2, Words: 3, Characters: 6}
	var total AggregateStats
	total.Add(fs)
	return Report{Files: []FileStats{fs}, Total: total, Attempted: 1}
}

func twoFileReport() Report {
	files := []FileStats{
		{Name: "a.txt", Lines: 2, Words: 3, Characters: 6},
		{Name: "long-name.txt", Lines: 10, Words: 120, Characters: 1024},
	}
	var total AggregateStats
	for _, fs := range files {
		total.Add(fs)
	}
	return Report{Files: files, Total: total, Attempted: 2}
}

func TestFormatTable_Boxed(t *testing.T) {
	got := formatTable(oneFileReport(), allColumns())
	want := strings.Join([]string{
		"+-------+-------+------------+-------+",
		"| lines | words | characters | file  |",
		"+=======+=======+============+=======+",
		"| 2     | 3     | 6          | a.txt |",
		"+-------+-------+------------+-------+",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatTable_TotalsRow(t *testing.T) {
	got := formatTable(twoFileReport(), allColumns())
	want := strings.Join([]string{
		"+-------+-------+------------+---------------+",
		"| lines | words | characters | file          |",
		"+=======+=======+============+===============+",
		"| 2     | 3     | 6          | a.txt         |",
		"+-------+-------+------------+---------------+",
		"| 10    | 120   | 1024       | long-name.txt |",
		"+-------+-------+------------+---------------+",
		"| 12    | 123   | 1030       | total         |",
		"+-------+-------+------------+---------------+",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatTable_NoTotalsForSingleFile(t *testing.T) {
	got := formatTable(oneFileReport(), allColumns())
	assert.NotContains(t, got, totalLabel)
}

func TestFormatTable_WordsOnly(t *testing.T) {
	cfg := resolveDisplayConfig(displayFlags{Words: true, NoColor: true})
	got := formatTable(oneFileReport(), cfg)
	want := strings.Join([]string{
		"+-------+-------+",
		"| words | file  |",
		"+=======+=======+",
		"| 3     | a.txt |",
		"+-------+-------+",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatTable_NoSeparators(t *testing.T) {
	cfg := resolveDisplayConfig(displayFlags{Words: true, NoColor: true, NoSep: true})
	got := formatTable(oneFileReport(), cfg)
	want := strings.Join([]string{
		"  words   file",
		"  3       a.txt",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatTable_Pure(t *testing.T) {
	cfg := resolveDisplayConfig(displayFlags{Words: true, Pure: true})
	got := formatTable(oneFileReport(), cfg)
	want := strings.Join([]string{
		"words file",
		"3     a.txt",
		"",
	}, "\n")
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "\x1b[")
}

func TestFormatTable_NoHeaders(t *testing.T) {
	cfg := resolveDisplayConfig(displayFlags{Lines: true, NoColor: true, NoHeaders: true})
	got := formatTable(oneFileReport(), cfg)
	want := strings.Join([]string{
		"+---+-------+",
		"| 2 | a.txt |",
		"+---+-------+",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatTable_Color(t *testing.T) {
	cfg := resolveDisplayConfig(displayFlags{})
	require.True(t, cfg.ColorEnabled)

	got := formatTable(twoFileReport(), cfg)
	assert.Contains(t, got, "\x1b[1m\x1b[34mlines\x1b[0m")
	assert.Contains(t, got, "\x1b[1m\x1b[34mfile\x1b[0m")
	assert.Contains(t, got, "\x1b[32ma.txt\x1b[0m")
	assert.Contains(t, got, "\x1b[32mtotal\x1b[0m")
	assert.NotContains(t, got, "\x1b[32m2\x1b[0m", "count cells are not styled")

	// Escape codes must not widen the columns.
	plain := formatTable(twoFileReport(), allColumns())
	assert.Equal(t, plain, ansiPattern.ReplaceAllString(got, ""))
}

func TestFormatTable_BracketsInNamesAreNotStyles(t *testing.T) {
	r := oneFileReport()
	r.Files[0].Name = "[red]notes.txt"
	got := formatTable(r, resolveDisplayConfig(displayFlags{}))
	assert.Contains(t, got, "\x1b[32m[red]notes.txt\x1b[0m")
}

func TestFormatTable_NoColorNoSepHasNoEscapesOrSeparators(t *testing.T) {
	cfg := resolveDisplayConfig(displayFlags{NoColor: true, NoSep: true})
	got := formatTable(twoFileReport(), cfg)
	assert.NotContains(t, got, "\x1b[")
	assert.NotContains(t, got, "|")
	assert.NotContains(t, got, "+")
	assert.NotContains(t, got, "=")
	assert.Contains(t, got, "total")
}

func TestFormatTable_WideRunes(t *testing.T) {
	r := oneFileReport()
	r.Files[0].Name = "日本.txt"
	cfg := resolveDisplayConfig(displayFlags{Lines: true, NoColor: true})
	got := formatTable(r, cfg)
	want := strings.Join([]string{
		"+-------+----------+",
		"| lines | file     |",
		"+=======+==========+",
		"| 2     | 日本.txt |",
		"+-------+----------+",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatTable_TokensColumn(t *testing.T) {
	r := oneFileReport()
	r.Files[0].Tokens = 7
	cfg := resolveDisplayConfig(displayFlags{Words: true, Tokens: true, Pure: true})
	got := formatTable(r, cfg)
	want := strings.Join([]string{
		"words tokens file",
		"3     7      a.txt",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatTable_EmptyReportKeepsHeader(t *testing.T) {
	cfg := resolveDisplayConfig(displayFlags{Words: true, Pure: true})
	assert.Equal(t, "words file\n", formatTable(Report{}, cfg))

	cfg.HeadersEnabled = false
	assert.Equal(t, "", formatTable(Report{}, cfg))
}
