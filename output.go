package main

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/colorstring"
)

const (
	headerStyle = "[bold][blue]"
	nameStyle   = "[green]"
	totalLabel  = "total"
)

// lineSep describes a horizontal rule: the fill rune, the rune where it
// crosses a column separator, and the runes used at the outer borders.
type lineSep struct {
	line, junc, left, right rune
}

// tableFormat controls how the grid around the cells is drawn. A zero rune
// means nothing is drawn in that position.
type tableFormat struct {
	colSep      rune
	leftBorder  rune
	rightBorder rune
	padding     int

	top, title, intern, bottom *lineSep
}

var (
	boxRule   = &lineSep{line: '-', junc: '+', left: '+', right: '+'}
	titleRule = &lineSep{line: '=', junc: '+', left: '+', right: '+'}

	// formatBoxed is the default grid: every cell boxed, header underlined with '='.
	formatBoxed = tableFormat{
		colSep:      '|',
		leftBorder:  '|',
		rightBorder: '|',
		padding:     1,
		top:         boxRule,
		title:       titleRule,
		intern:      boxRule,
		bottom:      boxRule,
	}

	// formatBlank keeps the boxed layout but renders borders and separators as blanks.
	formatBlank = tableFormat{
		colSep:     ' ',
		leftBorder: ' ',
		padding:    1,
	}

	// formatPure is the minimal layout: columns divided by a single space.
	formatPure = tableFormat{
		colSep: ' ',
	}
)

// cell is one table cell. style is a colorstring prefix such as "[green]".
type cell struct {
	text  string
	style string
}

// chooseFormat picks the grid for cfg. Pure wins over the separator toggle.
func chooseFormat(cfg DisplayConfig) tableFormat {
	switch {
	case cfg.Pure:
		return formatPure
	case !cfg.SeparatorsEnabled:
		return formatBlank
	default:
		return formatBoxed
	}
}

// headerCells returns the header row for the enabled columns.
func headerCells(cfg DisplayConfig) []cell {
	var labels []string
	if cfg.ShowLines {
		labels = append(labels, "lines")
	}
	if cfg.ShowWords {
		labels = append(labels, "words")
	}
	if cfg.ShowChars {
		labels = append(labels, "characters")
	}
	if cfg.ShowTokens {
		labels = append(labels, "tokens")
	}
	labels = append(labels, "file")

	cells := make([]cell, len(labels))
	for i, l := range labels {
		cells[i] = cell{text: l, style: headerStyle}
	}
	return cells
}

// countCells renders the enabled count columns followed by the name column.
func countCells(cfg DisplayConfig, lines, words, chars, tokens int, name string) []cell {
	var cells []cell
	if cfg.ShowLines {
		cells = append(cells, cell{text: strconv.Itoa(lines)})
	}
	if cfg.ShowWords {
		cells = append(cells, cell{text: strconv.Itoa(words)})
	}
	if cfg.ShowChars {
		cells = append(cells, cell{text: strconv.Itoa(chars)})
	}
	if cfg.ShowTokens {
		cells = append(cells, cell{text: strconv.Itoa(tokens)})
	}
	return append(cells, cell{text: name, style: nameStyle})
}

// tableRows builds the data rows, plus a totals row when more than one file
// was counted.
func tableRows(r Report, cfg DisplayConfig) [][]cell {
	rows := make([][]cell, 0, len(r.Files)+1)
	for _, fs := range r.Files {
		rows = append(rows, countCells(cfg, fs.Lines, fs.Words, fs.Characters, fs.Tokens, fs.Name))
	}
	if len(r.Files) > 1 {
		t := r.Total
		rows = append(rows, countCells(cfg, t.Lines, t.Words, t.Characters, t.Tokens, totalLabel))
	}
	return rows
}

// formatTable renders the report as a table according to cfg.
func formatTable(r Report, cfg DisplayConfig) string {
	var header []cell
	if cfg.HeadersEnabled {
		header = headerCells(cfg)
	}
	rows := tableRows(r, cfg)

	tw := &tableWriter{
		format: chooseFormat(cfg),
		color:  colorstring.Colorize{Colors: colorstring.DefaultColors, Disable: !cfg.ColorEnabled},
	}
	return tw.render(header, rows)
}

type tableWriter struct {
	format tableFormat
	color  colorstring.Colorize
	widths []int
	b      strings.Builder
}

func (tw *tableWriter) render(header []cell, rows [][]cell) string {
	tw.measure(header)
	for _, row := range rows {
		tw.measure(row)
	}
	if len(tw.widths) == 0 {
		return ""
	}

	f := tw.format
	tw.rule(f.top)
	if header != nil {
		tw.row(header)
		if len(rows) > 0 {
			tw.rule(f.title)
		}
	}
	for i, row := range rows {
		if i > 0 {
			tw.rule(f.intern)
		}
		tw.row(row)
	}
	tw.rule(f.bottom)
	return tw.b.String()
}

// measure widens columns to fit row, counting terminal display cells.
func (tw *tableWriter) measure(row []cell) {
	for i, c := range row {
		w := runewidth.StringWidth(c.text)
		if i >= len(tw.widths) {
			tw.widths = append(tw.widths, w)
		} else if w > tw.widths[i] {
			tw.widths[i] = w
		}
	}
}

func (tw *tableWriter) rule(sep *lineSep) {
	if sep == nil {
		return
	}
	f := tw.format
	if f.leftBorder != 0 {
		tw.b.WriteRune(sep.left)
	}
	for i, w := range tw.widths {
		if i > 0 && f.colSep != 0 {
			tw.b.WriteRune(sep.junc)
		}
		tw.b.WriteString(strings.Repeat(string(sep.line), w+2*f.padding))
	}
	if f.rightBorder != 0 {
		tw.b.WriteRune(sep.right)
	}
	tw.b.WriteByte('\n')
}

func (tw *tableWriter) row(row []cell) {
	f := tw.format
	var line strings.Builder
	if f.leftBorder != 0 {
		line.WriteRune(f.leftBorder)
	}
	pad := strings.Repeat(" ", f.padding)
	for i, w := range tw.widths {
		if i > 0 && f.colSep != 0 {
			line.WriteRune(f.colSep)
		}
		var c cell
		if i < len(row) {
			c = row[i]
		}
		line.WriteString(pad)
		line.WriteString(tw.styled(c))
		line.WriteString(strings.Repeat(" ", w-runewidth.StringWidth(c.text)))
		line.WriteString(pad)
	}
	s := line.String()
	if f.rightBorder != 0 {
		s += string(f.rightBorder)
	} else {
		s = strings.TrimRight(s, " ")
	}
	tw.b.WriteString(s)
	tw.b.WriteByte('\n')
}

// styled wraps the cell text in ANSI codes. Only the style prefix goes through
// colorstring so that brackets inside file names are left alone.
func (tw *tableWriter) styled(c cell) string {
	if c.style == "" || tw.color.Disable {
		return c.text
	}
	return tw.color.Color(c.style) + c.text + tw.color.Color("[reset]")
}
