package main

// FileStats holds the counts computed for one successfully read file.
type FileStats struct {
	Name       string
	Lines      int
	Words      int
	Characters int
	Tokens     int // Populated only when token counting is enabled
}

// AggregateStats is the running sum of FileStats across processed files.
type AggregateStats struct {
	Lines      int
	Words      int
	Characters int
	Tokens     int
}

// Add folds one file's counts into the running totals.
func (a *AggregateStats) Add(fs FileStats) {
	a.Lines += fs.Lines
	a.Words += fs.Words
	a.Characters += fs.Characters
	a.Tokens += fs.Tokens
}

// Report is what the collector hands to the table renderer.
type Report struct {
	Files     []FileStats
	Total     AggregateStats
	Attempted int // Number of paths the collector was asked to process
}

// DisplayConfig is the resolved set of rendering toggles. It is computed once
// from the command line before any file is read and never mutated afterwards.
type DisplayConfig struct {
	ShowLines  bool
	ShowWords  bool
	ShowChars  bool
	ShowTokens bool

	ColorEnabled      bool
	SeparatorsEnabled bool
	HeadersEnabled    bool
	Pure              bool
}
