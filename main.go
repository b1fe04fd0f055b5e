package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/jadenpxrk/wc/internal/stdlog"
)

const appName = "wc"

// version is the application version, set via ldflags.
var version string = "dev"

// options holds the raw command line values before resolution.
type options struct {
	// Count selection
	lines  bool
	words  bool
	chars  bool
	tokens bool

	// Styling
	noColor   bool
	noSep     bool
	noHeaders bool
	pure      bool

	// Input expansion
	recursive   bool
	showHidden  bool
	noIgnore    bool
	include     string
	exclude     string
	maxDepth    int
	maxSize     int64
	langs       string
	interactive bool

	// Output
	copyToClipboard bool

	// Token counting
	tokenizerType  string
	tokenizerModel string
	tokenizerFile  string

	cfgFile string
	verbose bool
}

// newRootCmd builds the wc command. Each call gets its own flag set and
// viper instance.
func newRootCmd() *cobra.Command {
	opts := &options{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "wc [flags] FILE...",
		Short: "Print line, word and character counts for each file as a table.",
		Long: `wc counts lines, words and characters (bytes) in each FILE and prints
them as a table, followed by a total row when more than one file was counted.
Files that cannot be opened or read are reported and skipped.`,
		Version: version,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.interactive {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Past argument validation, errors are not usage problems.
			cmd.SilenceUsage = true
			return run(cmd, v, opts, args)
		},
	}

	f := cmd.Flags()

	// Count selection
	f.BoolVarP(&opts.lines, "lines", "l", false, "Print the line counts")
	f.BoolVarP(&opts.words, "words", "w", false, "Print the word counts")
	f.BoolVarP(&opts.chars, "chars", "m", false, "Print the character counts")
	f.BoolVar(&opts.tokens, "tokens", false, "Print model token counts")

	// Styling
	f.BoolVar(&opts.noColor, "no-color", false, "Disable colorful output")
	v.BindPFlag("no_color", f.Lookup("no-color"))
	f.BoolVar(&opts.noSep, "no-sep", false, "Render borders and column separators as blanks")
	v.BindPFlag("no_sep", f.Lookup("no-sep"))
	f.BoolVar(&opts.noHeaders, "no-headers", false, "Do not print the header row")
	v.BindPFlag("no_headers", f.Lookup("no-headers"))
	f.BoolVar(&opts.pure, "pure", false, "Minimal borderless output without color")
	v.BindPFlag("pure", f.Lookup("pure"))

	// Input expansion
	f.BoolVarP(&opts.recursive, "recursive", "r", false, "Count every file under directory arguments")
	f.BoolVarP(&opts.showHidden, "hidden", "H", false, "Include hidden files and directories")
	v.BindPFlag("hidden", f.Lookup("hidden"))
	f.BoolVar(&opts.noIgnore, "no-ignore", false, "Don't respect .gitignore files")
	v.BindPFlag("no_ignore", f.Lookup("no-ignore"))
	f.StringVarP(&opts.include, "include", "i", "", "Patterns to include when recursing (comma-separated, e.g. *.go,*.md)")
	v.BindPFlag("include", f.Lookup("include"))
	f.StringVarP(&opts.exclude, "exclude", "e", "", "Patterns to exclude when recursing (comma-separated)")
	v.BindPFlag("exclude", f.Lookup("exclude"))
	f.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum directory depth to traverse (0 for no limit)")
	v.BindPFlag("max_depth", f.Lookup("max-depth"))
	f.Int64VarP(&opts.maxSize, "max-size", "s", 0, "Skip files larger than this many bytes when recursing (0 for no limit)")
	v.BindPFlag("max_size", f.Lookup("max-size"))
	f.StringVar(&opts.langs, "lang", "", "Only count files of these languages when recursing (comma-separated, needs languages.yml)")
	v.BindPFlag("lang", f.Lookup("lang"))
	f.BoolVar(&opts.interactive, "interactive", false, "Pick files with a fuzzy finder")

	// Output
	f.BoolVar(&opts.copyToClipboard, "copy", false, "Also copy the table (without color) to the clipboard")

	// Token counting
	f.StringVar(&opts.tokenizerType, "tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	v.BindPFlag("tokenizer", f.Lookup("tokenizer"))
	f.StringVar(&opts.tokenizerModel, "model", "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	v.BindPFlag("model", f.Lookup("model"))
	f.StringVar(&opts.tokenizerFile, "tokenizer-file", "", "Path to local tokenizer file")
	v.BindPFlag("tokenizer_file", f.Lookup("tokenizer-file"))

	f.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/wc/config.toml)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, opts *options, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	setupLogging(stderr, opts.verbose)
	initConfig(v, opts.cfgFile)

	paths := args
	if len(paths) == 0 && opts.interactive {
		selected, err := runInteractiveFinder(v.GetBool("hidden"))
		if errors.Is(err, errSelectionAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		paths = selected
	}

	var tokenizer TokenCounter
	if opts.tokens {
		tk, err := newTokenCounter(TokenCounterConfig{
			Backend: v.GetString("tokenizer"),
			Model:   v.GetString("model"),
			File:    v.GetString("tokenizer_file"),
		})
		if err != nil {
			fmt.Fprintf(stderr, "%s: token counting disabled: %v\n", appName, err)
		} else {
			tokenizer = tk
			defer tokenizer.Close()
		}
	}

	cfg := resolveDisplayConfig(displayFlags{
		Lines:     opts.lines,
		Words:     opts.words,
		Chars:     opts.chars,
		Tokens:    tokenizer != nil,
		NoColor:   v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		NoSep:     v.GetBool("no_sep"),
		NoHeaders: v.GetBool("no_headers"),
		Pure:      v.GetBool("pure"),
	})
	slog.Debug("resolved display config", "config", fmt.Sprintf("%+v", cfg))

	walk := WalkOptions{
		Recursive:  opts.recursive,
		ShowHidden: v.GetBool("hidden"),
		NoIgnore:   v.GetBool("no_ignore"),
		Include:    parsePatterns(v.GetString("include")),
		Exclude:    parsePatterns(v.GetString("exclude")),
		MaxDepth:   v.GetInt("max_depth"),
		MaxSize:    v.GetInt64("max_size"),
		Langs:      parsePatterns(v.GetString("lang")),
	}
	if walk.Recursive && len(walk.Langs) > 0 {
		ld, err := loadLanguageIndex(languageSearchDirs())
		if err != nil {
			slog.Warn("language filter disabled", "error", err)
		} else {
			walk.Languages = ld
		}
	}

	files := expandInputs(paths, walk)
	report := collectAll(files, tokenizer, stderr)
	slog.Debug("collection finished", "attempted", report.Attempted, "counted", len(report.Files))

	if _, err := io.WriteString(stdout, formatTable(report, cfg)); err != nil {
		return err
	}

	if opts.copyToClipboard {
		plain := cfg
		plain.ColorEnabled = false
		if err := clipboard.WriteAll(formatTable(report, plain)); err != nil {
			fmt.Fprintf(stderr, "%s: error writing to clipboard: %v\n", appName, err)
		}
	}
	return nil
}

// displayFlags are the raw toggles the display config is resolved from.
type displayFlags struct {
	Lines, Words, Chars, Tokens bool

	NoColor, NoSep, NoHeaders, Pure bool
}

// resolveDisplayConfig normalizes the flags into a DisplayConfig. When no
// count kind is requested lines, words and characters are all shown; tokens
// never count as a request. Pure turns off separators and color.
func resolveDisplayConfig(d displayFlags) DisplayConfig {
	cfg := DisplayConfig{
		ShowLines:         d.Lines,
		ShowWords:         d.Words,
		ShowChars:         d.Chars,
		ShowTokens:        d.Tokens,
		ColorEnabled:      !d.NoColor,
		SeparatorsEnabled: !d.NoSep,
		HeadersEnabled:    !d.NoHeaders,
		Pure:              d.Pure,
	}
	if !(d.Lines || d.Words || d.Chars) {
		cfg.ShowLines, cfg.ShowWords, cfg.ShowChars = true, true, true
	}
	if d.Pure {
		cfg.ColorEnabled = false
		cfg.SeparatorsEnabled = false
	}
	return cfg
}

// setupLogging routes slog to w; debug output only with verbose. It also
// takes over the standard logger, whose messages then log at info level.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix("WC") // WC_NO_COLOR, WC_MAX_DEPTH, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", v.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		slog.Debug("no config file found, using defaults and flags")
	} else {
		slog.Warn("error reading config file", "error", err)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
