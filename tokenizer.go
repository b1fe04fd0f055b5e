package main

import (
	"fmt"
	"log/slog"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// TokenCounter reports how many model tokens a file's text encodes to. It
// fills the optional tokens column.
type TokenCounter interface {
	CountTokens(text string) int
	Close()
}

const (
	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

// TokenCounterConfig picks the backend for the tokens column.
type TokenCounterConfig struct {
	Backend string // tiktoken (default) or huggingface
	Model   string
	File    string // local tokenizer.json; huggingface only
}

// newTokenCounter opens the backend named in c.
func newTokenCounter(c TokenCounterConfig) (TokenCounter, error) {
	slog.Debug("opening token counter", "backend", c.Backend, "model", c.Model, "file", c.File)

	switch strings.ToLower(c.Backend) {
	case "", "tiktoken":
		return openTiktoken(c.Model)
	case "huggingface":
		return openHuggingFace(c.Model, c.File)
	}
	return nil, fmt.Errorf("unsupported tokenizer type: %s (want tiktoken or huggingface)", c.Backend)
}

// bpeCounter counts with an OpenAI BPE encoding. Special tokens in the file
// are counted as ordinary text.
type bpeCounter struct {
	enc *tiktoken.Tiktoken
}

func (c *bpeCounter) CountTokens(text string) int {
	if c.enc == nil {
		return 0
	}
	return len(c.enc.EncodeOrdinary(text))
}

func (c *bpeCounter) Close() {}

// openTiktoken falls back to the default model's encoding when model is
// unknown to tiktoken.
func openTiktoken(model string) (TokenCounter, error) {
	if model == "" {
		model = defaultTiktokenModel
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err == nil {
		return &bpeCounter{enc: enc}, nil
	}

	slog.Warn("unknown tiktoken model, using default encoding", "model", model, "default", defaultTiktokenModel, "error", err)
	enc, err = tiktoken.EncodingForModel(defaultTiktokenModel)
	if err != nil {
		return nil, fmt.Errorf("tiktoken encoding for %s: %w", defaultTiktokenModel, err)
	}
	return &bpeCounter{enc: enc}, nil
}

// hfCounter counts with a HuggingFace tokenizer.json pipeline.
type hfCounter struct {
	tk *hf.Tokenizer
}

func (c *hfCounter) CountTokens(text string) int {
	if c.tk == nil {
		return 0
	}
	enc, err := c.tk.EncodeSingle(text)
	if err != nil {
		slog.Warn("huggingface encode failed, counting 0 tokens", "error", err)
		return 0
	}
	return len(enc.Tokens)
}

func (c *hfCounter) Close() {}

// openHuggingFace loads file when given, otherwise the model's
// tokenizer.json from the HuggingFace cache, downloading it on first use.
func openHuggingFace(model, file string) (TokenCounter, error) {
	if file == "" {
		if model == "" {
			model = defaultHFModel
		}
		slog.Info("resolving huggingface tokenizer, may download", "model", model)

		cached, err := hf.CachedPath(model, "tokenizer.json")
		if err != nil {
			return nil, fmt.Errorf("huggingface cache for %s: %w", model, err)
		}
		file = cached
	}

	tk, err := pretrained.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer %s: %w", file, err)
	}
	return &hfCounter{tk: tk}, nil
}
