// Package tokenizers provides the default Tibetan word tokenizer: the text is split in chunks, segmented against
// the dictionary trie described by a Config, and affixed words are optionally split.
//
// Example:
//
//	tok, err := tokenizers.New(ctx, tokenizers.DefaultConfig())
//	if err != nil { ... }
//	tokens, err := tok.Tokenize(" ཤི་བཀྲ་ཤིས་  tr བདེ་་ལེ གས།")
//	for _, t := range tokens {
//		fmt.Printf("%q/%s\n", t.Content, t.POS)
//	}
package tokenizers

import (
	"context"
	"slices"

	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/gomlx/go-botok/tokenizers/chunks"
	"github.com/gomlx/go-botok/tokenizers/maxmatch"
	"github.com/gomlx/go-botok/trie"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Tokenizer segments Tibetan texts into dictionary words. It is safe for concurrent use.
type Tokenizer struct {
	config *Config
	trie   *trie.Trie
	engine *maxmatch.Engine

	// cache of the tokens of recently tokenized texts, nil if disabled.
	cache *lru.Cache[string, []api.Token]
}

// Compile time assert that Tokenizer implements api.Tokenizer interface.
var _ api.Tokenizer = &Tokenizer{}

// New builds the trie described by config, or loads it from the cache directory, and returns a Tokenizer using it.
// If config is nil, DefaultConfig is used.
func New(ctx context.Context, config *Config) (*Tokenizer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	bc, err := config.trieConfig()
	if err != nil {
		return nil, err
	}
	t, err := trie.Build(ctx, bc)
	if err != nil {
		return nil, errors.WithMessage(err, "while building the dictionary trie")
	}
	klog.V(1).Infof("tokenizer ready with %d words", t.Len())
	return NewFromTrie(t, config)
}

// NewFromTrie returns a Tokenizer using an already built trie. Only the tokenization options of config are used.
func NewFromTrie(t *trie.Trie, config *Config) (*Tokenizer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	tok := &Tokenizer{
		config: config,
		trie:   t,
		engine: maxmatch.New(t),
	}
	if config.CacheSize > 0 {
		var err error
		tok.cache, err = lru.New[string, []api.Token](config.CacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create tokens cache")
		}
	}
	return tok, nil
}

// Tokenize implements api.Tokenizer.
//
// The returned tokens cover the whole text. They may be shared with other calls and must not be modified.
func (tok *Tokenizer) Tokenize(text string) ([]api.Token, error) {
	if tok.cache != nil {
		if tokens, found := tok.cache.Get(text); found {
			return slices.Clone(tokens), nil
		}
	}
	tokens, err := tok.engine.Tokenize(chunks.New(text), tok.config.SplitAffixes)
	if err != nil {
		return nil, err
	}
	if tok.cache != nil {
		tok.cache.Add(text, tokens)
		return slices.Clone(tokens), nil
	}
	return tokens, nil
}

// Trie returns the dictionary trie used by the tokenizer.
func (tok *Tokenizer) Trie() *trie.Trie {
	return tok.trie
}

// Config returns the configuration of the tokenizer.
func (tok *Tokenizer) Config() *Config {
	return tok.config
}
