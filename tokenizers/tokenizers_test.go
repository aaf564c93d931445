package tokenizers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleText = " ཤི་བཀྲ་ཤིས་  tr བདེ་་ལེ གས། བཀྲ་ཤིས་བདེ་ལེགས་ཀཀ"

func TestTokenize_Example(t *testing.T) {
	config := DefaultConfig()
	config.CacheDir = t.TempDir()
	tok, err := New(context.Background(), config)
	require.NoError(t, err)

	tokens, err := tok.Tokenize(exampleText)
	require.NoError(t, err)
	tagged := make([]string, len(tokens))
	var cleaned []string
	for ii, token := range tokens {
		tagged[ii] = fmt.Sprintf("%q/%s", token.Content, token.POS)
		if c := token.CleanedContent(); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	assert.Equal(t, `" ཤི་"/VERB, "བཀྲ་ཤིས་  "/NOUN, "tr"/non-bo, " བདེ་་ལེ གས"/NOUN, "།"/punct, `+
		`" བཀྲ་ཤིས་"/NOUN, "བདེ་ལེགས་"/NOUN, "ཀཀ"/non-word`, strings.Join(tagged, ", "))
	assert.Equal(t, "ཤི་ བཀྲ་ཤིས་ བདེ་ལེགས་ བཀྲ་ཤིས་ བདེ་ལེགས་ ཀཀ་", strings.Join(cleaned, " "))

	want := "content: \" ཤི་\"\n" +
		"char types: |space|cons|vow|tsek|\n" +
		"type: syl\n" +
		"start in input: 0\n" +
		"length: 10\n" +
		"syl chars in content(ཤི): [[1 4]]\n" +
		"tag: VERBᛃᛃᛃ\n" +
		"POS: VERB\n"
	assert.Equal(t, want, tokens[0].String())

	// A second tokenizer with the same configuration loads the trie from the cache.
	matches, err := filepath.Glob(filepath.Join(config.CacheDir, "trie-*.bin"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	tok2, err := New(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, tok.Trie().Entries(), tok2.Trie().Entries())
	tokens2, err := tok2.Tokenize(exampleText)
	require.NoError(t, err)
	assert.Equal(t, tokens, tokens2)
}

func TestTokenize_Memoized(t *testing.T) {
	tok, err := New(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, tok.cache)

	first, err := tok.Tokenize(exampleText)
	require.NoError(t, err)
	assert.Equal(t, 1, tok.cache.Len())

	// Appending to a returned slice doesn't affect the memoized tokens.
	_ = append(first[:1], api.Token{Content: "x"})
	second, err := tok.Tokenize(exampleText)
	require.NoError(t, err)
	assert.Len(t, second, 8)
	assert.Equal(t, " ཤི་", second[0].Content)
	assert.Equal(t, "བཀྲ་ཤིས་  ", second[1].Content)
	assert.Equal(t, 1, tok.cache.Len())

	config := DefaultConfig()
	config.CacheSize = 0
	noCache, err := NewFromTrie(tok.Trie(), config)
	require.NoError(t, err)
	assert.Nil(t, noCache.cache)
	third, err := noCache.Tokenize(exampleText)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestTokenize_SplitAffixes(t *testing.T) {
	text := "ཁོས་ཟླ་བར་དགའི་"
	tok, err := New(context.Background(), nil)
	require.NoError(t, err)
	tokens, err := tok.Tokenize(text)
	require.NoError(t, err)
	var contents, pos []string
	for _, token := range tokens {
		contents = append(contents, token.Content)
		pos = append(pos, token.POS)
	}
	assert.Equal(t, []string{"ཁོ", "ས་", "ཟླ་བ", "ར་", "དག", "འི་"}, contents)
	assert.Equal(t, []string{"PRON", "PART", "NOUN", "PART", "VERB", "PART"}, pos)
	assert.Equal(t, "དགའ་", tokens[4].CleanedContent())

	config := DefaultConfig()
	config.SplitAffixes = false
	tok, err = NewFromTrie(tok.Trie(), config)
	require.NoError(t, err)
	tokens, err = tok.Tokenize(text)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.True(t, tokens[0].Affixed)
	assert.Equal(t, "gis", tokens[0].AffixType)
	assert.True(t, tokens[2].AA)
}

func TestNew_Errors(t *testing.T) {
	config := DefaultConfig()
	config.Dictionaries = nil
	_, err := New(context.Background(), config)
	assert.Error(t, err)

	dir := t.TempDir()
	config = DefaultConfig()
	config.Dictionaries = []string{filepath.Join(dir, "missing.tsv")}
	_, err = New(context.Background(), config)
	assert.Error(t, err)

	// Files with custom words.
	dict := filepath.Join(dir, "words.tsv")
	require.NoError(t, os.WriteFile(dict, []byte("ཀཀ\tX\n"), 0o644))
	config.Dictionaries = []string{"embedded:sample", dict}
	tok, err := New(context.Background(), config)
	require.NoError(t, err)
	tokens, err := tok.Tokenize("ཀཀ")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "X", tokens[0].POS)
}
