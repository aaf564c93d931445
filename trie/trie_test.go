package trie

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomlx/go-botok/data"
	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walkString walks all runes of s from the root, returning the last node or nil.
func walkString(t *Trie, s string) api.Node {
	n := t.Root()
	for _, r := range s {
		next, ok := t.Walk(r, n)
		if !ok {
			return nil
		}
		n = next
	}
	return n
}

func TestTrie_AddWalk(t *testing.T) {
	tr := New()
	tr.Add("བཀྲ་ཤིས", "NOUN")
	tr.Add("བཀྲ་ཤིས་བདེ་ལེགས་", "INTJ")
	assert.Equal(t, 2, tr.Len())

	n := walkString(tr, "བཀྲ་")
	require.NotNil(t, n)
	assert.False(t, n.IsMatch())
	assert.True(t, n.CanWalk())

	n = walkString(tr, "བཀྲ་ཤིས་")
	require.NotNil(t, n)
	assert.True(t, n.IsMatch())
	assert.Equal(t, "NOUN", n.Data())
	assert.False(t, n.IsTerminal())

	n = walkString(tr, "བཀྲ་ཤིས་བདེ་ལེགས་")
	require.NotNil(t, n)
	assert.True(t, n.IsMatch())
	assert.True(t, n.IsTerminal())
	assert.False(t, n.CanWalk())

	assert.Nil(t, walkString(tr, "ཀཀ"))

	// Walking from nil starts at the root.
	_, ok := tr.Walk('བ', nil)
	assert.True(t, ok)
}

func TestTrie_AddReplacesTag(t *testing.T) {
	tr := New()
	tr.Add("ཤི", "VERB")
	tr.Add("ཤི་", "NOUN")
	assert.Equal(t, 1, tr.Len())
	tag, found := tr.Get("ཤི")
	require.True(t, found)
	assert.Equal(t, "NOUN", tag)

	tr.Add("  ", "NOUN")
	assert.Equal(t, 1, tr.Len())
}

func TestTrie_Remove(t *testing.T) {
	tr := New()
	tr.Add("བཀྲ་ཤིས", "NOUN")
	tr.Add("བཀྲ", "NOUN")
	assert.True(t, tr.Remove("བཀྲ་ཤིས"))
	assert.False(t, tr.Remove("བཀྲ་ཤིས"))
	assert.False(t, tr.Has("བཀྲ་ཤིས"))
	assert.True(t, tr.Has("བཀྲ"))
	assert.Equal(t, 1, tr.Len())

	// The branch is pruned: the remaining word is now a leaf.
	n := walkString(tr, "བཀྲ་")
	require.NotNil(t, n)
	assert.True(t, n.IsTerminal())
}

func TestTrie_Entries(t *testing.T) {
	tr := New()
	tr.Add("ཤི", "VERB")
	tr.Add("བཀྲ་ཤིས", "NOUN")
	tr.Add("བཀྲ", "ADJ")
	assert.Equal(t, []Entry{
		{"བཀྲ་", "ADJ"},
		{"བཀྲ་ཤིས་", "NOUN"},
		{"ཤི་", "VERB"},
	}, tr.Entries())
}

func TestReadEntries(t *testing.T) {
	content := "# comment\n\nཤི\tVERB\nབཀྲ་ཤིས་\tNOUN\r\nབོད\n\t\tADJ\n"
	entries, err := ReadEntries(strings.NewReader(content), "test")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{"ཤི་", "VERB"},
		{"བཀྲ་ཤིས་", "NOUN"},
		{"བོད་", DefaultPOS},
	}, entries)
}

func TestLoadDictionary(t *testing.T) {
	tr := New()
	n, err := LoadDictionary(tr, strings.NewReader("ཤི\tVERB\nབཀྲ་ཤིས\tNOUN\n"), "test", true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tag, found := tr.Get("ཤི")
	require.True(t, found)
	assert.Equal(t, "VERBᛃᛃᛃ", tag)
	assert.False(t, api.IsAffixedTag(tag))

	tag, found = tr.Get("ཤིར")
	require.True(t, found)
	assert.Equal(t, "VERBᛃlaᛃ1ᛃ", tag)
	assert.True(t, api.IsAffixedTag(tag))

	// "ཤིས" ends with a consonant: no inflection.
	assert.False(t, tr.Has("བཀྲ་ཤིསར"))
}

func TestInflections(t *testing.T) {
	tests := []struct {
		name, word string
		want       []string
		aa         bool
	}{
		{"vowel", "ཤི", []string{"ཤིར་", "ཤིས་", "ཤིའི་", "ཤིའམ་", "ཤིའང་", "ཤིའོ་"}, false},
		{"single consonant", "ཟླ་བ", []string{"ཟླ་བར་", "ཟླ་བས་", "ཟླ་བའི་", "ཟླ་བའམ་", "ཟླ་བའང་", "ཟླ་བའོ་"}, false},
		{"final aa", "དགའ", []string{"དགར་", "དགས་", "དགའི་", "དགའམ་", "དགའང་", "དགའོ་"}, true},
		{"closed", "ཆོས", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Inflections(tt.word, "NOUN")
			var words []string
			for _, e := range entries {
				words = append(words, e.Word)
				_, _, aa, ok := api.ParseAffix(e.Tag)
				require.True(t, ok, "tag %q", e.Tag)
				assert.Equal(t, tt.aa, aa)
				assert.Equal(t, "NOUN", api.POSFromTag(e.Tag))
			}
			assert.Equal(t, tt.want, words)
		})
	}
}

func TestInflections_DontOverrideWords(t *testing.T) {
	tr := New()
	_, err := LoadDictionary(tr, strings.NewReader("ལ\tADP\nལས\tNOUN\n"), "test", true)
	require.NoError(t, err)
	tag, found := tr.Get("ལས")
	require.True(t, found)
	assert.Equal(t, "NOUNᛃᛃᛃ", tag)
	assert.True(t, tr.Has("ལར"))
}

func sampleConfig(cacheDir string) BuildConfig {
	return BuildConfig{
		Dictionaries: []Source{{Name: "embedded:sample", Content: data.Sample}},
		Inflect:      true,
		CacheDir:     cacheDir,
	}
}

func TestBuild_NoCache(t *testing.T) {
	tr, err := Build(context.Background(), sampleConfig(""))
	require.NoError(t, err)
	tag, found := tr.Get("བཀྲ་ཤིས")
	require.True(t, found)
	assert.Equal(t, "NOUNᛃᛃᛃ", tag)
	assert.True(t, tr.Has("ཤིའི"))
}

func TestBuild_Removals(t *testing.T) {
	dir := t.TempDir()
	removals := filepath.Join(dir, "remove.tsv")
	require.NoError(t, os.WriteFile(removals, []byte("ཤི\nབོད\tPROPN\n"), 0o644))
	extra := filepath.Join(dir, "extra.tsv")
	require.NoError(t, os.WriteFile(extra, []byte("བཀྲ་ཤིས\tINTJ\n"), 0o644))

	cfg := sampleConfig("")
	cfg.Dictionaries = append(cfg.Dictionaries, Source{Name: "extra", Path: extra})
	cfg.Removals = []Source{{Name: "remove", Path: removals}}
	tr, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, tr.Has("ཤི"))
	assert.False(t, tr.Has("ཤིར"), "inflections of removed words are not generated")
	assert.False(t, tr.Has("བོད"))
	tag, _ := tr.Get("བཀྲ་ཤིས")
	assert.Equal(t, "INTJᛃᛃᛃ", tag)
}

func TestBuild_Cache(t *testing.T) {
	cacheDir := t.TempDir()
	ctx := context.Background()
	first, err := Build(ctx, sampleConfig(cacheDir))
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(cacheDir, "trie-*.bin"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	lockFiles, err := filepath.Glob(filepath.Join(cacheDir, "*.lock"))
	require.NoError(t, err)
	assert.Empty(t, lockFiles)

	cached, err := ReadCache(matches[0])
	require.NoError(t, err)
	assert.Equal(t, first.Entries(), cached.Entries())

	second, err := Build(ctx, sampleConfig(cacheDir))
	require.NoError(t, err)
	assert.Equal(t, first.Entries(), second.Entries())

	// A different configuration uses a different cache file.
	cfg := sampleConfig(cacheDir)
	cfg.Inflect = false
	_, err = Build(ctx, cfg)
	require.NoError(t, err)
	matches, err = filepath.Glob(filepath.Join(cacheDir, "trie-*.bin"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestBuild_Rebuild(t *testing.T) {
	cacheDir := t.TempDir()
	cfg := sampleConfig(cacheDir)
	key, err := cfg.cacheKey()
	require.NoError(t, err)
	cachePath := filepath.Join(cacheDir, "trie-"+key+".bin")

	// A cache holding a different trie is used as is, unless rebuilding.
	stale := New()
	stale.Add("ཀ", "NOUN")
	require.NoError(t, WriteCache(cachePath, stale))
	tr, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Len())

	cfg.Rebuild = true
	tr, err = Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, tr.Has("བཀྲ་ཤིས"))
	cached, err := ReadCache(cachePath)
	require.NoError(t, err)
	assert.Equal(t, tr.Entries(), cached.Entries())
}

func TestBuild_CorruptedCacheIsRebuilt(t *testing.T) {
	cacheDir := t.TempDir()
	cfg := sampleConfig(cacheDir)
	key, err := cfg.cacheKey()
	require.NoError(t, err)
	cachePath := filepath.Join(cacheDir, "trie-"+key+".bin")
	require.NoError(t, os.WriteFile(cachePath, []byte("not a trie cache"), 0o644))

	tr, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, tr.Has("བཀྲ་ཤིས"))

	cached, err := ReadCache(cachePath)
	require.NoError(t, err)
	assert.Equal(t, tr.Len(), cached.Len())
}

func TestReadCache_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadCache(filepath.Join(dir, "missing.bin"))
	assert.Error(t, err)

	truncated := filepath.Join(dir, "truncated.bin")
	require.NoError(t, os.WriteFile(truncated, []byte("BOT"), 0o644))
	_, err = ReadCache(truncated)
	assert.ErrorContains(t, err, "truncated")

	_, err = decodeCache(append(append([]byte(nil), cacheMagic...), 0x02, 0x01))
	assert.Error(t, err)
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, sampleConfig(""))
	assert.ErrorIs(t, err, context.Canceled)
}
