package trie

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/gomlx/go-botok/internal/files"
	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// BuildConfig lists the dictionaries compiled into a Trie.
type BuildConfig struct {
	// Dictionaries are loaded in order: a word listed in a later dictionary overrides its part-of-speech.
	Dictionaries []Source

	// Removals lists words (one per line, anything after a tab is ignored) removed after all dictionaries are loaded.
	Removals []Source

	// Inflect adds the affixed forms of every word.
	Inflect bool

	// CacheDir where compiled tries are saved. If empty, the trie is always compiled from the sources.
	CacheDir string

	// Rebuild ignores a previously compiled trie in CacheDir, and replaces it.
	Rebuild bool
}

// cacheNamespace is the namespace of the name-based UUIDs used as cache keys.
var cacheNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/gomlx/go-botok/trie"))

// Build returns the Trie described by cfg.
//
// If cfg.CacheDir is set, a previously compiled trie for the same sources is loaded from the cache, and a newly
// compiled one is saved to it. Failing to save the cache is logged, not returned.
func Build(ctx context.Context, cfg BuildConfig) (*Trie, error) {
	if cfg.CacheDir == "" {
		return compile(ctx, cfg)
	}
	key, err := cfg.cacheKey()
	if err != nil {
		return nil, err
	}
	cachePath := filepath.Join(cfg.CacheDir, fmt.Sprintf("trie-%s.bin", key))
	if cfg.Rebuild && files.Exists(cachePath) {
		if err := os.Remove(cachePath); err != nil {
			return nil, errors.Wrapf(err, "failed to remove trie cache %q for rebuild", cachePath)
		}
	}
	if files.Exists(cachePath) {
		t, err := ReadCache(cachePath)
		if err == nil {
			klog.V(1).Infof("loaded trie with %d words from cache %q", t.Len(), cachePath)
			return t, nil
		}
		klog.Warningf("ignoring unreadable trie cache %q: %+v", cachePath, err)
		if err := os.Remove(cachePath); err != nil {
			klog.Warningf("failed to remove trie cache %q: %v", cachePath, err)
		}
	}

	t, err := compile(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := lockedWriteCache(ctx, cachePath, t); err != nil {
		klog.Warningf("failed to save trie cache: %+v", err)
	} else {
		klog.V(1).Infof("saved trie with %d words to cache %q", t.Len(), cachePath)
	}
	return t, nil
}

// compile reads all sources and builds the trie.
func compile(ctx context.Context, cfg BuildConfig) (*Trie, error) {
	posByWord := make(map[string]string)
	for _, src := range cfg.Dictionaries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := readSource(src)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			posByWord[e.Word] = e.Tag
		}
		klog.V(1).Infof("read %d words from dictionary %q", len(entries), src.Name)
	}
	for _, src := range cfg.Removals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := readSource(src)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			delete(posByWord, e.Word)
		}
	}

	// Sorted so that collisions between inflected forms are resolved deterministically.
	words := make([]string, 0, len(posByWord))
	for word := range posByWord {
		words = append(words, word)
	}
	slices.Sort(words)

	t := New()
	for _, word := range words {
		t.Add(word, api.WordTag(posByWord[word]))
	}
	if cfg.Inflect {
		for _, word := range words {
			addInflections(t, word, posByWord[word])
		}
	}
	return t, nil
}

// cacheKey returns a name-based UUID identifying the sources and options of the configuration.
// Files are identified by their path, size and modification time, embedded dictionaries by their content.
func (cfg BuildConfig) cacheKey() (string, error) {
	var desc []byte
	desc = fmt.Appendf(desc, "v1 inflect=%t\n", cfg.Inflect)
	for _, group := range []struct {
		label   string
		sources []Source
	}{{"dict", cfg.Dictionaries}, {"remove", cfg.Removals}} {
		for _, src := range group.sources {
			desc = fmt.Appendf(desc, "%s %q ", group.label, src.Name)
			if src.Content != nil {
				desc = append(desc, src.Content...)
			} else {
				info, err := os.Stat(src.Path)
				if err != nil {
					return "", errors.Wrapf(err, "failed to stat dictionary %q", src.Name)
				}
				absPath, err := filepath.Abs(src.Path)
				if err != nil {
					return "", errors.Wrapf(err, "failed to resolve path of dictionary %q", src.Name)
				}
				desc = fmt.Appendf(desc, "%s %d %d", absPath, info.Size(), info.ModTime().UnixNano())
			}
			desc = append(desc, '\n')
		}
	}
	return uuid.NewSHA1(cacheNamespace, desc).String(), nil
}
