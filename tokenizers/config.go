package tokenizers

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gomlx/go-botok/data"
	"github.com/gomlx/go-botok/internal/files"
	"github.com/gomlx/go-botok/trie"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration, see Config.ApplyEnv.
const (
	EnvCacheDir     = "BOTOK_CACHE_DIR"
	EnvCacheSize    = "BOTOK_CACHE_SIZE"
	EnvSplitAffixes = "BOTOK_SPLIT_AFFIXES"
)

// Config is the profile of a Tokenizer: which dictionaries make up its trie, and how tokens are produced.
// It's usually read from a YAML file with LoadConfig.
type Config struct {
	// Dictionaries are TSV files (see trie.ReadEntries), or embedded dictionaries named with the "embedded:" prefix.
	// Later dictionaries override the part-of-speech of words listed in earlier ones.
	Dictionaries []string `yaml:"dictionaries"`

	// Remove lists files of words removed from the dictionaries.
	Remove []string `yaml:"remove"`

	// Inflect adds the affixed forms of the dictionary words.
	Inflect bool `yaml:"inflect"`

	// SplitAffixes splits affixed words into host and affix tokens.
	SplitAffixes bool `yaml:"split_affixes"`

	// CacheDir holds compiled tries. A leading "~" is expanded to the home directory. Empty disables the cache.
	CacheDir string `yaml:"cache_dir"`

	// CacheSize is the number of tokenized texts memoized by the Tokenizer. 0 disables memoization.
	CacheSize int `yaml:"cache_size"`

	// Rebuild compiles the trie from the dictionaries even if a compiled version is cached.
	Rebuild bool `yaml:"rebuild"`
}

// DefaultConfig uses the embedded sample dictionary, with inflections and affix splitting.
func DefaultConfig() *Config {
	return &Config{
		Dictionaries: []string{data.EmbeddedPrefix + "sample"},
		Inflect:      true,
		SplitAffixes: true,
		CacheSize:    128,
	}
}

// LoadConfig reads a YAML profile from filePath. Fields missing in the file keep the values of DefaultConfig.
func LoadConfig(filePath string) (*Config, error) {
	filePath, err := files.ReplaceTilde(filePath)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tokenizer config from %q", filePath)
	}
	config, err := ParseConfig(content)
	if err != nil {
		return nil, errors.WithMessagef(err, "while parsing tokenizer config %q", filePath)
	}
	return config, nil
}

// ParseConfig parses a YAML profile. Fields missing in content keep the values of DefaultConfig.
func ParseConfig(content []byte) (*Config, error) {
	config := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "invalid tokenizer config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides the configuration with the BOTOK_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	if v, found := os.LookupEnv(EnvCacheDir); found {
		c.CacheDir = v
	}
	if v, found := os.LookupEnv(EnvCacheSize); found {
		size, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "invalid value %q for $%s", v, EnvCacheSize)
		}
		c.CacheSize = size
	}
	if v, found := os.LookupEnv(EnvSplitAffixes); found {
		split, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "invalid value %q for $%s", v, EnvSplitAffixes)
		}
		c.SplitAffixes = split
	}
	return c.Validate()
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Dictionaries) == 0 {
		return errors.New("tokenizer config has no dictionaries")
	}
	if c.CacheSize < 0 {
		return errors.Errorf("tokenizer config cache_size must be >= 0, got %d", c.CacheSize)
	}
	return nil
}

// trieConfig resolves the dictionaries of the configuration.
func (c *Config) trieConfig() (trie.BuildConfig, error) {
	bc := trie.BuildConfig{
		Inflect: c.Inflect,
		Rebuild: c.Rebuild,
	}
	var err error
	if c.CacheDir != "" {
		if bc.CacheDir, err = files.ReplaceTilde(c.CacheDir); err != nil {
			return bc, err
		}
	}
	if bc.Dictionaries, err = resolveSources(c.Dictionaries); err != nil {
		return bc, err
	}
	if bc.Removals, err = resolveSources(c.Remove); err != nil {
		return bc, err
	}
	return bc, nil
}

func resolveSources(names []string) ([]trie.Source, error) {
	sources := make([]trie.Source, 0, len(names))
	for _, name := range names {
		if embedded, found := strings.CutPrefix(name, data.EmbeddedPrefix); found {
			content, ok := data.Dictionary(embedded)
			if !ok {
				return nil, errors.Errorf("unknown embedded dictionary %q", name)
			}
			sources = append(sources, trie.Source{Name: name, Content: content})
			continue
		}
		path, err := files.ReplaceTilde(name)
		if err != nil {
			return nil, err
		}
		if !files.Exists(path) {
			return nil, errors.Errorf("dictionary %q not found", path)
		}
		sources = append(sources, trie.Source{Name: name, Path: path})
	}
	return sources, nil
}
