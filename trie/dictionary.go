package trie

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultPOS is given to dictionary words listed without a part-of-speech.
var DefaultPOS = api.KindWord.String()

// Source is a dictionary file: either embedded in the binary (Content) or read from Path.
type Source struct {
	// Name identifies the source in logs and errors.
	Name string

	// Path of the file, used if Content is nil.
	Path string

	Content []byte
}

// open returns a reader over the content of the source.
func (s Source) open() (io.ReadCloser, error) {
	if s.Content != nil {
		return io.NopCloser(bytes.NewReader(s.Content)), nil
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dictionary %q", s.Name)
	}
	return f, nil
}

// ReadEntries parses a dictionary in TSV format: one word per line, optionally followed by a tab and its
// part-of-speech. Blank lines and lines starting with '#' are ignored.
//
// The returned entries hold the part-of-speech in Entry.Tag. Lines with an empty word are skipped with a warning.
func ReadEntries(r io.Reader, name string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, pos, _ := strings.Cut(line, "\t")
		word = NormalizeWord(word)
		if word == "" {
			klog.Warningf("dictionary %q line %d: empty word, skipped", name, lineNum)
			continue
		}
		pos = strings.TrimSpace(pos)
		if pos == "" {
			pos = DefaultPOS
		}
		entries = append(entries, Entry{Word: word, Tag: pos})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read dictionary %q", name)
	}
	return entries, nil
}

// readSource opens and parses a dictionary source.
func readSource(s Source) ([]Entry, error) {
	rc, err := s.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return ReadEntries(rc, s.Name)
}

// LoadDictionary reads a dictionary and adds its words to the trie, tagged as non-affixed words.
// If inflect is set, the affixed forms of the words are added too, unless already present.
// It returns the number of words read.
func LoadDictionary(t *Trie, r io.Reader, name string, inflect bool) (int, error) {
	entries, err := ReadEntries(r, name)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		t.Add(e.Word, api.WordTag(e.Tag))
	}
	if inflect {
		for _, e := range entries {
			addInflections(t, e.Word, e.Tag)
		}
	}
	return len(entries), nil
}
