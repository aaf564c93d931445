// Package maxmatch implements the dictionary segmentation engine: a maximal-match walk of the syllables of a text
// over a prefix trie of dictionary words, backtracking to the latest confirmed dictionary entry when the longest
// walkable path doesn't end on one.
//
// Every chunk of the input ends up in exactly one token: syllables that can't be matched become "non-word" tokens,
// and non-syllable chunks (punctuation, numerals, non-Tibetan text) become tokens of their own.
package maxmatch

import (
	"strings"
	"unicode/utf8"

	"github.com/gomlx/go-botok/tokenizers/affix"
	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrEmptySpan is returned if a token is requested over an empty list of chunks.
// It signals a bug in the engine, it is never returned for valid inputs.
var ErrEmptySpan = errors.New("empty token span")

// Engine segments chunked texts using a dictionary trie.
//
// It holds no per-call state: one Engine can be used concurrently, as long as the trie is not modified.
type Engine struct {
	trie api.Trie
}

// New creates an Engine that walks the given trie.
func New(trie api.Trie) *Engine {
	return &Engine{trie: trie}
}

// outcome of walking one syllable.
type outcome int

const (
	// outcomePrefix: the syllable was fully walked, but the path is not a dictionary entry.
	outcomePrefix outcome = iota

	// outcomeMatched: the syllable was fully walked and the path is a dictionary entry.
	outcomeMatched

	// outcomeDeadEnd: the trie has no edge for some character of the syllable.
	outcomeDeadEnd

	// outcomeExhausted: end of input reached with a word in progress.
	outcomeExhausted
)

var outcomeNames = []string{"prefix", "matched", "dead-end", "exhausted"}

func (o outcome) String() string {
	if int(o) < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// walk holds the state of one Tokenize call.
type walk struct {
	src    api.ChunkSource
	chunks []api.Chunk

	// node reached after the last walked syllable, nil if no word is in progress.
	node api.Node

	// pending lists the indices of the syllables of the word in progress.
	pending []int

	// matches maps the index of a pending syllable to the tag of the dictionary entry ending on it.
	matches map[int]string

	tokens []api.Token
}

// Tokenize segments the chunks of src into tokens that cover the whole text, in order.
// If splitAffixes is set, affixed words are split in their host and affix tokens (see package affix).
func (e *Engine) Tokenize(src api.ChunkSource, splitAffixes bool) ([]api.Token, error) {
	w := &walk{
		src:     src,
		chunks:  src.Chunks(),
		matches: make(map[int]string),
	}
	var err error
	c := 0
	for c < len(w.chunks) || len(w.pending) > 0 {
		if c >= len(w.chunks) {
			klog.V(2).Infof("%s: %d pending syllables", outcomeExhausted, len(w.pending))
			if c, err = w.commit(); err != nil {
				return nil, err
			}
			continue
		}

		chunk := w.chunks[c]
		if !chunk.IsSyllable() {
			if len(w.pending) > 0 {
				// The word in progress ends before this chunk.
				if c, err = w.commit(); err != nil {
					return nil, err
				}
				continue
			}
			if err = w.emit([]int{c}, api.Tag{}); err != nil {
				return nil, err
			}
			c++
			continue
		}

		switch e.scanSyllable(w, c) {
		case outcomeMatched:
			w.pending = append(w.pending, c)
			w.matches[c] = w.node.Data()
			if w.node.IsTerminal() {
				// No longer word can match: commit right away.
				if c, err = w.commit(); err != nil {
					return nil, err
				}
				continue
			}
			c++

		case outcomePrefix:
			w.pending = append(w.pending, c)
			c++

		case outcomeDeadEnd:
			if len(w.pending) == 0 {
				if err = w.emit([]int{c}, api.DefaultTag(api.KindNonWord)); err != nil {
					return nil, err
				}
				w.reset()
				c++
				continue
			}
			// Commit the best word found so far, and walk again from where it ends.
			if c, err = w.commit(); err != nil {
				return nil, err
			}
		}
	}

	tokens := w.tokens
	if splitAffixes {
		tokens = affix.Split(tokens)
	}
	return tokens, nil
}

// scanSyllable walks the letters of the syllable chunk c, followed by a tsek, from the node of the word in progress
// (or the root of the trie).
func (e *Engine) scanSyllable(w *walk, c int) outcome {
	chunk := w.chunks[c]
	text := w.src.String()
	traceOn := klog.V(2).Enabled()
	if traceOn {
		var sb strings.Builder
		for _, offset := range chunk.Syllable {
			r, _ := utf8.DecodeRuneInString(text[offset:])
			sb.WriteRune(r)
		}
		klog.Infof("%d: %s%s (pending: %v)", c, sb.String(), api.Tsek, w.pending)
	}

	node := w.node
	if node == nil {
		node = e.trie.Root()
	}
	step := func(ii int, r rune) bool {
		if !node.CanWalk() {
			return false
		}
		next, ok := e.trie.Walk(r, node)
		if traceOn {
			klog.Infof("\t%d\t%c\t%t", ii, r, ok)
		}
		if !ok {
			return false
		}
		node = next
		return true
	}
	for ii, offset := range chunk.Syllable {
		r, _ := utf8.DecodeRuneInString(text[offset:])
		if !step(ii, r) {
			w.node = nil
			return outcomeDeadEnd
		}
	}
	if !step(len(chunk.Syllable), api.TsekRune) {
		w.node = nil
		return outcomeDeadEnd
	}
	w.node = node
	if node.IsMatch() {
		return outcomeMatched
	}
	return outcomePrefix
}

// commit emits the token of the word in progress, following the match disambiguation policy:
//
//  1. If the last pending syllable ends a dictionary entry, all pending syllables form one token.
//  2. Otherwise, the pending syllables up to the latest one that ends a dictionary entry form a token.
//  3. Otherwise, the first pending syllable becomes a non-word token.
//
// It returns the index of the chunk where scanning resumes, and always resets the word in progress.
func (w *walk) commit() (resume int, err error) {
	defer w.reset()
	if len(w.pending) == 0 {
		return 0, errors.WithStack(ErrEmptySpan)
	}
	last := w.pending[len(w.pending)-1]

	// 1. Maximal confirmed match.
	if tag, found := w.matches[last]; found {
		klog.V(2).Infof("commit %v: full match %q", w.pending, tag)
		return last + 1, w.emit(w.pending, api.LiteralTag(tag))
	}

	// 2. Latest confirmed match.
	if len(w.matches) > 0 {
		m := -1
		for idx := range w.matches {
			m = max(m, idx)
		}
		span := w.pending
		for len(span) > 0 && span[len(span)-1] > m {
			span = span[:len(span)-1]
		}
		klog.V(2).Infof("commit %v: backtracked to match %q", span, w.matches[m])
		return m + 1, w.emit(span, api.LiteralTag(w.matches[m]))
	}

	// 3. No match: only the first syllable is consumed.
	klog.V(2).Infof("commit %v: non-word", w.pending[:1])
	resume = last + 1
	if len(w.pending) > 1 {
		resume = w.pending[1]
	}
	return resume, w.emit(w.pending[:1], api.DefaultTag(api.KindNonWord))
}

// reset clears the word in progress.
func (w *walk) reset() {
	w.node = nil
	w.pending = w.pending[:0]
	clear(w.matches)
}

// emit assembles the token over the span of chunks and appends it to the output.
func (w *walk) emit(span []int, tag api.Tag) error {
	tok, err := assemble(w.src, span, tag)
	if err != nil {
		return err
	}
	w.tokens = append(w.tokens, tok)
	return nil
}
