// Package trie implements the prefix trie of dictionary words walked by the segmentation engine, the loading of
// dictionary files into it and an on-disk cache of compiled tries.
//
// Words are stored syllabified: each syllable followed by a tsek, including the last one. So walking the letters of
// consecutive syllables, each followed by a tsek, reaches the entry.
package trie

import (
	"slices"
	"strings"

	"github.com/gomlx/go-botok/tokenizers/api"
)

// node of the trie. It implements api.Node.
type node struct {
	children map[rune]*node
	tag      string
	match    bool
}

// Compile time assert that node implements api.Node.
var _ api.Node = &node{}

func (n *node) IsMatch() bool    { return n.match }
func (n *node) CanWalk() bool    { return len(n.children) > 0 }
func (n *node) IsTerminal() bool { return len(n.children) == 0 }
func (n *node) Data() string     { return n.tag }

// Trie of dictionary words. It implements api.Trie.
//
// It is not safe to modify a Trie while it's being walked, but concurrent walks are safe.
type Trie struct {
	root *node
	size int
}

// Compile time assert that Trie implements api.Trie.
var _ api.Trie = &Trie{}

// Entry is a word and its tag.
type Entry struct {
	Word, Tag string
}

// New creates an empty Trie.
func New() *Trie {
	return &Trie{root: &node{}}
}

// Root implements api.Trie.
func (t *Trie) Root() api.Node {
	return t.root
}

// Walk implements api.Trie. A nil `from` walks from the root.
func (t *Trie) Walk(r rune, from api.Node) (api.Node, bool) {
	n := t.root
	if from != nil {
		var ok bool
		n, ok = from.(*node)
		if !ok {
			return nil, false
		}
	}
	next, found := n.children[r]
	if !found {
		return nil, false
	}
	return next, true
}

// Len returns the number of words in the trie.
func (t *Trie) Len() int {
	return t.size
}

// NormalizeWord returns the key under which word is stored: spaces trimmed and exactly one tsek after the last
// syllable. It returns "" if word has no letters.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	word = strings.TrimRight(word, api.Tsek+"༌ ")
	if word == "" {
		return ""
	}
	return word + api.Tsek
}

// Add inserts word with the given tag, replacing the tag if the word is already present.
func (t *Trie) Add(word, tag string) {
	key := NormalizeWord(word)
	if key == "" {
		return
	}
	n := t.root
	for _, r := range key {
		next, found := n.children[r]
		if !found {
			if n.children == nil {
				n.children = make(map[rune]*node)
			}
			next = &node{}
			n.children[r] = next
		}
		n = next
	}
	if !n.match {
		t.size++
	}
	n.match = true
	n.tag = tag
}

// find returns the node of the normalized key, or nil.
func (t *Trie) find(key string) *node {
	n := t.root
	for _, r := range key {
		n = n.children[r]
		if n == nil {
			return nil
		}
	}
	return n
}

// Has returns whether word is in the trie.
func (t *Trie) Has(word string) bool {
	_, found := t.Get(word)
	return found
}

// Get returns the tag of word, if it is in the trie.
func (t *Trie) Get(word string) (tag string, found bool) {
	key := NormalizeWord(word)
	if key == "" {
		return "", false
	}
	n := t.find(key)
	if n == nil || !n.match {
		return "", false
	}
	return n.tag, true
}

// Remove deletes word from the trie, pruning the branches left without entries.
// It returns whether the word was present.
func (t *Trie) Remove(word string) bool {
	key := []rune(NormalizeWord(word))
	if len(key) == 0 {
		return false
	}
	removed := remove(t.root, key)
	if removed {
		t.size--
	}
	return removed
}

func remove(n *node, key []rune) bool {
	if len(key) == 0 {
		if !n.match {
			return false
		}
		n.match = false
		n.tag = ""
		return true
	}
	child := n.children[key[0]]
	if child == nil {
		return false
	}
	removed := remove(child, key[1:])
	if removed && !child.match && len(child.children) == 0 {
		delete(n.children, key[0])
	}
	return removed
}

// Entries returns all words of the trie with their tags, sorted by their runes.
func (t *Trie) Entries() []Entry {
	entries := make([]Entry, 0, t.size)
	var path []rune
	var visit func(n *node)
	visit = func(n *node) {
		if n.match {
			entries = append(entries, Entry{Word: string(path), Tag: n.tag})
		}
		keys := make([]rune, 0, len(n.children))
		for r := range n.children {
			keys = append(keys, r)
		}
		slices.Sort(keys)
		for _, r := range keys {
			path = append(path, r)
			visit(n.children[r])
			path = path[:len(path)-1]
		}
	}
	visit(t.root)
	return entries
}
