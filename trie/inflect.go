package trie

import (
	"strings"
	"unicode/utf8"

	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/gomlx/go-botok/tokenizers/chunks"
)

// aaRune is dropped from the end of a host syllable before some affixes.
const aaRune = 'འ'

// affix is a grammatical particle that attaches to the last syllable of an open word.
type affix struct {
	text, typ string
}

var affixes = []affix{
	{"ར", "la"},
	{"ས", "gis"},
	{"འི", "gi"},
	{"འམ", "am"},
	{"འང", "ang"},
	{"འོ", "o"},
}

// Inflections returns the affixed forms of word, tagged with the given part-of-speech and the affix fields.
// It returns nil if the last syllable of the word can't take an affix.
func Inflections(word, pos string) []Entry {
	key := strings.TrimSuffix(NormalizeWord(word), api.Tsek)
	if key == "" {
		return nil
	}
	head, last := "", key
	if idx := strings.LastIndex(key, api.Tsek); idx >= 0 {
		head, last = key[:idx+len(api.Tsek)], key[idx+len(api.Tsek):]
	}
	lastRunes := []rune(last)
	var aa bool
	switch {
	case len(lastRunes) > 1 && lastRunes[len(lastRunes)-1] == aaRune:
		aa = true
		lastRunes = lastRunes[:len(lastRunes)-1]
	case isOpenSyllable(lastRunes):
	default:
		return nil
	}
	stem := head + string(lastRunes)
	entries := make([]Entry, 0, len(affixes))
	for _, a := range affixes {
		entries = append(entries, Entry{
			Word: stem + a.text + api.Tsek,
			Tag:  api.AffixTag(pos, a.typ, utf8.RuneCountInString(a.text), aa),
		})
	}
	return entries
}

// isOpenSyllable reports whether the syllable has no final consonant: it is a single consonant, or ends with a
// vowel sign or a subjoined consonant.
func isOpenSyllable(syl []rune) bool {
	if len(syl) == 0 {
		return false
	}
	g := chunks.Classify(syl[len(syl)-1])
	if len(syl) == 1 {
		return g == api.CharCons
	}
	return g.IsVowel() || g == api.CharSubCons || g == api.CharSkrtSubCons
}

// addInflections adds the affixed forms of word that are not yet in the trie.
func addInflections(t *Trie, word, pos string) {
	for _, e := range Inflections(word, pos) {
		if !t.Has(e.Word) {
			t.Add(e.Word, e.Tag)
		}
	}
}
