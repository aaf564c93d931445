// Package affix splits the grammatical particles attached to the last syllable of affixed words into tokens of
// their own.
package affix

import (
	"slices"
	"unicode/utf8"

	"github.com/gomlx/go-botok/tokenizers/api"
)

// Split returns the tokens with every affixed word replaced by its host and its affix.
//
// The host keeps the content up to the first rune of the affix, and is tagged with the part-of-speech of the word.
// The affix gets the rest of the content (including the tsek and trailing spaces), and is tagged api.AffixPOS.
// Tokens that are not affixed, or whose last syllable has no room for a host, are returned as is.
func Split(tokens []api.Token) []api.Token {
	out := make([]api.Token, 0, len(tokens))
	for _, tok := range tokens {
		host, affix, ok := split(tok)
		if !ok {
			out = append(out, tok)
			continue
		}
		out = append(out, host, affix)
	}
	return out
}

func split(tok api.Token) (host, affix api.Token, ok bool) {
	if !tok.Affixed || tok.AffixLen <= 0 || len(tok.Syllables) == 0 {
		return
	}
	lastSyl := tok.Syllables[len(tok.Syllables)-1]
	if tok.AffixLen >= len(lastSyl) {
		return
	}
	hostLen := len(lastSyl) - tok.AffixLen
	cut := lastSyl[hostLen]
	numHostRunes := utf8.RuneCountInString(tok.Content[:cut])

	host = tok
	host.Content = tok.Content[:cut]
	host.Length = cut
	host.Syllables = slices.Clone(tok.Syllables)
	host.Syllables[len(host.Syllables)-1] = slices.Clone(lastSyl[:hostLen])
	host.Tag = tok.POS
	host.Affixed = false
	host.AffixHost = true
	host.CharGroups = slices.Clone(tok.CharGroups[:min(numHostRunes, len(tok.CharGroups))])

	affixSyl := make([]int, tok.AffixLen)
	for ii, offset := range lastSyl[hostLen:] {
		affixSyl[ii] = offset - cut
	}
	affix = api.Token{
		Content:    tok.Content[cut:],
		ChunkKind:  tok.ChunkKind,
		Start:      tok.Start + cut,
		Length:     tok.Length - cut,
		Syllables:  [][]int{affixSyl},
		Tag:        api.AffixPOS,
		POS:        api.AffixPOS,
		AffixType:  tok.AffixType,
		AffixLen:   tok.AffixLen,
		Affix:      true,
		CharGroups: slices.Clone(tok.CharGroups[min(numHostRunes, len(tok.CharGroups)):]),
	}
	return host, affix, true
}
