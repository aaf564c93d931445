package api

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// aaRune is the final letter dropped from a host word when some affixes are attached.
const aaRune = 'འ'

// Token is one unit of the tokenized text.
//
// Tokens are created by the segmentation engine and must be treated as immutable: the slices they hold
// may be shared with cached results.
type Token struct {
	// Content is the exact substring of the text covered by the token, including attached spaces and tseks.
	Content string

	// ChunkKind of the last chunk of the token.
	ChunkKind ChunkKind

	// Start and Length are byte offsets of Content in the original text.
	Start, Length int

	// Syllables holds, for each syllable of the token, the byte offsets of its letters in Content.
	// It is empty for tokens built from non-syllable chunks.
	Syllables [][]int

	// Tag is the dictionary tag, or the default tag of the token's kind.
	Tag string

	// POS is the coarse part-of-speech decoded from Tag.
	POS string

	// Affixed is set when Tag describes a word with an attached affix.
	Affixed bool

	// AffixType, AffixLen (in runes) and AA are decoded from the tag of affixed words and kept on the
	// host token after splitting.
	AffixType string
	AffixLen  int
	AA        bool

	// Affix is set on tokens split off their host word, AffixHost on the remaining host.
	Affix     bool
	AffixHost bool

	// CharGroups holds the group of each rune of Content.
	CharGroups []CharGroup
}

// Span returns the byte span of the token in the original text.
func (t Token) Span() TokenSpan {
	return TokenSpan{Start: t.Start, End: t.Start + t.Length}
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Start + t.Length
}

// SyllableStrings returns the letters of each syllable, without tseks or spaces.
func (t Token) SyllableStrings() []string {
	syls := make([]string, 0, len(t.Syllables))
	for _, syl := range t.Syllables {
		var sb strings.Builder
		for _, offset := range syl {
			r, _ := utf8.DecodeRuneInString(t.Content[offset:])
			sb.WriteRune(r)
		}
		syls = append(syls, sb.String())
	}
	return syls
}

// CleanedContent returns the syllables of the token each followed by a single tsek, with spaces removed.
// The འ dropped from an affix host is restored. It returns "" for tokens without syllables.
func (t Token) CleanedContent() string {
	syls := t.SyllableStrings()
	if len(syls) == 0 {
		return ""
	}
	var sb strings.Builder
	for ii, syl := range syls {
		sb.WriteString(syl)
		if ii == len(syls)-1 && t.AffixHost && t.AA {
			sb.WriteRune(aaRune)
		}
		sb.WriteString(Tsek)
	}
	return sb.String()
}

// String returns a multi-line description of the token, for debugging.
func (t Token) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "content: %q\n", t.Content)
	groups := make([]string, len(t.CharGroups))
	for ii, g := range t.CharGroups {
		groups[ii] = g.String()
	}
	fmt.Fprintf(&sb, "char types: |%s|\n", strings.Join(groups, "|"))
	fmt.Fprintf(&sb, "type: %s\n", t.ChunkKind)
	fmt.Fprintf(&sb, "start in input: %d\n", t.Start)
	fmt.Fprintf(&sb, "length: %d\n", t.Length)
	if len(t.Syllables) > 0 {
		fmt.Fprintf(&sb, "syl chars in content(%s): %v\n", strings.Join(t.SyllableStrings(), " "), t.Syllables)
	}
	fmt.Fprintf(&sb, "tag: %s\n", t.Tag)
	fmt.Fprintf(&sb, "POS: %s\n", t.POS)
	switch {
	case t.Affix:
		fmt.Fprintf(&sb, "affix: %s\n", t.AffixType)
	case t.AffixHost:
		fmt.Fprintf(&sb, "affix host (aa: %t)\n", t.AA)
	case t.Affixed:
		fmt.Fprintf(&sb, "affixed: %s, %d chars (aa: %t)\n", t.AffixType, t.AffixLen, t.AA)
	}
	return sb.String()
}
