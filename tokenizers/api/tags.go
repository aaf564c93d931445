package api

import (
	"strconv"
	"strings"
)

const (
	// Tsek is the syllable separator. It is appended to every syllable before walking the trie.
	Tsek = "་"

	// TsekRune is Tsek as a rune.
	TsekRune = '་'

	// AffixSep separates the fields of a dictionary tag: "POSᛃTYPEᛃLENᛃAA".
	AffixSep = "ᛃ"

	// AffixPOS is the part-of-speech given to affixes split off their host word.
	AffixPOS = "PART"
)

// compoundSep marks a word with empty affix fields. It must not be mistaken for an affix marker.
var compoundSep = strings.Repeat(AffixSep, 3)

// Tag is the tag requested for a token: either the default tag of a ChunkKind, or a literal tag
// string coming from the dictionary.
//
// The zero value is the default tag of the token's own chunk kind.
type Tag struct {
	literal string
	kind    ChunkKind
	mode    tagMode
}

type tagMode int

const (
	tagOwnKind tagMode = iota
	tagDefault
	tagLiteral
)

// DefaultTag returns a Tag resolved from the default tag table for kind.
// Use it with KindWord or KindNonWord to tag tokens that have no dictionary data.
func DefaultTag(kind ChunkKind) Tag {
	return Tag{kind: kind, mode: tagDefault}
}

// LiteralTag returns a Tag holding a dictionary tag string, used as-is.
// An empty literal falls back to the default tag of the token's chunk kind.
func LiteralTag(tag string) Tag {
	return Tag{literal: tag, mode: tagLiteral}
}

// Resolve returns the tag string for a token whose chunk kind is kind.
func (t Tag) Resolve(kind ChunkKind) string {
	switch t.mode {
	case tagDefault:
		return t.kind.String()
	case tagLiteral:
		if t.literal != "" {
			return t.literal
		}
	}
	return kind.String()
}

// POSFromTag returns the coarse part-of-speech of a tag: the text before the first AffixSep.
func POSFromTag(tag string) string {
	pos, _, _ := strings.Cut(tag, AffixSep)
	return pos
}

// IsAffixedTag reports whether the tag describes a word with an attached affix.
// Tags with empty affix fields ("POSᛃᛃᛃ") are not affixed.
func IsAffixedTag(tag string) bool {
	return strings.Contains(tag, AffixSep) && !strings.Contains(tag, compoundSep)
}

// AffixTag returns the tag of a word carrying the given affix.
// length is the number of runes of the affix, aa tells whether a final འ was dropped from the host.
func AffixTag(pos, affixType string, length int, aa bool) string {
	var aaField string
	if aa {
		aaField = "aa"
	}
	return strings.Join([]string{pos, affixType, strconv.Itoa(length), aaField}, AffixSep)
}

// WordTag returns the tag of a dictionary word without affix.
func WordTag(pos string) string {
	return pos + compoundSep
}

// ParseAffix decodes the affix fields of an affixed tag.
// It returns ok=false if the tag is not affixed or is malformed.
func ParseAffix(tag string) (affixType string, length int, aa bool, ok bool) {
	if !IsAffixedTag(tag) {
		return "", 0, false, false
	}
	fields := strings.Split(tag, AffixSep)
	if len(fields) != 4 {
		return "", 0, false, false
	}
	length, err := strconv.Atoi(fields[2])
	if err != nil || length <= 0 {
		return "", 0, false, false
	}
	return fields[1], length, fields[3] == "aa", true
}
