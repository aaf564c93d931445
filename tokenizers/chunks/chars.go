package chunks

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/gomlx/go-botok/tokenizers/api"
	"golang.org/x/text/unicode/rangetable"
)

// Tibetan block character tables.
var (
	skrtConsRunes    = []rune{0x0F43, 0x0F4A, 0x0F4B, 0x0F4C, 0x0F4D, 0x0F4E, 0x0F52, 0x0F57, 0x0F5C, 0x0F69, 0x0F6B, 0x0F6C}
	skrtSubConsRunes = []rune{0x0F93, 0x0F9A, 0x0F9B, 0x0F9C, 0x0F9D, 0x0F9E, 0x0FA2, 0x0FA7, 0x0FAC, 0x0FB9, 0x0FBA, 0x0FBB, 0x0FBC}

	tsekTable        = rangetable.New(0x0F0B, 0x0F0C)
	consTable        = rangetable.New(runeSpan(0x0F40, 0x0F6C, skrtConsRunes...)...)
	skrtConsTable    = rangetable.New(skrtConsRunes...)
	subConsTable     = rangetable.New(runeSpan(0x0F90, 0x0FBC, skrtSubConsRunes...)...)
	skrtSubConsTable = rangetable.New(skrtSubConsRunes...)
	vowTable         = rangetable.New(0x0F72, 0x0F74, 0x0F7A, 0x0F7C, 0x0F80)
	skrtVowTable     = rangetable.New(0x0F71, 0x0F73, 0x0F75, 0x0F76, 0x0F77, 0x0F78, 0x0F79, 0x0F7B, 0x0F7D, 0x0F81)
	inSylMarkTable   = rangetable.Merge(
		rangetable.New(0x0F18, 0x0F19, 0x0F35, 0x0F37, 0x0F39, 0x0F3E, 0x0F3F, 0x0F7E, 0x0F7F, 0x0F82, 0x0F83, 0x0F84, 0x0F86, 0x0F87, 0x0FC6),
		rangetable.New(runeSpan(0x0F88, 0x0F8F)...),
	)
	normalPunctTable  = rangetable.New(append(runeSpan(0x0F0D, 0x0F12), 0x0F14)...)
	specialPunctTable = rangetable.New(append(runeSpan(0x0F01, 0x0F0A), 0x0F3A, 0x0F3B, 0x0F3C, 0x0F3D, 0x0F85, 0x0FD0, 0x0FD1, 0x0FD2, 0x0FD3, 0x0FD4, 0x0FD9, 0x0FDA)...)
	numeralTable      = rangetable.New(runeSpan(0x0F20, 0x0F33)...)
	symbolTable       = rangetable.Merge(
		rangetable.New(0x0F00, 0x0F13, 0x0F15, 0x0F16, 0x0F17, 0x0F34, 0x0F36, 0x0F38),
		rangetable.New(runeSpan(0x0F1A, 0x0F1F)...),
		rangetable.New(runeSpan(0x0FBE, 0x0FC5)...),
		rangetable.New(runeSpan(0x0FC7, 0x0FCC)...),
		rangetable.New(0x0FCE, 0x0FCF, 0x0FD5, 0x0FD6, 0x0FD7, 0x0FD8),
	)
	cjkTable = rangetable.Merge(unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
)

// groupTables is checked in order: the first table containing the rune gives its group.
var groupTables = []struct {
	table *unicode.RangeTable
	group api.CharGroup
}{
	{tsekTable, api.CharTsek},
	{consTable, api.CharCons},
	{subConsTable, api.CharSubCons},
	{vowTable, api.CharVow},
	{skrtConsTable, api.CharSkrtCons},
	{skrtSubConsTable, api.CharSkrtSubCons},
	{skrtVowTable, api.CharSkrtVow},
	{inSylMarkTable, api.CharInSylMark},
	{normalPunctTable, api.CharNormalPunct},
	{specialPunctTable, api.CharSpecialPunct},
	{numeralTable, api.CharNumeral},
	{symbolTable, api.CharSymbol},
	{cjkTable, api.CharCJK},
}

// runeSpan returns the runes from lo to hi (inclusive), skipping the ones in except.
func runeSpan(lo, hi rune, except ...rune) []rune {
	runes := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		if slices.Contains(except, r) {
			continue
		}
		runes = append(runes, r)
	}
	return runes
}

// Classify returns the character group of r.
func Classify(r rune) api.CharGroup {
	if unicode.IsSpace(r) {
		return api.CharSpace
	}
	for _, gt := range groupTables {
		if unicode.Is(gt.table, r) {
			return gt.group
		}
	}
	if r < utf8.RuneSelf || unicode.Is(unicode.Latin, r) {
		return api.CharLatin
	}
	return api.CharOther
}
