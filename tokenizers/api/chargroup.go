package api

// CharGroup is the category of a single character of the text.
type CharGroup int

const (
	CharCons CharGroup = iota
	CharSubCons
	CharVow
	CharTsek
	CharSkrtCons
	CharSkrtSubCons
	CharSkrtVow
	CharInSylMark
	CharNormalPunct
	CharSpecialPunct
	CharNumeral
	CharSymbol
	CharSpace
	CharLatin
	CharCJK
	CharOther
)

var charGroupNames = [...]string{
	CharCons:         "cons",
	CharSubCons:      "sub-cons",
	CharVow:          "vow",
	CharTsek:         "tsek",
	CharSkrtCons:     "skrt-cons",
	CharSkrtSubCons:  "skrt-sub-cons",
	CharSkrtVow:      "skrt-vow",
	CharInSylMark:    "in-syl-mark",
	CharNormalPunct:  "punct",
	CharSpecialPunct: "special-punct",
	CharNumeral:      "num",
	CharSymbol:       "sym",
	CharSpace:        "space",
	CharLatin:        "latin",
	CharCJK:          "cjk",
	CharOther:        "other",
}

func (g CharGroup) String() string {
	if g < 0 || int(g) >= len(charGroupNames) {
		return "unknown"
	}
	return charGroupNames[g]
}

// IsSyllabic reports whether characters of the group are part of a syllable's letters.
func (g CharGroup) IsSyllabic() bool {
	switch g {
	case CharCons, CharSubCons, CharVow, CharSkrtCons, CharSkrtSubCons, CharSkrtVow, CharInSylMark:
		return true
	}
	return false
}

// IsVowel reports whether the group is a vowel sign.
func (g CharGroup) IsVowel() bool {
	return g == CharVow || g == CharSkrtVow
}
