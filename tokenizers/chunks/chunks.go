// Package chunks pre-processes a text into the ordered sequence of chunks walked by the segmentation engine:
// Tibetan syllables on one hand, and punctuation, numerals, symbols and non-Tibetan runs on the other.
//
// Chunks tile the text: concatenating text[c.Start:c.End()] for all chunks reconstructs the original string.
// Spaces are never chunks on their own (except for texts made only of spaces): they are attached to the
// preceding syllable, or else to the following chunk.
package chunks

import (
	"slices"
	"sort"
	"strings"

	"github.com/gomlx/go-botok/tokenizers/api"
)

// Text is a pre-processed text. It implements api.ChunkSource.
type Text struct {
	text    string
	offsets []int // byte offset of each rune
	groups  []api.CharGroup
	chunks  []api.Chunk
}

// Compile time assert that Text implements api.ChunkSource.
var _ api.ChunkSource = &Text{}

// New classifies the characters of text and splits it into chunks.
func New(text string) *Text {
	t := &Text{text: text}
	for ii, r := range text {
		t.offsets = append(t.offsets, ii)
		t.groups = append(t.groups, Classify(r))
	}
	t.chunks = attachSpaces(t.rawChunks())
	return t
}

// String returns the original text.
func (t *Text) String() string {
	return t.text
}

// Chunks returns the chunks of the text, in order.
func (t *Text) Chunks() []api.Chunk {
	return t.chunks
}

// ExportGroups returns the character group of each rune in text[start:start+length].
func (t *Text) ExportGroups(start, length int) []api.CharGroup {
	lo := sort.SearchInts(t.offsets, start)
	hi := sort.SearchInts(t.offsets, start+length)
	return slices.Clone(t.groups[lo:hi])
}

// byteOffset returns the byte offset of the rune at index ii, or len(text) past the last rune.
func (t *Text) byteOffset(ii int) int {
	if ii >= len(t.offsets) {
		return len(t.text)
	}
	return t.offsets[ii]
}

// rawChunks splits the text in maximal runs, with spaces as KindSpace chunks.
func (t *Text) rawChunks() []api.Chunk {
	var raw []api.Chunk
	n := len(t.groups)
	ii := 0
	for ii < n {
		start := ii
		var syllable []int
		var kind api.ChunkKind
		switch g := t.groups[ii]; {
		case g.IsSyllabic():
			kind = api.KindSyl
			syllable, ii = t.scanSyllable(ii)
		case g == api.CharSpace:
			kind = api.KindSpace
			ii = t.scanWhile(ii, func(g api.CharGroup) bool { return g == api.CharSpace })
		case g == api.CharTsek || g == api.CharNormalPunct || g == api.CharSpecialPunct:
			kind = api.KindPunct
			ii = t.scanWhile(ii, func(g api.CharGroup) bool {
				return g == api.CharTsek || g == api.CharNormalPunct || g == api.CharSpecialPunct
			})
		case g == api.CharNumeral:
			kind = api.KindNumeral
			ii = t.scanWhile(ii, func(g api.CharGroup) bool { return g == api.CharNumeral })
		case g == api.CharSymbol:
			kind = api.KindSymbol
			ii = t.scanWhile(ii, func(g api.CharGroup) bool { return g == api.CharSymbol })
		default:
			kind = api.KindNonBo
			ii = t.scanWhile(ii, isNonBo)
		}
		startByte := t.byteOffset(start)
		raw = append(raw, api.Chunk{
			Syllable: syllable,
			Kind:     kind,
			Start:    startByte,
			Length:   t.byteOffset(ii) - startByte,
		})
	}
	return raw
}

func isNonBo(g api.CharGroup) bool {
	return g == api.CharLatin || g == api.CharCJK || g == api.CharOther
}

// scanWhile returns the index of the first rune from ii for which fn is false.
func (t *Text) scanWhile(ii int, fn func(g api.CharGroup) bool) int {
	for ii < len(t.groups) && fn(t.groups[ii]) {
		ii++
	}
	return ii
}

// scanSyllable collects the letters of the syllable starting at rune ii, and returns their byte offsets and
// the index of the first rune after the syllable's tseks.
//
// Spaces between two letters (without a tsek in between) are skipped over, they don't end the syllable.
func (t *Text) scanSyllable(ii int) (syllable []int, next int) {
	n := len(t.groups)
	for ii < n {
		if t.groups[ii].IsSyllabic() {
			syllable = append(syllable, t.offsets[ii])
			ii++
			continue
		}
		if t.groups[ii] == api.CharSpace {
			end := t.scanWhile(ii, func(g api.CharGroup) bool { return g == api.CharSpace })
			if end < n && t.groups[end].IsSyllabic() && !strings.Contains(t.text[t.offsets[ii]:t.offsets[end]], "\n") {
				ii = end
				continue
			}
		}
		break
	}
	ii = t.scanWhile(ii, func(g api.CharGroup) bool { return g == api.CharTsek })
	return syllable, ii
}

// attachSpaces merges the space chunks into their neighbours.
func attachSpaces(raw []api.Chunk) []api.Chunk {
	chunks := make([]api.Chunk, 0, len(raw))
	for ii, c := range raw {
		if c.Kind != api.KindSpace {
			chunks = append(chunks, c)
			continue
		}
		switch {
		case len(chunks) > 0 && chunks[len(chunks)-1].IsSyllable():
			chunks[len(chunks)-1].Length += c.Length
		case ii+1 < len(raw):
			raw[ii+1].Start = c.Start
			raw[ii+1].Length += c.Length
		case len(chunks) > 0:
			chunks[len(chunks)-1].Length += c.Length
		default:
			chunks = append(chunks, c)
		}
	}
	return chunks
}
