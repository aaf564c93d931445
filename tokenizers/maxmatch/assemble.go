package maxmatch

import (
	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/pkg/errors"
)

// assemble builds the token covering the given consecutive chunks of src.
//
// The token takes the kind of its last chunk, and the syllable offsets are made relative to its content.
// The zero api.Tag tags the token with the default tag of its kind.
func assemble(src api.ChunkSource, span []int, tag api.Tag) (api.Token, error) {
	if len(span) == 0 {
		return api.Token{}, errors.WithStack(ErrEmptySpan)
	}
	chunks := src.Chunks()
	first, last := chunks[span[0]], chunks[span[len(span)-1]]
	tok := api.Token{
		ChunkKind: last.Kind,
		Start:     first.Start,
	}
	for _, idx := range span {
		chunk := chunks[idx]
		tok.Length += chunk.Length
		if !chunk.IsSyllable() {
			continue
		}
		syl := make([]int, len(chunk.Syllable))
		for ii, offset := range chunk.Syllable {
			syl[ii] = offset - tok.Start
		}
		tok.Syllables = append(tok.Syllables, syl)
	}
	text := src.String()
	if tok.End() > len(text) {
		return api.Token{}, errors.Errorf("chunks %v span bytes [%d, %d) past the end of the text (%d bytes)",
			span, tok.Start, tok.End(), len(text))
	}
	tok.Content = text[tok.Start:tok.End()]

	tok.Tag = tag.Resolve(tok.ChunkKind)
	tok.POS = api.POSFromTag(tok.Tag)
	if api.IsAffixedTag(tok.Tag) {
		tok.Affixed = true
		if affixType, length, aa, ok := api.ParseAffix(tok.Tag); ok {
			tok.AffixType, tok.AffixLen, tok.AA = affixType, length, aa
		}
	}
	tok.CharGroups = src.ExportGroups(tok.Start, tok.Length)
	return tok, nil
}
