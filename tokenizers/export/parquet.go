// Package export writes tokens out of the tokenizer: as Parquet tables for analysis, or rendered as text
// for terminals.
package export

import (
	"strings"

	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

// Row is the Parquet record of one token.
type Row struct {
	// Doc identifies the tokenized text (e.g. the input file name) among the rows of a table.
	Doc string `parquet:"doc,dict"`

	// Index of the token in its text.
	Index int `parquet:"index"`

	Content   string `parquet:"content"`
	Cleaned   string `parquet:"cleaned"`
	Kind      string `parquet:"kind,dict"`
	Start     int    `parquet:"start"`
	Length    int    `parquet:"length"`
	Tag       string `parquet:"tag,dict"`
	POS       string `parquet:"pos,dict"`
	Affixed   bool   `parquet:"affixed"`
	AffixType string `parquet:"affix_type,dict"`
	AffixLen  int    `parquet:"affix_len"`
	AA        bool   `parquet:"aa"`
	Affix     bool   `parquet:"affix"`
	AffixHost bool   `parquet:"affix_host"`

	// Syllables holds the letters of each syllable, separated by a space.
	Syllables string `parquet:"syllables"`

	// CharGroups holds the group of each rune of Content, separated by "|".
	CharGroups string `parquet:"char_groups"`
}

// NewRows converts the tokens of the document doc to Parquet rows.
func NewRows(doc string, tokens []api.Token) []Row {
	rows := make([]Row, len(tokens))
	for ii, tok := range tokens {
		groups := make([]string, len(tok.CharGroups))
		for jj, g := range tok.CharGroups {
			groups[jj] = g.String()
		}
		rows[ii] = Row{
			Doc:        doc,
			Index:      ii,
			Content:    tok.Content,
			Cleaned:    tok.CleanedContent(),
			Kind:       tok.ChunkKind.String(),
			Start:      tok.Start,
			Length:     tok.Length,
			Tag:        tok.Tag,
			POS:        tok.POS,
			Affixed:    tok.Affixed,
			AffixType:  tok.AffixType,
			AffixLen:   tok.AffixLen,
			AA:         tok.AA,
			Affix:      tok.Affix,
			AffixHost:  tok.AffixHost,
			Syllables:  strings.Join(tok.SyllableStrings(), " "),
			CharGroups: strings.Join(groups, "|"),
		}
	}
	return rows
}

// WriteParquet writes the rows to a Parquet file, replacing it if it exists.
func WriteParquet(filePath string, rows []Row) error {
	if err := parquet.WriteFile(filePath, rows); err != nil {
		return errors.Wrapf(err, "failed to write %d tokens to %q", len(rows), filePath)
	}
	return nil
}

// ReadParquet reads the rows of a Parquet file written by WriteParquet.
func ReadParquet(filePath string) ([]Row, error) {
	rows, err := parquet.ReadFile[Row](filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tokens from %q", filePath)
	}
	return rows, nil
}
