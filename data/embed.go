// Package data embeds the dictionaries shipped with the module.
package data

import _ "embed"

// Sample is a small dictionary of common words, in the TSV format read by trie.LoadDictionary.
//
//go:embed sample.tsv
var Sample []byte

// EmbeddedPrefix prefixes the names of embedded dictionaries in configuration files.
const EmbeddedPrefix = "embedded:"

var dictionaries = map[string][]byte{
	"sample": Sample,
}

// Dictionary returns the content of the embedded dictionary with the given name (without EmbeddedPrefix).
func Dictionary(name string) ([]byte, bool) {
	content, ok := dictionaries[name]
	return content, ok
}
