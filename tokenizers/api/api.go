// Package api defines the types shared by the tokenizer pipeline: chunks, tokens, tags and the
// Trie and ChunkSource interfaces the segmentation engine walks over.
// It's just a hack to break the cyclic dependency, and allow the users to import `tokenizers` and get the
// default implementations.
package api

// TokenSpan represents the byte span of a token in the original text.
// Start and End are byte offsets (not rune offsets), suitable for slicing
// Go strings directly: originalText[span.Start:span.End].
type TokenSpan struct {
	Start int // start byte position (inclusive)
	End   int // end byte position (exclusive)
}

// Tokenizer interface converts a text into a list of tokens that covers the whole input.
type Tokenizer interface {
	Tokenize(text string) ([]Token, error)
}

// Node is a position in a Trie reached by walking zero or more characters from its root.
type Node interface {
	// IsMatch reports whether the path walked so far is a complete dictionary entry.
	IsMatch() bool

	// CanWalk reports whether the node has at least one outgoing edge.
	CanWalk() bool

	// IsTerminal reports whether the node is a leaf: no entry extends the current path.
	IsTerminal() bool

	// Data returns the tag attached to the entry, if IsMatch.
	Data() string
}

// Trie is the read-only prefix structure over dictionary entries walked by the segmentation engine.
//
// Implementations must be safe for concurrent walks as long as they are not modified.
type Trie interface {
	Root() Node

	// Walk attempts one edge transition for character r from node `from`.
	// It returns false if there is no such edge.
	Walk(r rune, from Node) (Node, bool)
}

// Chunk is a unit produced by pre-processing the input text.
//
// Syllable chunks hold in Syllable the byte offsets (in the original text) of the runes composing
// the syllable, excluding tseks and spaces. Non-syllable chunks have a nil Syllable.
type Chunk struct {
	Syllable []int
	Kind     ChunkKind
	Start    int // byte offset of the chunk in the original text
	Length   int // length in bytes, including attached spaces and tseks
}

// IsSyllable returns whether the chunk can be part of a word.
func (c Chunk) IsSyllable() bool {
	return c.Syllable != nil
}

// End returns the byte offset just past the chunk.
func (c Chunk) End() int {
	return c.Start + c.Length
}

// ChunkSource provides the ordered chunks of a pre-processed text.
type ChunkSource interface {
	// String returns the original text.
	String() string

	// Chunks returns the chunks, in order. They tile the original text.
	Chunks() []Chunk

	// ExportGroups returns the character group of each rune in text[start:start+length].
	ExportGroups(start, length int) []CharGroup
}

// ChunkKind classifies chunks, and by extension the tokens built from them.
type ChunkKind int

const (
	KindSyl ChunkKind = iota
	KindPunct
	KindNumeral
	KindSymbol
	KindNonBo
	KindSpace

	// KindWord and KindNonWord are never produced by pre-processing: they are the sentinels used
	// to request the default tag of a dictionary-less word or of a non-word.
	KindWord    ChunkKind = 1000
	KindNonWord ChunkKind = 1001
)

var chunkKindNames = map[ChunkKind]string{
	KindSyl:     "syl",
	KindPunct:   "punct",
	KindNumeral: "num",
	KindSymbol:  "sym",
	KindNonBo:   "non-bo",
	KindSpace:   "space",
	KindWord:    "word",
	KindNonWord: "non-word",
}

// String returns the name of the kind, which is also its default tag.
func (k ChunkKind) String() string {
	if name, ok := chunkKindNames[k]; ok {
		return name
	}
	return "unknown"
}
