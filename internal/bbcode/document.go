package bbcode

import (
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document owns a token sequence along with derived position indices: for
// every tag name the sorted positions of its open and close tokens, and the
// sorted positions of all newline tokens.
//
// Every indexed position refers to a live token of the matching kind; this is
// re-established after any Remove. A Document also remembers the sequence as
// it was first indexed, and maps every live position back to it (see Origin).
//
// It is not safe to use a Document from parallel goroutines.
type Document struct {
	tokens   []Token
	original []Token
	origin   []int

	tags     *orderedmap.OrderedMap[string, *Positions]
	newlines []int
}

// Positions holds the sorted open and close token positions of one tag name.
type Positions struct {
	Opens  []int
	Closes []int
}

func (pos *Positions) empty() bool { return len(pos.Opens) == 0 && len(pos.Closes) == 0 }

// NewDocument tokenizes and indexes src.
func NewDocument(src string) *Document { return Index(Tokenize(src)) }

// Index builds a Document over the given tokens in a single pass.
// The document takes ownership of the tokens slice.
func Index(tokens []Token) *Document {
	doc := &Document{
		tokens:   slices.Clone(tokens),
		original: tokens,
		origin:   make([]int, len(tokens)),
	}
	for i := range doc.origin {
		doc.origin[i] = i
	}
	doc.tags, doc.newlines = scanIndex(doc.tokens)
	return doc
}

func scanIndex(tokens []Token) (*orderedmap.OrderedMap[string, *Positions], []int) {
	var (
		tags     = orderedmap.New[string, *Positions]()
		newlines []int
	)
	for i, tok := range tokens {
		switch tok.Kind {
		case Newline:
			newlines = append(newlines, i)
		case TagOpen, TagClose:
			pos, ok := tags.Get(tok.Name)
			if !ok {
				pos = &Positions{}
				tags.Set(tok.Name, pos)
			}
			if tok.Kind == TagOpen {
				pos.Opens = append(pos.Opens, i)
			} else {
				pos.Closes = append(pos.Closes, i)
			}
		}
	}
	return tags, newlines
}

// Len returns the number of live tokens.
func (doc *Document) Len() int { return len(doc.tokens) }

// Tokens returns the live token sequence; the caller must not modify it.
func (doc *Document) Tokens() []Token { return doc.tokens }

// Token returns the live token at position i.
func (doc *Document) Token(i int) Token { return doc.tokens[i] }

// Original returns the token sequence as it was when the document was
// indexed, before any Remove.
func (doc *Document) Original() []Token { return doc.original }

// Origin maps a live position to its position within Original.
// Position Len() maps to the end of the original sequence.
func (doc *Document) Origin(i int) int {
	if i >= len(doc.origin) {
		return len(doc.original)
	}
	return doc.origin[i]
}

// Slice returns the live tokens within [i, j); the caller must not modify
// the returned slice.
func (doc *Document) Slice(i, j int) []Token { return doc.tokens[i:j] }

// SkipSlice returns a copy of the live tokens within [start, stop) omitting
// any position within skip.
func (doc *Document) SkipSlice(start, stop int, skip Area) []Token {
	out := make([]Token, 0, stop-start)
	i := start
	for _, sp := range skip.spans[skip.find(start):] {
		if sp.start >= stop {
			break
		}
		if sp.start > i {
			out = append(out, doc.tokens[i:sp.start]...)
		}
		if sp.end > i {
			i = sp.end
		}
	}
	if i < stop {
		out = append(out, doc.tokens[i:stop]...)
	}
	return out
}

// Tags returns indexed tag names in the order they were first seen.
func (doc *Document) Tags() []string {
	names := make([]string, 0, doc.tags.Len())
	for pair := doc.tags.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Positions returns the open and close positions of the named tag.
// The caller must not modify the returned slices.
func (doc *Document) Positions(name string) (opens, closes []int) {
	if pos, ok := doc.tags.Get(name); ok {
		return pos.Opens, pos.Closes
	}
	return nil, nil
}

// Newlines returns the positions of all newline tokens.
// The caller must not modify the returned slice.
func (doc *Document) Newlines() []int { return doc.newlines }

// Points returns an area covering every tag and newline position, i.e. every
// token that does not contribute plain text.
func (doc *Document) Points() (ar Area) {
	for i, tok := range doc.tokens {
		if tok.Kind != Literal {
			ar.AddPoint(i)
		}
	}
	return ar
}

// Verify re-scans the live tokens and returns an error describing the first
// difference from the maintained indices, if any.
func (doc *Document) Verify() error {
	if len(doc.origin) != len(doc.tokens) {
		return fmt.Errorf("origin map has %d entries for %d tokens", len(doc.origin), len(doc.tokens))
	}
	for i, o := range doc.origin {
		if o < 0 || o >= len(doc.original) || doc.original[o] != doc.tokens[i] {
			return fmt.Errorf("token %d does not match its origin %d", i, o)
		}
	}

	tags, newlines := scanIndex(doc.tokens)
	if !slices.Equal(newlines, doc.newlines) {
		return fmt.Errorf("newline index %v, expected %v", doc.newlines, newlines)
	}
	for pair := doc.tags.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := tags.Get(pair.Key); !ok && !pair.Value.empty() {
			return fmt.Errorf("stale %q tag index %+v", pair.Key, *pair.Value)
		}
	}
	for pair := tags.Oldest(); pair != nil; pair = pair.Next() {
		have, ok := doc.tags.Get(pair.Key)
		if !ok {
			return fmt.Errorf("missing %q tag index", pair.Key)
		}
		if !slices.Equal(have.Opens, pair.Value.Opens) {
			return fmt.Errorf("%q open index %v, expected %v", pair.Key, have.Opens, pair.Value.Opens)
		}
		if !slices.Equal(have.Closes, pair.Value.Closes) {
			return fmt.Errorf("%q close index %v, expected %v", pair.Key, have.Closes, pair.Value.Closes)
		}
	}
	return nil
}
