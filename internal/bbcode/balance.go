package bbcode

import "strings"

// tagCounts is a running signed count per tag name, remembering the order in
// which names were first seen.
type tagCounts struct {
	names []string
	n     map[string]int
}

func countTags(toks []Token) tagCounts {
	tc := tagCounts{n: make(map[string]int)}
	for _, tok := range toks {
		var d int
		switch tok.Kind {
		case TagOpen:
			d = 1
		case TagClose:
			d = -1
		default:
			continue
		}
		if _, seen := tc.n[tok.Name]; !seen {
			tc.names = append(tc.names, tok.Name)
		}
		tc.n[tok.Name] += d
	}
	return tc
}

// CloseAllOpen returns a synthetic closing token for every open tag left
// unclosed within toks, grouped by name in first-seen order.
func CloseAllOpen(toks []Token) []Token {
	tc := countTags(toks)
	var out []Token
	for _, name := range tc.names {
		for n := tc.n[name]; n > 0; n-- {
			out = append(out, Closer(name))
		}
	}
	return out
}

// OpenAllClosed finds opening tokens for every closer within toks that has no
// matching opener there. Candidates are taken from the given reverse iterator,
// nearest first, until every deficit is met or the iterator is exhausted.
// The returned openers are in document order, ready to be prepended to toks.
func OpenAllClosed(toks []Token, from *Reverse) []Token {
	tc := countTags(toks)
	need := 0
	for _, name := range tc.names {
		if n := tc.n[name]; n < 0 {
			need -= n
		}
	}

	var found []Token
	for need > 0 {
		tok, ok := from.Next()
		if !ok {
			break
		}
		if tok.Kind != TagOpen || tc.n[tok.Name] >= 0 {
			continue
		}
		tc.n[tok.Name]++
		need--
		found = append(found, tok)
	}

	for i, j := 0, len(found)-1; i < j; i, j = i+1, j-1 {
		found[i], found[j] = found[j], found[i]
	}
	return found
}

// Reverse iterates a token sequence backward by index.
type Reverse struct {
	toks []Token
	i    int
}

// Backward returns an iterator over toks[:end] that yields toks[end-1]
// first and toks[0] last.
func Backward(toks []Token, end int) *Reverse {
	if end > len(toks) {
		end = len(toks)
	} else if end < 0 {
		end = 0
	}
	return &Reverse{toks: toks, i: end}
}

// Next returns the next token, moving toward the start of the sequence, and
// false once exhausted.
func (r *Reverse) Next() (Token, bool) {
	if r == nil || r.i <= 0 {
		return Token{}, false
	}
	r.i--
	return r.toks[r.i], true
}

// Pos returns the position of the last token returned by Next.
func (r *Reverse) Pos() int { return r.i }

// Reconstruct renders toks followed by closers for any tags they leave open,
// trimming surrounding whitespace.
func Reconstruct(toks []Token) string {
	closers := CloseAllOpen(toks)
	all := make([]Token, 0, len(toks)+len(closers))
	all = append(all, toks...)
	all = append(all, closers...)
	return strings.TrimSpace(Render(all))
}
