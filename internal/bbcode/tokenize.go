package bbcode

import "strings"

// Tokenize splits src into Literal, Newline and tag tokens.
//
// Each run of consecutive newlines becomes a single Newline token. Bracketed
// constructs of the form [name], [/name], [name=attr], [name="attr"] or
// [name='attr'] become tag tokens when their case folded name is valid (see
// IsValidTag); otherwise they are kept as Literal tokens with their original
// text. Tokenize never fails: in the worst case the entire string is a single
// Literal.
func Tokenize(src string) []Token {
	var (
		toks []Token
		lit  int // start of pending literal text
	)
	flush := func(end int) {
		if end > lit {
			toks = append(toks, Token{Kind: Literal, Text: src[lit:end]})
		}
	}
	for i := 0; i < len(src); {
		j := strings.IndexAny(src[i:], "\n[")
		if j < 0 {
			break
		}
		i += j

		if src[i] == '\n' {
			k := i + 1
			for k < len(src) && src[k] == '\n' {
				k++
			}
			flush(i)
			toks = append(toks, Token{Kind: Newline, Text: src[i:k]})
			i, lit = k, k
			continue
		}

		tok, n := scanTag(src[i:])
		if n == 0 {
			i++
			continue
		}
		flush(i)
		toks = append(toks, tok)
		i += n
		lit = i
	}
	flush(len(src))
	return toks
}

// scanTag scans a bracketed construct at the start of s, which must begin
// with '['. Returns the token and its byte width, or a 0 width if s does not
// start with a well formed construct.
func scanTag(s string) (tok Token, n int) {
	i := 1
	closing := i < len(s) && s[i] == '/'
	if closing {
		i++
	}

	start := i
	for i < len(s) && !isTagDelim(s[i]) {
		i++
	}
	name := s[start:i]

	var attr string
	if i < len(s) && s[i] == '=' {
		i++
		j := strings.IndexAny(s[i:], "[]\n")
		if j < 0 || s[i+j] != ']' {
			return tok, 0
		}
		attr = unquoteAttr(s[i : i+j])
		i += j
	}

	if i >= len(s) || s[i] != ']' {
		return tok, 0
	}
	i++

	tok.Text = s[:i]
	name = strings.ToLower(name)
	if !IsValidTag(name) {
		tok.Kind = Literal
		return tok, i
	}
	tok.Name = name
	if closing {
		tok.Kind = TagClose
	} else {
		tok.Kind = TagOpen
		tok.Attr = attr
	}
	return tok, i
}

func isTagDelim(c byte) bool {
	switch c {
	case '[', ']', '=', '\n':
		return true
	}
	return false
}

func unquoteAttr(s string) string {
	if n := len(s); n >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[n-1] == q {
			return s[1 : n-1]
		}
	}
	return s
}
