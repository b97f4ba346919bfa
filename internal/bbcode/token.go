// Package bbcode tokenizes forum post markup, indexes tag and line positions
// within the resulting token sequence, and supports excising tag delimited
// regions while keeping those indices valid.
//
// It is not a markup parser: there is no grammar, and no nesting is enforced.
// Anything that does not look like a recognized tag is literal text, so every
// token sequence renders back to exactly the text it came from.
package bbcode

import "strings"

// Kind distinguishes the variants of a Token.
type Kind int

// Kind constants; the zero value is literal text.
const (
	Literal Kind = iota
	Newline
	TagOpen
	TagClose
)

// Token is one piece of tokenized markup.
type Token struct {
	Kind Kind

	// Text is the exact source text of the token. Synthetic tokens, as made
	// by Closer, carry their canonical form.
	Text string

	// Name is the case folded tag name of TagOpen and TagClose tokens.
	Name string

	// Attr is the (unquoted) attribute of a tag, as in [color=red].
	Attr string
}

// String returns the token source text.
func (tok Token) String() string { return tok.Text }

// IsTag returns true for TagOpen and TagClose tokens.
func (tok Token) IsTag() bool { return tok.Kind == TagOpen || tok.Kind == TagClose }

// Opens returns true if the token opens the named tag.
func (tok Token) Opens(name string) bool { return tok.Kind == TagOpen && tok.Name == name }

// Closes returns true if the token closes the named tag.
func (tok Token) Closes(name string) bool { return tok.Kind == TagClose && tok.Name == name }

// Closer returns a synthetic closing token for the named tag.
func Closer(name string) Token {
	return Token{Kind: TagClose, Text: "[/" + name + "]", Name: name}
}

// Opener returns a synthetic opening token for the named tag, with an
// optional attribute.
func Opener(name, attr string) Token {
	text := "[" + name + "]"
	if attr != "" {
		text = "[" + name + "=" + attr + "]"
	}
	return Token{Kind: TagOpen, Text: text, Name: name, Attr: attr}
}

// Render concatenates the source text of all tokens.
func Render(toks []Token) string {
	n := 0
	for _, tok := range toks {
		n += len(tok.Text)
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, tok := range toks {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// PlainText concatenates the text of Literal tokens only; tags and newlines
// contribute nothing.
func PlainText(toks []Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		if tok.Kind == Literal {
			sb.WriteString(tok.Text)
		}
	}
	return sb.String()
}

var validTags = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"b", "i", "u", "s", "font", "color", "size", "url", "email", "user",
		"img", "media", "thread", "post", "list", "left", "right", "center",
		"quote", "code", "spoiler", "php", "html", "indent", "plain",
		"attach", "accordion", "article", "bimg", "encadre", "fieldset",
		"fleft", "fright", "gview", "latex", "slider", "spoilerbb", "tabs",
		"xtable",
	} {
		validTags[name] = struct{}{}
	}
}

// IsValidTag returns true if the given (already folded) name is a recognized
// tag name.
func IsValidTag(name string) bool {
	_, ok := validTags[name]
	return ok
}
