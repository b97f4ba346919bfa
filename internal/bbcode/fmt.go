package bbcode

import (
	"fmt"
	"io"
)

// Format writes the token's source text under the %s and %v verbs, or its
// quoted text under %q; under %+v a debug form is written instead, e.g.
// `TagOpen(color="red")`.
func (tok Token) Format(f fmt.State, c rune) {
	switch c {
	case 'v':
		if f.Flag('+') {
			switch tok.Kind {
			case TagOpen:
				if tok.Attr != "" {
					fmt.Fprintf(f, "%v(%s=%q)", tok.Kind, tok.Name, tok.Attr)
				} else {
					fmt.Fprintf(f, "%v(%s)", tok.Kind, tok.Name)
				}
			case TagClose:
				fmt.Fprintf(f, "%v(%s)", tok.Kind, tok.Name)
			default:
				fmt.Fprintf(f, "%v(%q)", tok.Kind, tok.Text)
			}
			return
		}
		io.WriteString(f, tok.Text)
	case 's':
		io.WriteString(f, tok.Text)
	case 'q':
		fmt.Fprintf(f, "%q", tok.Text)
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}

// Format writes a name for the receiver kind.
func (k Kind) Format(f fmt.State, _ rune) {
	switch k {
	case Literal:
		io.WriteString(f, "Literal")
	case Newline:
		io.WriteString(f, "Newline")
	case TagOpen:
		io.WriteString(f, "TagOpen")
	case TagClose:
		io.WriteString(f, "TagClose")
	default:
		fmt.Fprintf(f, "InvalidKind%d", int(k))
	}
}

// Format writes the area's spans as "[start:end ...]".
func (ar Area) Format(f fmt.State, _ rune) {
	io.WriteString(f, "[")
	for i, sp := range ar.spans {
		if i > 0 {
			io.WriteString(f, " ")
		}
		fmt.Fprintf(f, "%d:%d", sp.start, sp.end)
	}
	io.WriteString(f, "]")
}

// Format writes the document's rendered text; under %+v it writes a
// multi-line debug listing of every token and the index state.
func (doc *Document) Format(f fmt.State, c rune) {
	if !(c == 'v' && f.Flag('+')) {
		io.WriteString(f, Render(doc.tokens))
		return
	}
	for i, tok := range doc.tokens {
		fmt.Fprintf(f, "%d. @%d %+v\n", i, doc.origin[i], tok)
	}
	fmt.Fprintf(f, "newlines: %v", doc.newlines)
	for pair := doc.tags.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(f, "\n%s: opens=%v closes=%v", pair.Key, pair.Value.Opens, pair.Value.Closes)
	}
}
