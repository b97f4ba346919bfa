// Package preview renders tally reports as HTML, by way of Markdown, for
// viewing outside of the forum.
package preview

import (
	"html"
	"io"
	"net/url"
	"strings"
	"unicode"

	"github.com/russross/blackfriday/v2"

	"github.com/jcorbin/tally/internal/bbcode"
)

const (
	extensions = blackfriday.CommonExtensions | blackfriday.HardLineBreak
	htmlFlags  = blackfriday.CommonHTMLFlags | blackfriday.SkipHTML
)

// linkEscaper percent encodes what would end a Markdown link destination,
// or open an HTML tag, early.
var linkEscaper = strings.NewReplacer(
	"(", "%28", ")", "%29",
	"<", "%3C", ">", "%3E",
	" ", "%20", "\t", "%09", "\n", "%0A", "\r", "%0D",
)

var mdEscaper = func() *strings.Replacer {
	const special = "\\`*_{}[]()#+-.!|<>~"
	pairs := make([]string, 0, 2*len(special))
	for _, c := range special {
		pairs = append(pairs, string(c), `\`+string(c))
	}
	return strings.NewReplacer(pairs...)
}()

// Markdown converts markup tokens to Markdown. Bold, italic, and struck out
// text, and links, carry over; other tags are dropped while keeping their
// content. Literal text is escaped.
func Markdown(toks []bbcode.Token) string {
	var (
		sb    strings.Builder
		links []string
	)
	for _, tok := range toks {
		switch tok.Kind {
		case bbcode.Literal:
			mdEscaper.WriteString(&sb, tok.Text)
		case bbcode.Newline:
			sb.WriteString(tok.Text)
		case bbcode.TagOpen:
			if em := emphasis(tok.Name); em != "" {
				sb.WriteString(em)
			} else if target, ok := linkTarget(tok); ok {
				links = append(links, target)
				if target != "" {
					sb.WriteByte('[')
				}
			}
		case bbcode.TagClose:
			if em := emphasis(tok.Name); em != "" {
				sb.WriteString(em)
			} else if _, ok := linkTarget(tok); ok && len(links) > 0 {
				target := links[len(links)-1]
				links = links[:len(links)-1]
				if target != "" {
					sb.WriteString("](" + target + ")")
				}
			}
		}
	}
	return sb.String()
}

func emphasis(name string) string {
	switch name {
	case "b":
		return "**"
	case "i":
		return "*"
	case "s":
		return "~~"
	}
	return ""
}

// linkTarget returns the link destination of a linking tag; ok is false for
// tags that never link. The target is empty, and the tag's content is kept
// as plain text, when its attribute is not a usable destination.
func linkTarget(tok bbcode.Token) (target string, ok bool) {
	switch tok.Name {
	case "url":
		return webURL(tok.Attr), true
	case "post", "thread", "user":
		if isID(tok.Attr) {
			target = "#" + tok.Name + "-" + tok.Attr
		}
		return target, true
	}
	return "", false
}

// webURL returns s as an escaped link destination, or "" unless it is an
// absolute http or https URL.
func webURL(s string) string {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return linkEscaper.Replace(u.String())
	}
	return ""
}

func isID(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_')
	}) < 0
}

// HTML renders report markup as an HTML fragment. Tags left open by the
// report are closed first.
func HTML(report string) []byte {
	toks := bbcode.Tokenize(report)
	toks = append(toks, bbcode.CloseAllOpen(toks)...)
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: htmlFlags})
	return blackfriday.Run([]byte(Markdown(toks)),
		blackfriday.WithExtensions(extensions),
		blackfriday.WithRenderer(renderer))
}

// WriteHTML writes a complete HTML page around the report fragment.
func WriteHTML(w io.Writer, title, report string) error {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title>\n</head>\n<body>\n")
	sb.Write(HTML(report))
	sb.WriteString("</body>\n</html>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
