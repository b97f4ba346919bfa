package bbcode_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jcorbin/tally/internal/bbcode"
)

func debugTokens(toks []Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = fmt.Sprintf("%+v", tok)
	}
	return out
}

func TestTokenize(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out []string
	}{
		{"", []string{}},
		{"plain", []string{`Literal("plain")`}},
		{"a\n\nb", []string{`Literal("a")`, `Newline("\n\n")`, `Literal("b")`}},
		{"[b]bold[/B]", []string{`TagOpen(b)`, `Literal("bold")`, `TagClose(b)`}},
		{`[color="red"]x[/color]`, []string{`TagOpen(color="red")`, `Literal("x")`, `TagClose(color)`}},
		{`[COLOR='red']`, []string{`TagOpen(color="red")`}},
		{`[url=http://example.com/?a=b]`, []string{`TagOpen(url="http://example.com/?a=b")`}},
		{`[quote="A, post: 1, member: 100"]`, []string{`TagOpen(quote="A, post: 1, member: 100")`}},
		{`[size='4]`, []string{`TagOpen(size="'4")`}},
		{"[X] vote", []string{`Literal("[X]")`, `Literal(" vote")`}},
		{"[[b]x", []string{`Literal("[")`, `TagOpen(b)`, `Literal("x")`}},
		{"[b", []string{`Literal("[b")`}},
		{"[foo]bar[/foo]", []string{`Literal("[foo]")`, `Literal("bar")`, `Literal("[/foo]")`}},
		{"[b=x\n]", []string{`Literal("[b=x")`, `Newline("\n")`, `Literal("]")`}},
		{"\n[s]x[/s]\n", []string{`Newline("\n")`, `TagOpen(s)`, `Literal("x")`, `TagClose(s)`, `Newline("\n")`}},
	} {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			toks := Tokenize(tc.in)
			assert.Equal(t, tc.out, debugTokens(toks))
			assert.Equal(t, tc.in, Render(toks), "must round trip")
		})
	}
}

func TestTokenize_roundTrip(t *testing.T) {
	for _, in := range []string{
		"[font=\"Tahoma\"][i]absbdasd[color=green]\n[x] vote1\n-- [b][x] vote[/color][/b][/i][/font]",
		"  [X] vote A-11\n-[X][b]subvote A-11[/b]\n\n",
		"[QUOTE=\"'Lement, post: 4046370, member: 4959\"][X] this is a vote[/QUOTE]",
		"[list][*] not a tag [/list] ]] [[ [=] [/] []",
		"unicode ✓ [b]ünï[/b] ✅",
	} {
		t.Run(fmt.Sprintf("%.20q", in), func(t *testing.T) {
			toks := Tokenize(in)
			assert.Equal(t, in, Render(toks))
			assert.Equal(t, strings.TrimSpace(in), Reconstruct(toks))
		})
	}
}

func TestPlainText(t *testing.T) {
	toks := Tokenize("[color=red][X][/color] [b]vote[/b]\nmore")
	assert.Equal(t, "[X] votemore", PlainText(toks))
}

func TestToken_Format(t *testing.T) {
	tok := Tokenize(`[color="red"]`)[0]
	for _, tc := range []struct {
		fmt string
		out string
	}{
		{"%s", `[color="red"]`},
		{"%v", `[color="red"]`},
		{"%q", `"[color=\"red\"]"`},
		{"%+v", `TagOpen(color="red")`},
		{"%d", "!(ERROR invalid format verb %d)"},
	} {
		assert.Equal(t, tc.out, fmt.Sprintf(tc.fmt, tok), "format %q", tc.fmt)
	}
	assert.Equal(t, "TagClose(b)", fmt.Sprintf("%+v", Closer("b")))
	assert.Equal(t, "[/b]", Closer("b").String())
	assert.Equal(t, "[post=7]", Opener("post", "7").String())
}
