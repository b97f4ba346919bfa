package tally

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jcorbin/tally/internal/bbcode"
)

// Voter identifies who cast a ballot, and where.
type Voter struct {
	Name   string // display name
	Key    string // normalized name
	PostID ID
}

// Ballot is an ordered list of vote lines, held as parallel slices, together
// with everyone who voted for it.
type Ballot struct {
	Markup     [][]bbcode.Token
	Plain      []string
	Normalized []string
	Marks      []Mark

	Voters []Voter

	// referred is set once dedup has settled the ballot's referrals.
	referred bool
}

// Len returns the number of ballot lines.
func (b *Ballot) Len() int { return len(b.Normalized) }

// Key returns the content key used to merge ballots: normalized lines, one
// per line.
func (b *Ballot) Key() string { return strings.Join(b.Normalized, "\n") }

// Tokens returns all markup lines joined by newlines.
func (b *Ballot) Tokens() []bbcode.Token {
	var toks []bbcode.Token
	for i, line := range b.Markup {
		if i > 0 {
			toks = append(toks, newline)
		}
		toks = append(toks, line...)
	}
	return toks
}

var newline = bbcode.Token{Kind: bbcode.Newline, Text: "\n"}

// Content returns the ballot content as balanced markup.
func (b *Ballot) Content() string { return bbcode.Reconstruct(b.Tokens()) }

// slice returns a new ballot over lines [i, j), with its own copy of the
// voter list so that later merges cannot alias.
func (b *Ballot) slice(i, j int) *Ballot {
	return &Ballot{
		Markup:     slices.Clip(b.Markup[i:j]),
		Plain:      slices.Clip(b.Plain[i:j]),
		Normalized: slices.Clip(b.Normalized[i:j]),
		Marks:      slices.Clip(b.Marks[i:j]),
		Voters:     slices.Clone(b.Voters),
	}
}

// splice replaces line i with all lines of other.
func (b *Ballot) splice(i int, other *Ballot) {
	b.Markup = slices.Replace(slices.Clone(b.Markup), i, i+1, other.Markup...)
	b.Plain = slices.Replace(slices.Clone(b.Plain), i, i+1, other.Plain...)
	b.Normalized = slices.Replace(slices.Clone(b.Normalized), i, i+1, other.Normalized...)
	b.Marks = slices.Replace(slices.Clone(b.Marks), i, i+1, other.Marks...)
}

// Format writes the ballot markup; under %+v it also lists every line's
// normalized form and all voters.
func (b *Ballot) Format(f fmt.State, c rune) {
	if !(c == 'v' && f.Flag('+')) {
		io.WriteString(f, b.Content())
		return
	}
	for i, line := range b.Markup {
		fmt.Fprintf(f, "%d. L%d %q => %q\n", i, b.Marks[i].Level(), bbcode.Render(line), b.Normalized[i])
	}
	io.WriteString(f, "voters:")
	for _, v := range b.Voters {
		fmt.Fprintf(f, " %s(%s)@%s", v.Name, v.Key, v.PostID)
	}
}
