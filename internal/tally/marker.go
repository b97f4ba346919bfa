package tally

import (
	"regexp"
	"unicode"
)

// DefaultVoteMarker matches an X or a check mark in square brackets.
const DefaultVoteMarker = `\[[xX✅✓✔]\]`

// Marker recognizes ballot lines: lines whose plain text starts with a
// (possibly empty) run of non-word characters followed by the vote marker.
type Marker struct {
	pattern string
	re      *regexp.Regexp
}

// CompileMarker compiles a vote marker pattern; the empty pattern means
// DefaultVoteMarker. Matching is case insensitive.
func CompileMarker(pattern string) (*Marker, error) {
	if pattern == "" {
		pattern = DefaultVoteMarker
	}
	re, err := regexp.Compile(`^([^\p{L}\p{N}_]*)(?i:` + pattern + `)`)
	if err != nil {
		return nil, &ConfigError{"vote_marker", err}
	}
	return &Marker{pattern: pattern, re: re}, nil
}

// Pattern returns the marker pattern as given to CompileMarker.
func (m *Marker) Pattern() string { return m.pattern }

// Mark records where the marker matched within a ballot line.
type Mark struct {
	// Prefix is the run of non-word characters before the marker symbol.
	Prefix string

	// End is the byte offset just after the marker symbol.
	End int
}

// Match returns the marker match at the start of line, if any.
func (m *Marker) Match(line string) (Mark, bool) {
	loc := m.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return Mark{}, false
	}
	return Mark{Prefix: line[loc[2]:loc[3]], End: loc[1]}, true
}

// Strip removes the marker match, if any, from the start of line.
func (m *Marker) Strip(line string) string {
	if mark, ok := m.Match(line); ok {
		return line[mark.End:]
	}
	return line
}

// Level returns the indentation level of a ballot line: the number of
// non-space characters before its marker, so "[X]" is 0 and "-[X]" is 1.
func (mark Mark) Level() (n int) {
	for _, r := range mark.Prefix {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
