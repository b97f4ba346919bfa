package tally

import (
	"strings"

	"github.com/jcorbin/tally/internal/bbcode"
)

// DefaultExcise names the tags whose content never counts as a vote: quoted
// posts, spoilers, and struck out text.
var DefaultExcise = []string{"quote", "spoiler", "s"}

// Extractor pulls ballot lines out of a post message.
// An Extractor is safe for concurrent use once constructed.
type Extractor struct {
	Marker *Marker

	// Excise names the tags to excise before looking for ballot lines;
	// DefaultExcise is used when nil.
	Excise []string
}

// Extracted holds the ballot lines of one message as parallel slices.
type Extracted struct {
	Markup [][]bbcode.Token
	Plain  []string
	Marks  []Mark
}

// Len returns the number of extracted lines.
func (ext Extracted) Len() int { return len(ext.Plain) }

// Extract tokenizes message, excises unwanted regions, and keeps every line
// whose plain text starts with the vote marker. The first kept line is
// prefixed with openers for any tags that the kept lines close but never
// open, found by scanning the unexcised message backward from it.
// Returns false if no line matched.
func (ex Extractor) Extract(message string) (ext Extracted, ok bool) {
	doc := bbcode.NewDocument(message)
	if names := ex.excise(); mentionsAny(message, names) {
		doc.Remove(names...)
	}

	first := -1
	var all []bbcode.Token
	for _, line := range doc.Lines() {
		mark, ok := ex.Marker.Match(line.Text)
		if !ok {
			continue
		}
		if first < 0 {
			first = line.Start
		}
		ext.Markup = append(ext.Markup, line.Tokens)
		ext.Plain = append(ext.Plain, line.Text)
		ext.Marks = append(ext.Marks, mark)
		all = append(all, line.Tokens...)
	}
	if first < 0 {
		return Extracted{}, false
	}

	from := bbcode.Backward(doc.Original(), doc.Origin(first))
	if openers := bbcode.OpenAllClosed(all, from); len(openers) > 0 {
		ext.Markup[0] = append(openers, ext.Markup[0]...)
	}
	return ext, true
}

func (ex Extractor) excise() []string {
	if ex.Excise == nil {
		return DefaultExcise
	}
	return ex.Excise
}

// mentionsAny cheaply tests whether message may contain any of the named
// tags, so that most posts skip excision entirely.
func mentionsAny(message string, names []string) bool {
	lower := strings.ToLower(message)
	for _, name := range names {
		if strings.Contains(lower, "["+name) {
			return true
		}
	}
	return false
}
