package bbcode

// Line is one newline delimited line of a Document.
type Line struct {
	// Start and End delimit the line's live token positions, excluding its
	// terminating newline token.
	Start, End int

	// Tokens holds the line's markup; it aliases the document's tokens and
	// must not be modified.
	Tokens []Token

	// Text is the line's plain text: its literal tokens only.
	Text string
}

// Lines splits the live token sequence at every indexed newline position.
// Empty lines are kept, so there is always one more line than there are
// newline tokens. The returned lines alias the live sequence, and so are
// invalidated by any later Remove.
func (doc *Document) Lines() []Line {
	points := doc.Points()
	lines := make([]Line, 0, len(doc.newlines)+1)
	start := 0
	for i := 0; i <= len(doc.newlines); i++ {
		end := len(doc.tokens)
		if i < len(doc.newlines) {
			end = doc.newlines[i]
		}
		lines = append(lines, Line{
			Start:  start,
			End:    end,
			Tokens: doc.tokens[start:end:end],
			Text:   Render(doc.SkipSlice(start, end, points)),
		})
		start = end + 1
	}
	return lines
}
