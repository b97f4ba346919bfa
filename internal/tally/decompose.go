package tally

// decompose splits ballots according to level. Whole ballots are returned
// unchanged; BreakBlocks starts a new block at each top level line that follows
// an indented one; BreakLines makes every line its own ballot.
func decompose(ballots []*Ballot, level BreakLevel) []*Ballot {
	if level == BreakWhole {
		return ballots
	}
	out := make([]*Ballot, 0, len(ballots))
	for _, b := range ballots {
		switch level {
		case BreakBlocks:
			start, prev := 0, 0
			for i, mark := range b.Marks {
				lvl := mark.Level()
				if prev != 0 && lvl == 0 {
					out = append(out, b.slice(start, i))
					start = i
				}
				prev = lvl
			}
			out = append(out, b.slice(start, b.Len()))
		case BreakLines:
			for i := range b.Len() {
				out = append(out, b.slice(i, i+1))
			}
		}
	}
	return out
}
