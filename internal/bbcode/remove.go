package bbcode

import (
	"sort"
	"strings"
)

// Remove excises every region delimited by the named tags, including the
// delimiting tags themselves, and returns the number of tokens removed.
//
// Regions are found by sweeping the sorted open and close positions of all
// named tags together as one nesting level: a region starts when the level
// rises from 0 and ends (inclusive of its closer) when it falls back to 0.
// Overlapping or nested regions of different names therefore merge into one.
// Stray closers never take the level below 0, and an open with no closer
// excises nothing.
//
// After removal every index is rebuilt by shifting surviving positions down
// by the number of removed positions before them; positions inside a removed
// region are dropped. Naming absent tags is a no-op.
func (doc *Document) Remove(names ...string) int {
	var opens, closes []int
	for _, name := range names {
		if pos, ok := doc.tags.Get(strings.ToLower(name)); ok {
			opens = append(opens, pos.Opens...)
			closes = append(closes, pos.Closes...)
		}
	}
	if len(opens) == 0 || len(closes) == 0 {
		return 0
	}
	sort.Ints(opens)
	sort.Ints(closes)

	excise := sweep(opens, closes)
	if excise.Empty() {
		return 0
	}
	doc.excise(excise)
	return excise.Len()
}

// sweep computes the covering excise intervals of the given sorted open and
// close positions.
func sweep(opens, closes []int) (excise Area) {
	level, start := 0, 0
	for i, j := 0, 0; j < len(closes); {
		if i < len(opens) && opens[i] < closes[j] {
			if level == 0 {
				start = opens[i]
			}
			level++
			i++
			continue
		}
		end := closes[j]
		j++
		if level == 0 {
			continue
		}
		if level--; level == 0 {
			excise.Add(start, end+1)
		}
	}
	return excise
}

func (doc *Document) excise(excise Area) {
	// delete from the back so that earlier spans stay in original coordinates
	for k := len(excise.spans) - 1; k >= 0; k-- {
		sp := excise.spans[k]
		doc.tokens = append(doc.tokens[:sp.start], doc.tokens[sp.end:]...)
		doc.origin = append(doc.origin[:sp.start], doc.origin[sp.end:]...)
	}

	doc.newlines = excise.Shift(doc.newlines)

	var emptied []string
	for pair := doc.tags.Oldest(); pair != nil; pair = pair.Next() {
		pos := pair.Value
		pos.Opens = excise.Shift(pos.Opens)
		pos.Closes = excise.Shift(pos.Closes)
		if pos.empty() {
			emptied = append(emptied, pair.Key)
		}
	}
	for _, name := range emptied {
		doc.tags.Delete(name)
	}
}
