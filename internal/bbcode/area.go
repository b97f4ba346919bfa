package bbcode

import "sort"

// Area is a set of half-open [start, end) token position spans.
// Spans are kept sorted, and overlapping or adjacent spans are coalesced.
type Area struct {
	spans []span
}

type span struct{ start, end int }

func (sp span) empty() bool { return sp.end <= sp.start }
func (sp span) len() int    { return sp.end - sp.start }

func (sp span) contains(offset int) bool {
	return offset >= sp.start && offset < sp.end
}

// Add adds the [start, end) span to the area, merging it with any spans that
// it overlaps or touches.
func (ar *Area) Add(start, end int) {
	add := span{start, end}
	if add.empty() {
		return
	}

	// first span that ends at or after our start, may merge
	i := sort.Search(len(ar.spans), func(i int) bool {
		return ar.spans[i].end >= add.start
	})
	// first span that starts after our end, may not merge
	j := sort.Search(len(ar.spans), func(j int) bool {
		return ar.spans[j].start > add.end
	})

	if i < j {
		if first := ar.spans[i]; first.start < add.start {
			add.start = first.start
		}
		if last := ar.spans[j-1]; last.end > add.end {
			add.end = last.end
		}
		ar.spans[i] = add
		ar.spans = append(ar.spans[:i+1], ar.spans[j:]...)
		return
	}

	ar.spans = append(ar.spans, span{})
	copy(ar.spans[i+1:], ar.spans[i:])
	ar.spans[i] = add
}

// AddPoint adds the single position span [pos, pos+1).
func (ar *Area) AddPoint(pos int) { ar.Add(pos, pos+1) }

// Empty returns true if the area contains no positions.
func (ar Area) Empty() bool { return len(ar.spans) == 0 }

// Len returns the number of positions covered by the area.
func (ar Area) Len() (n int) {
	for _, sp := range ar.spans {
		n += sp.len()
	}
	return n
}

// Spans calls fn with each span in ascending order.
func (ar Area) Spans(fn func(start, end int)) {
	for _, sp := range ar.spans {
		fn(sp.start, sp.end)
	}
}

// Contains returns true if offset falls within the area.
func (ar Area) Contains(offset int) bool {
	_, found := ar.Find(offset)
	return found
}

func (ar Area) find(offset int) int {
	return sort.Search(len(ar.spans), func(i int) bool {
		return ar.spans[i].end > offset
	})
}

// Find returns the number of area positions that precede offset, and whether
// offset itself is within the area.
func (ar Area) Find(offset int) (before int, found bool) {
	i := ar.find(offset)
	for _, sp := range ar.spans[:i] {
		before += sp.len()
	}
	if i < len(ar.spans) {
		if sp := ar.spans[i]; sp.start <= offset {
			before += offset - sp.start
			found = true
		}
	}
	return before, found
}

// Shift maps each of the given ascending positions into the coordinate space
// left after deleting every area span: positions within the area are dropped,
// all others move down by the number of area positions before them.
// The result is written into a new slice; positions must be sorted.
func (ar Area) Shift(positions []int) []int {
	if len(positions) == 0 {
		return nil
	}
	out := make([]int, 0, len(positions))
	i, before := 0, 0
	for _, pos := range positions {
		for i < len(ar.spans) && ar.spans[i].end <= pos {
			before += ar.spans[i].len()
			i++
		}
		if i < len(ar.spans) && ar.spans[i].contains(pos) {
			continue
		}
		out = append(out, pos-before)
	}
	return out
}
