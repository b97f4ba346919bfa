package bbcode_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/tally/internal/bbcode"
)

func TestDocument_Remove(t *testing.T) {
	for _, tc := range []struct {
		name    string
		in      string
		remove  []string
		removed int
		out     string
	}{
		{
			name:    "quote with nested tags",
			in:      "keep\n[quote]drop\n[b]x[/b][/quote]\nafter",
			remove:  []string{"quote"},
			removed: 7,
			out:     "keep\n\nafter",
		},
		{
			name:    "overlapping names merge",
			in:      "[quote]a[spoiler]b[/quote]c[/spoiler]d",
			remove:  []string{"quote", "spoiler"},
			removed: 7,
			out:     "d",
		},
		{
			name:    "stray closer kept",
			in:      "a[/quote]b[quote]c[/quote]d",
			remove:  []string{"quote"},
			removed: 3,
			out:     "a[/quote]bd",
		},
		{
			name:   "unclosed open kept",
			in:     "a[spoiler]b",
			remove: []string{"spoiler"},
			out:    "a[spoiler]b",
		},
		{
			name:   "nested never closing to zero",
			in:     "[quote][quote]x[/quote]y",
			remove: []string{"quote"},
			out:    "[quote][quote]x[/quote]y",
		},
		{
			name:   "absent name",
			in:     "[b]x[/b]",
			remove: []string{"code"},
			out:    "[b]x[/b]",
		},
		{
			name:    "disjoint regions",
			in:      "[s]x[/s]y[s]z[/s]",
			remove:  []string{"s"},
			removed: 6,
			out:     "y",
		},
		{
			name:    "names fold case",
			in:      "a[QUOTE=\"x\"]b[/Quote]c",
			remove:  []string{"QUOTE"},
			removed: 3,
			out:     "ac",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := NewDocument(tc.in)
			assert.Equal(t, tc.removed, doc.Remove(tc.remove...))
			assert.Equal(t, tc.out, fmt.Sprint(doc))
			assert.NoError(t, doc.Verify())
		})
	}
}

func TestDocument_Remove_index(t *testing.T) {
	doc := NewDocument("keep\n[quote]drop\n[b]x[/b][/quote]\n[b]after[/b]")
	require.Equal(t, 7, doc.Remove("quote"))
	require.NoError(t, doc.Verify())

	assert.Equal(t, []string{"b"}, doc.Tags())
	opens, closes := doc.Positions("b")
	assert.Equal(t, []int{3}, opens)
	assert.Equal(t, []int{5}, closes)
	assert.Equal(t, []int{1, 2}, doc.Newlines())

	assert.Equal(t, 0, doc.Origin(0))
	assert.Equal(t, 1, doc.Origin(1))
	assert.Equal(t, 9, doc.Origin(2))
	assert.Equal(t, 10, doc.Origin(3))
	assert.Equal(t, len(doc.Original()), doc.Origin(doc.Len()))

	assert.Equal(t, 0, doc.Remove("quote"), "second removal is a no-op")
}

func TestDocument_Remove_strayIndex(t *testing.T) {
	doc := NewDocument("a[/quote]b[quote]c[/quote]d")
	doc.Remove("quote")
	opens, closes := doc.Positions("quote")
	assert.Empty(t, opens)
	assert.Equal(t, []int{1}, closes)
	assert.Equal(t, []string{"quote"}, doc.Tags())
}

// naiveRemove is a straightforward token-at-a-time rendition of Remove,
// used as a reference.
func naiveRemove(toks []Token, names ...string) []Token {
	named := make(map[string]bool, len(names))
	for _, name := range names {
		named[strings.ToLower(name)] = true
	}
	var out, pending []Token
	level := 0
	for _, tok := range toks {
		switch {
		case tok.Kind == TagOpen && named[tok.Name]:
			level++
			pending = append(pending, tok)
		case tok.Kind == TagClose && named[tok.Name] && level > 0:
			if level--; level == 0 {
				pending = pending[:0]
			} else {
				pending = append(pending, tok)
			}
		case level > 0:
			pending = append(pending, tok)
		default:
			out = append(out, tok)
		}
	}
	return append(out, pending...)
}

func TestDocument_Remove_random(t *testing.T) {
	pieces := []string{
		"[b]", "[/b]",
		"[quote]", "[/quote]",
		"[spoiler]", "[/spoiler]",
		"[i]", "[/i]",
		"x", "y ", "[X]", "\n",
	}
	names := []string{"quote", "spoiler", "b"}

	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 500; n++ {
		var sb strings.Builder
		for k := rng.Intn(40); k > 0; k-- {
			sb.WriteString(pieces[rng.Intn(len(pieces))])
		}
		src := sb.String()

		var remove []string
		for _, name := range names {
			if rng.Intn(2) == 0 {
				remove = append(remove, name)
			}
		}

		doc := NewDocument(src)
		before := doc.Len()
		expect := Render(naiveRemove(doc.Original(), remove...))
		removed := doc.Remove(remove...)

		if !assert.NoError(t, doc.Verify(), "remove %v from %q", remove, src) ||
			!assert.Equal(t, expect, fmt.Sprint(doc), "remove %v from %q", remove, src) ||
			!assert.Equal(t, before-removed, doc.Len()) {
			t.Logf("document:\n%+v", doc)
			return
		}

		// removing the rest must keep the index valid too
		doc.Remove(names...)
		if !assert.NoError(t, doc.Verify(), "remove all after %v from %q", remove, src) {
			return
		}
	}
}
