package bbcode_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jcorbin/tally/internal/bbcode"
)

func TestArea_Add(t *testing.T) {
	var ar Area
	assert.True(t, ar.Empty())

	ar.Add(5, 7)
	ar.Add(1, 3)
	ar.Add(3, 4)
	assert.Equal(t, "[1:4 5:7]", fmt.Sprint(ar))

	ar.Add(4, 5)
	assert.Equal(t, "[1:7]", fmt.Sprint(ar))

	ar.Add(10, 12)
	ar.AddPoint(8)
	assert.Equal(t, "[1:7 8:9 10:12]", fmt.Sprint(ar))
	assert.Equal(t, 9, ar.Len())

	ar.Add(0, 11)
	assert.Equal(t, "[0:12]", fmt.Sprint(ar))

	ar.Add(3, 3)
	assert.Equal(t, "[0:12]", fmt.Sprint(ar), "empty spans are ignored")
}

func TestArea_Find(t *testing.T) {
	var ar Area
	ar.Add(2, 4)
	ar.Add(6, 9)
	for _, tc := range []struct {
		offset int
		before int
		found  bool
	}{
		{0, 0, false},
		{2, 0, true},
		{3, 1, true},
		{4, 2, false},
		{5, 2, false},
		{7, 3, true},
		{9, 5, false},
		{100, 5, false},
	} {
		before, found := ar.Find(tc.offset)
		assert.Equal(t, tc.before, before, "before %v", tc.offset)
		assert.Equal(t, tc.found, found, "found %v", tc.offset)
		assert.Equal(t, tc.found, ar.Contains(tc.offset))
	}
}

func TestArea_Shift(t *testing.T) {
	var ar Area
	ar.Add(2, 4)
	ar.Add(6, 9)
	assert.Equal(t,
		[]int{0, 1, 2, 3, 4, 5},
		ar.Shift([]int{0, 1, 2, 3, 4, 5, 6, 9, 10}))
	assert.Nil(t, ar.Shift(nil))

	var none Area
	assert.Equal(t, []int{1, 2}, none.Shift([]int{1, 2}))

	var spans []string
	ar.Spans(func(start, end int) {
		spans = append(spans, fmt.Sprintf("%d-%d", start, end))
	})
	assert.Equal(t, []string{"2-4", "6-9"}, spans)
}
