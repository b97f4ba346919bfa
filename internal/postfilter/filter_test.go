package postfilter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/tally/internal/postfilter"
	"github.com/jcorbin/tally/internal/tally"
)

var posts = []tally.Post{
	{Username: "GM", UserID: "1", PostID: "10", Message: "Update 3 is up."},
	{Username: "A", UserID: "2", PostID: "11", Message: "[X] plan"},
	{Username: "B", UserID: "3", PostID: "12", Message: "nice update"},
	{Username: "C", UserID: "4", PostID: "13", Message: "[X] other plan"},
}

func usernames(posts []tally.Post) (names []string) {
	for _, post := range posts {
		names = append(names, post.Username)
	}
	return names
}

func TestFilter(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want []string
	}{
		{`true`, []string{"GM", "A", "B", "C"}},
		{`Index >= 2`, []string{"B", "C"}},
		{`Username != "GM" && Message contains "[X]"`, []string{"A", "C"}},
		{`PostID in ["11", "12"]`, []string{"A", "B"}},
		{`UserID == "4" || Message startsWith "Update"`, []string{"GM", "C"}},
	} {
		t.Run(tc.src, func(t *testing.T) {
			f, err := postfilter.Compile(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.src, f.String())
			got, err := f.Apply(posts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, usernames(got))
		})
	}
}

func TestFilter_nil(t *testing.T) {
	var f *postfilter.Filter
	assert.Equal(t, "true", f.String())
	ok, err := f.Match(posts[0], 0)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := f.Apply(posts)
	require.NoError(t, err)
	assert.Len(t, got, len(posts))
}

func TestCompile_invalid(t *testing.T) {
	for _, src := range []string{
		`Index +`,
		`Index + 1`,
		`Nope == 1`,
	} {
		_, err := postfilter.Compile(src)
		assert.Error(t, err, "compile %q", src)
	}
}
