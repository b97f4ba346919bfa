// Package postfilter selects the posts that a tally counts, using boolean
// expressions such as `Index >= 120 && Username != "Spammer"`.
package postfilter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/jcorbin/tally/internal/tally"
)

// Env is the environment that filter expressions are evaluated in, one post
// at a time.
type Env struct {
	Username string
	UserID   string
	PostID   string
	Message  string

	// Index is the zero-based position of the post within the thread.
	Index int
}

// Filter is a compiled post filter expression.
// A nil *Filter matches every post.
type Filter struct {
	src  string
	prog *vm.Program
}

// Compile checks and compiles src, which must evaluate to a bool.
func Compile(src string) (*Filter, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid post filter %q: %w", src, err)
	}
	return &Filter{src: src, prog: prog}, nil
}

func (f *Filter) String() string {
	if f == nil {
		return "true"
	}
	return f.src
}

// Match evaluates the filter against the post at the given thread index.
func (f *Filter) Match(post tally.Post, index int) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, err := expr.Run(f.prog, Env{
		Username: post.Username,
		UserID:   string(post.UserID),
		PostID:   string(post.PostID),
		Message:  post.Message,
		Index:    index,
	})
	if err != nil {
		return false, fmt.Errorf("post filter %q on post %v: %w", f.src, post.PostID, err)
	}
	return out.(bool), nil
}

// Apply returns the matching posts, in order.
func (f *Filter) Apply(posts []tally.Post) ([]tally.Post, error) {
	if f == nil {
		return posts, nil
	}
	var out []tally.Post
	for i, post := range posts {
		ok, err := f.Match(post, i)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, post)
		}
	}
	return out, nil
}
