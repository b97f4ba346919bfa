package tally

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ID is a forum user or post identifier. It decodes from either a JSON string
// or a JSON number, and always encodes as a string.
type ID string

// UnmarshalJSON accepts strings, numbers, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n)
	return nil
}

// Post is one forum post.
type Post struct {
	Username string `json:"username"`
	UserID   ID     `json:"user_id"`
	Message  string `json:"message"`
	PostID   ID     `json:"post_id"`
}

// Request is a complete tally request: the thread operator, whose own posts
// are never counted, the posts to tally in thread order, and options.
type Request struct {
	Op     string `json:"op"`
	Posts  []Post `json:"posts"`
	Config Config `json:"config"`
}

// DecodeRequest reads one JSON request from r. Options absent from the
// request's config object keep their value from base.
func DecodeRequest(r io.Reader, base Config) (Request, error) {
	req := Request{Config: base}
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("decoding tally request: %w", err)
	}
	return req, nil
}
