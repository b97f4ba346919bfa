package tally

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// merge groups ballots with the same content key. Each group is represented by
// a copy of its first ballot, whose voters are extended by those of every
// later ballot in the group; groups keep first-seen order. The input ballots
// are not modified.
func merge(ballots []*Ballot) []*Ballot {
	groups := orderedmap.New[string, *Ballot](len(ballots))
	for _, b := range ballots {
		key := b.Key()
		if group, ok := groups.Get(key); ok {
			group.Voters = append(group.Voters, b.Voters...)
			continue
		}
		group := *b
		group.Voters = slices.Clone(b.Voters)
		groups.Set(key, &group)
	}

	out := make([]*Ballot, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
