package tally

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// referralDepth bounds how many referral hops are followed, so that cyclic
// referrals terminate with whatever ballot was reached.
const referralDepth = 5

// voterTable maps normalized voter names to their latest ballot, ordered by
// when each voter last voted.
type voterTable = orderedmap.OrderedMap[string, *Ballot]

// dedup keeps only the latest ballot of each voter, ordered by last vote.
//
// When refer is true, ballot lines naming another voter are replaced by that
// voter's ballot: first as each ballot is added, against earlier voters only,
// then over the final table, where each named voter's own referrals are
// settled before their ballot is spliced in. Ballots leave dedup marked as
// referred, and are never resolved again.
func dedup(ballots []*Ballot, refer bool) []*Ballot {
	table := orderedmap.New[string, *Ballot](len(ballots))
	for _, b := range ballots {
		key := b.Voters[0].Key
		if refer && !b.referred {
			resolveReferrals(b, table, key)
		}
		if _, present := table.Set(key, b); present {
			if err := table.MoveToBack(key); err != nil {
				panic(err)
			}
		}
	}
	if refer {
		res := resolver{
			table:  table,
			active: make(map[string]bool),
			done:   make(map[string]bool),
		}
		for pair := table.Oldest(); pair != nil; pair = pair.Next() {
			res.resolve(pair.Key, pair.Value, 0)
		}
		for pair := table.Oldest(); pair != nil; pair = pair.Next() {
			pair.Value.referred = true
		}
	}

	out := make([]*Ballot, 0, table.Len())
	for pair := table.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// resolveReferrals splices in the ballot of every voter named by one of b's
// lines; self is b's own voter key, which never refers.
func resolveReferrals(b *Ballot, table *voterTable, self string) {
	// back to front, so that splicing does not move unvisited lines
	for i := b.Len() - 1; i >= 0; i-- {
		key := b.Normalized[i]
		if key == "" || key == self {
			continue
		}
		target, ok := referent(table, key)
		if !ok || target == b {
			continue
		}
		b.splice(i, target)
	}
}

// resolver settles the referrals of a whole voter table, depth first.
type resolver struct {
	table  *voterTable
	active map[string]bool // on the current resolution path
	done   map[string]bool // fully resolved
}

// resolve splices the settled ballot of every voter named by b, whose voter
// key is self. A named voter already on the resolution path is a cycle, and
// its line is left as is; past referralDepth, named ballots are spliced
// unresolved. Returns false if either cut resolution short, in which case
// b may be resolved again from a shallower start.
func (res *resolver) resolve(self string, b *Ballot, depth int) (complete bool) {
	if b.referred || res.done[self] {
		return true
	}
	res.active[self] = true
	defer delete(res.active, self)

	complete = true
	for i := b.Len() - 1; i >= 0; i-- {
		key := b.Normalized[i]
		if key == "" || key == self {
			continue
		}
		target, ok := res.table.Get(key)
		if !ok || target == b {
			continue
		}
		if res.active[key] {
			complete = false
			continue
		}
		if depth+1 < referralDepth {
			if !res.resolve(key, target, depth+1) {
				complete = false
			}
		} else if !res.done[key] {
			complete = false
		}
		b.splice(i, target)
	}
	if complete {
		res.done[self] = true
	}
	return complete
}

// referent returns the ballot of the named voter, following chains of ballots
// that consist of nothing but another single referral.
func referent(table *voterTable, key string) (*Ballot, bool) {
	target, ok := table.Get(key)
	if !ok {
		return nil, false
	}
	for hop := 1; hop < referralDepth && target.Len() == 1; hop++ {
		next, ok := table.Get(target.Normalized[0])
		if !ok || next == target {
			break
		}
		target = next
	}
	return target, true
}
