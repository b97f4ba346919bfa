package tally

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

const (
	voteFormat  = "%s\n[b]No. of voters: %d[/b]\n%s"
	voterFormat = "[post=%s]%s[/post]"
)

// render formats merged ballot groups, separated by blank lines. When
// sortHighest is set, groups are first stably sorted by descending voter
// count.
func render(groups []*Ballot, sortHighest bool) string {
	if sortHighest {
		groups = slices.Clone(groups)
		slices.SortStableFunc(groups, func(a, b *Ballot) int {
			return cmp.Compare(len(b.Voters), len(a.Voters))
		})
	}

	var sb strings.Builder
	for i, group := range groups {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, voteFormat, group.Content(), len(group.Voters), renderVoters(group.Voters))
	}
	return sb.String()
}

func renderVoters(voters []Voter) string {
	parts := make([]string, len(voters))
	for i, v := range voters {
		parts[i] = fmt.Sprintf(voterFormat, v.PostID, v.Name)
	}
	return strings.Join(parts, ", ")
}
