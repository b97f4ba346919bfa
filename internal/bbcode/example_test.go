package bbcode_test

import (
	"fmt"

	"github.com/jcorbin/tally/internal/bbcode"
)

func Example() {
	doc := bbcode.NewDocument("[b]Plan[/b]\n[quote]old [X] vote[/quote]\n[X] [color=red]new[/color] vote")
	doc.Remove("quote")
	for _, line := range doc.Lines() {
		fmt.Printf("%q\n", line.Text)
	}
	// Output:
	// "Plan"
	// ""
	// "[X] new vote"
}
