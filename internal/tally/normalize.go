package tally

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// normalizer reduces ballot lines and voter names to the form used for all
// comparisons: marker stripped, only letters and digits kept, case folded.
// It is not safe for concurrent use.
type normalizer struct {
	marker *Marker
	fold   cases.Caser
}

func newNormalizer(marker *Marker) *normalizer {
	return &normalizer{marker: marker, fold: cases.Fold()}
}

func (n *normalizer) normalize(s string) string {
	s = n.marker.Strip(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	return n.fold.String(s)
}

// Normalize returns the comparison form of s under the given marker.
func Normalize(marker *Marker, s string) string {
	return newNormalizer(marker).normalize(s)
}
