package usecase

import (
	"github.com/agnivade/levenshtein"
)

// Similarity returns the normalized edit-distance similarity of a and b in [0, 1].
// Both inputs are normalized first; two strings that normalize to the same value
// (including two empty strings) are identical, and an empty string matches nothing else.
func Similarity(a, b string) float64 {
	na := normalizeText(a)
	nb := normalizeText(b)

	if na == nb {
		return 1
	}
	if na == "" || nb == "" {
		return 0
	}

	distance := levenshtein.ComputeDistance(na, nb)
	maxLen := max(textLength(na), textLength(nb))

	return 1 - float64(distance)/float64(maxLen)
}
