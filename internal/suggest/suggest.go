// Package suggest finds the closest known name to a misspelled one.
package suggest

import (
	"slices"
	"strings"
)

// MinScore is the similarity a candidate needs before it is suggested.
const MinScore = 0.6

// Distance returns the edit distance between a and b.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if a == "" {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Score returns a case-insensitive similarity between 0 and 1.
func Score(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(max(len(a), len(b)))
}

// Closest returns the candidate most similar to name, if any scores at least
// MinScore. Ties go to the smallest candidate.
func Closest(name string, candidates []string) (string, bool) {
	sorted := slices.Sorted(slices.Values(candidates))

	best, bestScore := "", MinScore
	found := false

	for _, c := range sorted {
		if c == name {
			continue
		}

		if s := Score(name, c); s > bestScore || (s == bestScore && !found) {
			best, bestScore, found = c, s, true
		}
	}

	return best, found
}
