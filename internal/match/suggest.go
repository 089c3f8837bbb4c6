package match

import (
	"fmt"
	"strings"

	"autojson-generator/internal/naming"
)

// DefaultThreshold is the minimum Similarity for Suggest to offer a name.
const DefaultThreshold = 0.6

// normalize folds case and drops separators: "User_ID" and "userId" both
// become "userid".
func normalize(s string) string {
	return strings.ToLower(strings.Join(naming.Words(s), ""))
}

// Similarity returns a score in [0, 1] for two identifiers after
// normalization; 1 means equal.
func Similarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" && nb == "" {
		return 1
	}

	return 1 - float64(Levenshtein(na, nb))/float64(max(len(na), len(nb)))
}

// Suggest returns the candidate most similar to name, and false when none
// reaches DefaultThreshold. Ties keep the earliest candidate.
func Suggest(name string, candidates ...string) (string, bool) {
	best, bestScore := "", 0.0

	for _, c := range candidates {
		score := Similarity(name, c)
		if score >= DefaultThreshold && score > bestScore {
			best, bestScore = c, score
		}
	}

	return best, best != ""
}

// Hint formats the suggestion for name as an error message suffix, or
// returns "" when there is none.
func Hint(name string, candidates ...string) string {
	s, ok := Suggest(name, candidates...)
	if !ok {
		return ""
	}

	return fmt.Sprintf(" (did you mean %q?)", s)
}
