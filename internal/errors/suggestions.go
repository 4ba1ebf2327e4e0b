package errors

import (
	"fmt"
	"strings"
)

// UnknownTemplateError builds the validation error for a template key that
// does not exist for the requested kind, enumerating the valid keys so the
// message can be surfaced to the user verbatim.
func UnknownTemplateError(template, kind string, available []string) *ForgeError {
	msg := fmt.Sprintf("unknown template %q for %s", template, kind)
	if suggestion := closestMatch(template, available); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	msg += fmt.Sprintf("\navailable templates: %s", strings.Join(available, ", "))

	return NewValidationError("UNKNOWN_TEMPLATE", msg).
		WithContext("template", template).
		WithContext("kind", kind)
}

// closestMatch returns the candidate with the smallest edit distance to
// input, or "" when nothing is close enough to be a plausible typo.
func closestMatch(input string, candidates []string) string {
	best := ""
	bestDist := len(input)/2 + 1 // anything further away is not a typo

	for _, candidate := range candidates {
		if d := editDistance(strings.ToLower(input), strings.ToLower(candidate)); d < bestDist {
			best = candidate
			bestDist = d
		}
	}

	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
