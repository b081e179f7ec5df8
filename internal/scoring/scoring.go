// Package scoring judges a spoken response transcript against the expected
// answer for an item. Speech recognition output is noisy, so near misses are
// accepted when they are close enough by normalized edit distance.
package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Threshold is the minimum similarity at which a candidate is accepted.
const Threshold = 0.80

// Result describes how a candidate compared to the expected answer.
type Result struct {
	Candidate  string  // normalized candidate
	Expected   string  // normalized expected answer
	Distance   int     // edit distance between the normalized forms
	Similarity float64 // 1 - Distance/max(len), in characters
	Correct    bool
}

// IsCorrect reports whether candidate matches expected.
//
// Normalization rules:
// - Whitespace is trimmed
// - Comparison is case-insensitive
// - An exact match after normalization is always correct
// - Otherwise the similarity must reach Threshold
func IsCorrect(candidate, expected string) bool {
	return Score(candidate, expected).Correct
}

// Score compares candidate to expected and returns the full breakdown.
func Score(candidate, expected string) Result {
	c := Normalize(candidate)
	e := Normalize(expected)

	if c == e {
		return Result{Candidate: c, Expected: e, Similarity: 1, Correct: true}
	}

	dist := Distance(c, e)
	sim := similarity(c, e, dist)
	return Result{
		Candidate:  c,
		Expected:   e,
		Distance:   dist,
		Similarity: sim,
		Correct:    sim >= Threshold,
	}
}

// Normalize trims surrounding whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Similarity returns 1 - Distance(a, b)/max(len(a), len(b)) on the raw
// strings. Identical strings score 1; an empty string against a non-empty
// one scores 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	return similarity(a, b, Distance(a, b))
}

func similarity(a, b string, dist int) float64 {
	if a == b {
		return 1
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}
	return 1 - float64(dist)/float64(max(la, lb))
}

// Distance returns the Levenshtein edit distance between a and b counted in
// characters, with unit cost for insertion, deletion and substitution.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return utf8.RuneCountInString(b)
	}
	if b == "" {
		return utf8.RuneCountInString(a)
	}
	return matchr.Levenshtein(a, b)
}
