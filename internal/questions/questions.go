// Package questions defines the assessment item set and loads it from its
// JSON document form.
package questions

import "strings"

// Item ID prefixes used by the question-set convention.
const (
	PracticePrefix = "ex_"
	MainPrefix     = "del_"
)

// Question is a single assessment item.
type Question struct {
	// ItemID identifies the item. Practice items are prefixed "ex_",
	// main items "del_".
	ItemID string `json:"itemId"`

	// Question is the prompt read to the subject.
	Question string `json:"question"`

	// CorrectAnswer is the expected spoken response.
	CorrectAnswer string `json:"correctAnswer"`
}

// Set holds the practice and main sequences. A Set is immutable once loaded.
type Set struct {
	Examples []Question `json:"examples"`
	Main     []Question `json:"main"`
}

// Len returns the total number of items across both sequences.
func (s *Set) Len() int {
	return len(s.Examples) + len(s.Main)
}

// At returns the item at a position in the concatenation Examples+Main.
func (s *Set) At(global int) (Question, bool) {
	switch {
	case global < 0 || global >= s.Len():
		return Question{}, false
	case global < len(s.Examples):
		return s.Examples[global], true
	default:
		return s.Main[global-len(s.Examples)], true
	}
}

// IndexOf returns the global position of the item with the given ID.
func (s *Set) IndexOf(itemID string) (int, bool) {
	for i, q := range s.Examples {
		if q.ItemID == itemID {
			return i, true
		}
	}
	for i, q := range s.Main {
		if q.ItemID == itemID {
			return len(s.Examples) + i, true
		}
	}
	return -1, false
}

// IsPracticeID reports whether itemID follows the practice naming convention.
func IsPracticeID(itemID string) bool {
	return strings.HasPrefix(itemID, PracticePrefix)
}

// IsMainID reports whether itemID follows the main naming convention.
func IsMainID(itemID string) bool {
	return strings.HasPrefix(itemID, MainPrefix)
}
