package session

import (
	"fmt"

	"github.com/abhisek/phonassess/internal/flow"
)

// ItemStatus describes one entry of the navigation bar.
type ItemStatus struct {
	// Global is the item's position across practice and main items.
	Global int

	ItemID  string
	Section flow.Section

	// Number is the 1-based button label.
	Number int

	Current   bool
	Completed bool
}

// Items lists every navigable item with its markers. An item is completed
// when it lies before the current position, whether or not it was answered.
func (s *Session) Items() []ItemStatus {
	st := s.flow.State()
	items := make([]ItemStatus, 0, s.set.Len())
	for g := range s.set.Len() {
		q, _ := s.set.At(g)
		sec := flow.SectionMain
		if g < len(s.set.Examples) {
			sec = flow.SectionPractice
		}
		items = append(items, ItemStatus{
			Global:    g,
			ItemID:    q.ItemID,
			Section:   sec,
			Number:    g + 1,
			Current:   st.Phase.Asking() && g == st.GlobalIndex,
			Completed: s.flow.Completed(g),
		})
	}
	return items
}

// Title returns the heading for the current question: "연습문제N" for
// practice items and "문항 N" for main items. Empty when not asking.
func (s *Session) Title() string {
	st := s.flow.State()
	switch st.Phase {
	case flow.PhasePractice:
		return fmt.Sprintf("연습문제%d", st.PhaseIndex+1)
	case flow.PhaseMain:
		return fmt.Sprintf("문항 %d", st.PhaseIndex+1)
	}
	return ""
}
