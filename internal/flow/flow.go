// Package flow implements the assessment state machine: phase and index
// progression over a question set, random-access navigation, the answer log,
// and result aggregation.
//
// Phases move intro -> practice-intro -> practice -> main -> result. Start
// drives the two intro transitions, Advance walks the items, and JumpTo can
// re-enter practice or main from any phase. A Flow is not safe for
// concurrent use; it is owned by a single session.
package flow

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/phonassess/internal/questions"
)

// ErrInvalidSnapshot is returned by Restore when a snapshot does not fit the
// flow's question set.
var ErrInvalidSnapshot = errors.New("invalid flow snapshot")

// State is the position of the flow.
type State struct {
	// Phase is the current phase.
	Phase Phase

	// PhaseIndex is the position within the current phase's sequence,
	// -1 before the first question.
	PhaseIndex int

	// GlobalIndex is the position across Examples+Main, -1 before the
	// first question.
	GlobalIndex int
}

// AnswerRecord is one entry of the answer log. Records are never changed
// or removed once appended.
type AnswerRecord struct {
	QuestionID string
	AnswerText string
	Verdict    Verdict
	Section    Section
	Timestamp  time.Time
}

// Option configures a Flow.
type Option func(*Flow)

// WithClock overrides the time source used to stamp answer records.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		f.now = now
	}
}

// Flow tracks progress through a question set.
type Flow struct {
	set     *questions.Set
	state   State
	answers []AnswerRecord
	now     func() time.Time
}

// New creates a Flow in the intro phase.
func New(set *questions.Set, opts ...Option) *Flow {
	f := &Flow{
		set:   set,
		state: State{Phase: PhaseIntro, PhaseIndex: -1, GlobalIndex: -1},
		now:   time.Now,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Set returns the question set the flow runs over.
func (f *Flow) Set() *questions.Set {
	return f.set
}

// State returns the current position.
func (f *Flow) State() State {
	return f.state
}

// Phase returns the current phase.
func (f *Flow) Phase() Phase {
	return f.state.Phase
}

// Len returns the number of navigable items.
func (f *Flow) Len() int {
	return f.set.Len()
}

// Start moves intro to practice-intro, and practice-intro to the first
// practice item. Empty sequences are skipped. It is a no-op in any other
// phase.
func (f *Flow) Start() {
	switch f.state.Phase {
	case PhaseIntro:
		f.state.Phase = PhasePracticeIntro
	case PhasePracticeIntro:
		f.state.GlobalIndex = 0
		f.state.PhaseIndex = 0
		switch {
		case len(f.set.Examples) > 0:
			f.state.Phase = PhasePractice
		case len(f.set.Main) > 0:
			f.state.Phase = PhaseMain
		default:
			f.state.Phase = PhaseResult
		}
	}
}

// CurrentQuestion returns the item at PhaseIndex of the current phase's
// sequence. It returns false outside practice and main.
func (f *Flow) CurrentQuestion() (questions.Question, bool) {
	var seq []questions.Question
	switch f.state.Phase {
	case PhasePractice:
		seq = f.set.Examples
	case PhaseMain:
		seq = f.set.Main
	default:
		return questions.Question{}, false
	}
	if f.state.PhaseIndex < 0 || f.state.PhaseIndex >= len(seq) {
		return questions.Question{}, false
	}
	return seq[f.state.PhaseIndex], true
}

// Advance moves to the next item, crossing from practice to main and from
// main to result when a sequence is exhausted. GlobalIndex grows by one on
// every call made while asking. Outside practice and main it does nothing.
func (f *Flow) Advance() {
	switch f.state.Phase {
	case PhasePractice:
		f.state.PhaseIndex++
		if f.state.PhaseIndex >= len(f.set.Examples) {
			f.state.Phase = PhaseMain
			f.state.PhaseIndex = 0
			if len(f.set.Main) == 0 {
				f.state.Phase = PhaseResult
			}
		}
	case PhaseMain:
		f.state.PhaseIndex++
		if f.state.PhaseIndex >= len(f.set.Main) {
			f.state.Phase = PhaseResult
		}
	default:
		return
	}
	f.state.GlobalIndex++
}

// JumpTo moves directly to the item at global position g. Positions outside
// [0, Len()) are ignored and false is returned. The answer log is untouched,
// so answering a revisited item appends a second record.
func (f *Flow) JumpTo(g int) bool {
	if g < 0 || g >= f.set.Len() {
		return false
	}
	f.state.GlobalIndex = g
	if n := len(f.set.Examples); g < n {
		f.state.Phase = PhasePractice
		f.state.PhaseIndex = g
	} else {
		f.state.Phase = PhaseMain
		f.state.PhaseIndex = g - n
	}
	return true
}

// RecordAnswer appends a record stamped with the current time. The item is
// not checked against CurrentQuestion. The record's section comes from the
// item's position in the set, falling back to the ID prefix convention for
// items the set does not contain.
func (f *Flow) RecordAnswer(itemID, answerText string, verdict Verdict) AnswerRecord {
	rec := AnswerRecord{
		QuestionID: itemID,
		AnswerText: answerText,
		Verdict:    verdict,
		Section:    f.sectionOf(itemID),
		Timestamp:  f.now(),
	}
	f.answers = append(f.answers, rec)
	return rec
}

// Answers returns a copy of the answer log in recording order.
func (f *Flow) Answers() []AnswerRecord {
	out := make([]AnswerRecord, len(f.answers))
	copy(out, f.answers)
	return out
}

// Completed reports whether the item at global position g lies before the
// current position. Used for navigation markers only.
func (f *Flow) Completed(g int) bool {
	return g >= 0 && g < f.state.GlobalIndex
}

func (f *Flow) sectionOf(itemID string) Section {
	if g, ok := f.set.IndexOf(itemID); ok {
		if g < len(f.set.Examples) {
			return SectionPractice
		}
		return SectionMain
	}
	switch {
	case questions.IsPracticeID(itemID):
		return SectionPractice
	case questions.IsMainID(itemID):
		return SectionMain
	}
	return SectionNone
}

// Snapshot is a copy of a flow's position and answer log.
type Snapshot struct {
	State   State
	Answers []AnswerRecord
}

// Snapshot captures the flow so it can be resumed with Restore.
func (f *Flow) Snapshot() Snapshot {
	return Snapshot{State: f.state, Answers: f.Answers()}
}

// Restore replaces the flow's position and answer log with snap. The
// snapshot must describe a reachable position in this flow's question set.
func (f *Flow) Restore(snap Snapshot) error {
	if err := f.checkState(snap.State); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	f.state = snap.State
	f.answers = make([]AnswerRecord, len(snap.Answers))
	copy(f.answers, snap.Answers)
	return nil
}

func (f *Flow) checkState(s State) error {
	nEx, nMain := len(f.set.Examples), len(f.set.Main)
	switch s.Phase {
	case PhaseIntro, PhasePracticeIntro:
		if s.PhaseIndex != -1 || s.GlobalIndex != -1 {
			return fmt.Errorf("%s must have indexes -1, got %d/%d", s.Phase, s.PhaseIndex, s.GlobalIndex)
		}
		return nil
	case PhasePractice:
		if s.PhaseIndex < 0 || s.PhaseIndex >= nEx {
			return fmt.Errorf("practice index %d out of range [0, %d)", s.PhaseIndex, nEx)
		}
		if s.GlobalIndex != s.PhaseIndex {
			return fmt.Errorf("practice global index %d does not match phase index %d", s.GlobalIndex, s.PhaseIndex)
		}
		return nil
	case PhaseMain:
		if s.PhaseIndex < 0 || s.PhaseIndex >= nMain {
			return fmt.Errorf("main index %d out of range [0, %d)", s.PhaseIndex, nMain)
		}
		if s.GlobalIndex != nEx+s.PhaseIndex {
			return fmt.Errorf("main global index %d does not match phase index %d", s.GlobalIndex, s.PhaseIndex)
		}
		return nil
	case PhaseResult:
		if s.GlobalIndex != nEx+nMain {
			return fmt.Errorf("result global index %d, want %d", s.GlobalIndex, nEx+nMain)
		}
		// Advance leaves the phase index one past the last main item.
		if s.PhaseIndex != nMain {
			return fmt.Errorf("result phase index %d, want %d", s.PhaseIndex, nMain)
		}
		return nil
	default:
		return fmt.Errorf("unknown phase %d", int(s.Phase))
	}
}
