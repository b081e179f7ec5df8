package flow

// Phase is a stage of the assessment session.
type Phase int

const (
	PhaseIntro         Phase = iota // Welcome screen, nothing asked yet
	PhasePracticeIntro              // Instructions before the practice items
	PhasePractice                   // Serving practice items
	PhaseMain                       // Serving main items
	PhaseResult                     // Terminal; summary shown
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePracticeIntro:
		return "practice-intro"
	case PhasePractice:
		return "practice"
	case PhaseMain:
		return "main"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Asking reports whether the phase serves questions.
func (p Phase) Asking() bool {
	return p == PhasePractice || p == PhaseMain
}

// Section is the question sequence an answer record belongs to. It is fixed
// when the record is created.
type Section int

const (
	SectionNone     Section = iota // item not in either sequence
	SectionPractice                // practice (examples) sequence
	SectionMain                    // main sequence
)

func (s Section) String() string {
	switch s {
	case SectionPractice:
		return "practice"
	case SectionMain:
		return "main"
	default:
		return "none"
	}
}

// Verdict is the scoring outcome attached to an answer record.
type Verdict int

const (
	VerdictUnscored  Verdict = iota // response kept without scoring
	VerdictCorrect
	VerdictIncorrect
)

// VerdictOf converts a scorer result into a Verdict.
func VerdictOf(correct bool) Verdict {
	if correct {
		return VerdictCorrect
	}
	return VerdictIncorrect
}

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	default:
		return "unscored"
	}
}
