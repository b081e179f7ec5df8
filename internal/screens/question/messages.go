package question

import (
	"time"

	"github.com/abhisek/phonassess/internal/session"
)

// transcribedMsg is sent when an audio answer has been converted to text.
type transcribedMsg struct {
	ItemID   string
	Text     string
	Duration time.Duration
	Err      error
}

// respondedMsg carries the result of recording a response.
type respondedMsg struct {
	Outcome session.Outcome
	Err     error
}
