package session

import (
	"time"

	"github.com/abhisek/phonassess/internal/flow"
)

// Report holds the data displayed on the result screen.
type Report struct {
	SessionID string
	Duration  time.Duration
	Summary   flow.Summary
	Answers   []flow.AnswerRecord
}

// Line is one labelled row of the result table.
type Line struct {
	Label string
	Tally flow.Tally
}

// Lines returns the practice, main and total rows in display order.
func (r *Report) Lines() []Line {
	return []Line{
		{Label: "연습문제", Tally: r.Summary.Practice},
		{Label: "본 문항", Tally: r.Summary.Main},
		{Label: "전체", Tally: r.Summary.Total},
	}
}

// BuildReport creates a Report from the current session state.
func BuildReport(s *Session) *Report {
	return &Report{
		SessionID: s.ID,
		Duration:  s.opts.Clock().Sub(s.startedAt),
		Summary:   s.flow.ResultSummary(),
		Answers:   s.flow.Answers(),
	}
}
