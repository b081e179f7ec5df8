// Package result shows the practice, main and total tallies at the end of
// a run.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phonassess/internal/flow"
	"github.com/abhisek/phonassess/internal/router"
	"github.com/abhisek/phonassess/internal/screen"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/ui/layout"
	"github.com/abhisek/phonassess/internal/ui/theme"
)

// answerRows caps how many answers are listed below the tallies.
const answerRows = 8

// ResultScreen displays the report for a finished run.
type ResultScreen struct {
	sess   *session.Session
	next   screen.Func
	report *session.Report
	left   bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the result screen. next builds the screen shown after a
// restart or a jump back into the items.
func New(sess *session.Session, next screen.Func) *ResultScreen {
	return &ResultScreen{sess: sess, next: next, report: session.BuildReport(sess)}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "검사 결과"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "다시 하기"},
		{Key: "PgUp", Description: "마지막 문항"},
		{Key: "Q", Description: "종료"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r", "R":
		s.sess.Restart()
		return s, s.leave()
	case "pgup":
		if s.sess.Navigate(s.sess.Flow().Len() - 1) {
			return s, s.leave()
		}
	case "q", "Q", "enter", "esc":
		return s, tea.Quit
	}
	return s, nil
}

func (s *ResultScreen) leave() tea.Cmd {
	if s.left {
		return nil
	}
	s.left = true
	next := s.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *ResultScreen) View(width, height int) string {
	r := s.report
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("검사가 끝났습니다!"))
	b.WriteString("\n\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("소요 시간: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	for _, line := range r.Lines() {
		row := fmt.Sprintf("%-8s %3d / %-3d  %3.0f%%",
			line.Label, line.Tally.Correct, line.Tally.Total, line.Tally.Accuracy()*100)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(row)))
		b.WriteString("\n")
	}

	if len(r.Answers) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 48)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		b.WriteString(s.renderAnswers(width))
	}

	return b.String()
}

// renderAnswers lists the most recent answers with their verdicts.
func (s *ResultScreen) renderAnswers(width int) string {
	answers := s.report.Answers
	if len(answers) > answerRows {
		answers = answers[len(answers)-answerRows:]
	}

	var b strings.Builder
	for _, a := range answers {
		mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("·")
		switch a.Verdict {
		case flow.VerdictCorrect:
			mark = theme.Correct.Render("✓")
		case flow.VerdictIncorrect:
			mark = theme.Incorrect.Render("✗")
		}
		row := fmt.Sprintf("%s  %-8s %s", mark, a.QuestionID, a.AnswerText)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
		b.WriteString("\n")
	}
	return b.String()
}
