package question

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/phonassess/internal/flow"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/ui/components"
	"github.com/abhisek/phonassess/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

func (s *QuestionScreen) View(width, height int) string {
	if s.showingQuit {
		return renderQuitConfirm(width)
	}
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	q, ok := s.sess.Current()
	if ok {
		b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render(q.Question))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width).Render("답: " + s.input.View()))
	b.WriteString("\n\n")

	switch {
	case s.transcribing:
		b.WriteString(centered(width).Foreground(theme.TextDim).Render("음성을 인식하는 중..."))
		b.WriteString("\n\n")
	case s.outcome != nil:
		b.WriteString(renderFeedback(width, *s.outcome))
		b.WriteString("\n\n")
	case s.notice != "":
		b.WriteString(centered(width).Foreground(theme.Accent).Render(s.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderNavBar(width-8)))
	b.WriteString("\n\n")

	st := s.sess.Flow().State()
	bar := components.NewProgressBar(st.GlobalIndex, s.sess.Flow().Len(), min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))

	return b.String()
}

func (s *QuestionScreen) renderInfoLine(width int) string {
	section := "본 문항"
	if s.sess.Phase() == flow.PhasePractice {
		section = "연습"
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + s.sess.Title())

	sum := s.sess.Summary()
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s  응답 %d", section, sum.Total.Total))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *QuestionScreen) renderNavBar(width int) string {
	statuses := s.sess.Items()
	items := make([]components.NavItem, 0, len(statuses))
	practice := 0
	for _, st := range statuses {
		n := st.Number - practice
		if st.Section == flow.SectionPractice {
			practice++
			n = practice
		}
		items = append(items, components.NavItem{
			Number:    n,
			Practice:  st.Section == flow.SectionPractice,
			Current:   st.Current,
			Completed: st.Completed,
		})
	}
	return components.NewNavBar(items, width).View()
}

// renderFeedback shows the verdict for scored items and the recognised
// answer in every case.
func renderFeedback(width int, out session.Outcome) string {
	var b strings.Builder
	if out.Scored {
		style := theme.Incorrect
		if out.Result.Correct {
			style = theme.Correct
		}
		b.WriteString(centered(width).Render(style.Render(out.Feedback())))
		b.WriteString("\n")
	} else {
		b.WriteString(centered(width).Foreground(theme.Secondary).Render("응답이 기록되었습니다"))
		b.WriteString("\n")
	}
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("인식된 답변: " + out.Transcript))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("검사를 종료할까요?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("지금까지의 응답은 로그에 남아 있습니다."))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Success).Render("[Y] 예, 종료합니다"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] 아니요, 계속합니다"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return centered(width).Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  오류: %s\n\n  아무 키나 눌러 다시 시도하세요.", errMsg))
}
