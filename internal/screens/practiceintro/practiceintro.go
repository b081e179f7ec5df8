// Package practiceintro explains the task before the first practice item.
package practiceintro

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phonassess/internal/router"
	"github.com/abhisek/phonassess/internal/screen"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/ui/components"
	"github.com/abhisek/phonassess/internal/ui/layout"
	"github.com/abhisek/phonassess/internal/ui/theme"
)

// PracticeIntroScreen shows the instructions and a button that starts the
// practice items.
type PracticeIntroScreen struct {
	sess    *session.Session
	next    screen.Func
	button  components.Button
	started bool
}

var _ screen.Screen = (*PracticeIntroScreen)(nil)

// New creates the screen. next is called once the first item is showing.
func New(sess *session.Session, next screen.Func) *PracticeIntroScreen {
	s := &PracticeIntroScreen{sess: sess, next: next}
	s.button = components.NewButton("연습 시작", true, s.start)
	return s
}

func (s *PracticeIntroScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeIntroScreen) Title() string {
	return "연습 안내"
}

func (s *PracticeIntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeIntroScreen) start() tea.Cmd {
	if s.started {
		return nil
	}
	s.started = true
	s.sess.Start()
	next := s.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *PracticeIntroScreen) View(width, height int) string {
	cardWidth := min(width-8, 72)
	text := theme.Body.Width(cardWidth - 4).Render(strings.Join(session.Instructions, "\n"))
	card := theme.Card.Width(cardWidth).Render(text)

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("연습 문제 안내"),
		"",
		card,
		"",
		s.button.View(),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *PracticeIntroScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "연습 시작"},
		{Key: "Ctrl+C", Description: "종료"},
	}
}
