// Package intro renders the opening screen of an assessment.
package intro

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phonassess/internal/router"
	"github.com/abhisek/phonassess/internal/screen"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/ui/components"
	"github.com/abhisek/phonassess/internal/ui/layout"
	"github.com/abhisek/phonassess/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	revealAt     = 600 * time.Millisecond
	totalDur     = 1200 * time.Millisecond
)

const tagline = "음운 인식 검사"

type tickMsg time.Time

// IntroScreen shows the banner and a start button. Starting moves the
// session into the practice introduction.
type IntroScreen struct {
	sess    *session.Session
	next    screen.Func
	button  components.Button
	elapsed time.Duration
	started bool
}

var _ screen.Screen = (*IntroScreen)(nil)

// New creates the intro screen. next is called after the session starts.
func New(sess *session.Session, next screen.Func) *IntroScreen {
	s := &IntroScreen{sess: sess, next: next}
	s.button = components.NewButton("시작하기", true, s.start)
	return s
}

func (s *IntroScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *IntroScreen) Init() tea.Cmd {
	return tick()
}

func (s *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.elapsed >= totalDur {
			return s, nil
		}
		s.elapsed += tickInterval
		return s, tick()

	case tea.KeyPressMsg:
		// The first key finishes the animation; the button only works
		// once it is visible.
		if s.elapsed < totalDur {
			s.elapsed = totalDur
			return s, nil
		}
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *IntroScreen) start() tea.Cmd {
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

func (s *IntroScreen) View(width, height int) string {
	sections := []string{RenderBanner(width)}

	if s.elapsed >= revealAt {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			theme.Subtitle.Render("낱말에서 소리를 빼고 남은 소리를 말해 보아요"),
		)
	}
	if s.elapsed >= totalDur {
		sections = append(sections, "", s.button.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Center, strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *IntroScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "시작"},
		{Key: "Ctrl+C", Description: "종료"},
	}
}
