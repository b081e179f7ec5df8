package intro

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/phonassess/internal/flow"
	"github.com/abhisek/phonassess/internal/questions"
	"github.com/abhisek/phonassess/internal/router"
	"github.com/abhisek/phonassess/internal/screen"
	"github.com/abhisek/phonassess/internal/session"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "next" }
func (s *stubScreen) Title() string                           { return "Next" }

func newTestIntro() (*IntroScreen, *session.Session, *int) {
	set := &questions.Set{
		Examples: []questions.Question{{ItemID: "ex_1", Question: "공책에서 공을 빼면?", CorrectAnswer: "책"}},
		Main:     []questions.Question{{ItemID: "del_1", Question: "바다에서 바를 빼면?", CorrectAnswer: "다"}},
	}
	sess := session.New(set, session.Options{Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))})
	calls := 0
	factory := func() screen.Screen {
		calls++
		return &stubScreen{}
	}
	return New(sess, factory), sess, &calls
}

func sendTicks(s *IntroScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = s.Update(tickMsg(time.Now()))
	}
	return cmd
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestTitleEmpty(t *testing.T) {
	s, _, _ := newTestIntro()
	if s.Title() != "" {
		t.Errorf("expected empty title, got %q", s.Title())
	}
}

func TestRevealAndTicksStop(t *testing.T) {
	s, _, _ := newTestIntro()

	if strings.Contains(s.View(80, 24), tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(s, 6)
	if !strings.Contains(s.View(80, 24), tagline) {
		t.Error("tagline should be visible after reveal")
	}

	sendTicks(s, 6)
	if cmd := sendTicks(s, 1); cmd != nil {
		t.Error("ticking should stop once the animation is complete")
	}
	if s.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, s.elapsed)
	}
}

func TestKeyDuringAnimationSkipsIt(t *testing.T) {
	s, sess, calls := newTestIntro()
	sendTicks(s, 2)

	_, cmd := s.Update(enter())
	if cmd != nil {
		t.Error("first key should only finish the animation")
	}
	if s.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", s.elapsed, totalDur)
	}
	if *calls != 0 || sess.Phase() != flow.PhaseIntro {
		t.Error("session should not start before the button is shown")
	}
}

func TestEnterStartsSession(t *testing.T) {
	s, sess, calls := newTestIntro()
	sendTicks(s, 12)

	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("expected a command from Enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if sess.Phase() != flow.PhasePracticeIntro {
		t.Errorf("Phase = %s, want practice-intro", sess.Phase())
	}
	if *calls != 1 {
		t.Errorf("factory should be called once, got %d", *calls)
	}
}

func TestStartOnlyOnce(t *testing.T) {
	s, sess, calls := newTestIntro()
	sendTicks(s, 12)

	s.Update(enter())
	_, cmd := s.Update(enter())
	if cmd != nil {
		t.Error("second Enter should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("factory should be called exactly once, got %d", *calls)
	}
	if sess.Phase() != flow.PhasePracticeIntro {
		t.Errorf("Phase = %s, want practice-intro", sess.Phase())
	}
}

func TestOtherKeysIgnoredAfterReveal(t *testing.T) {
	s, _, calls := newTestIntro()
	sendTicks(s, 12)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd != nil || *calls != 0 {
		t.Error("only Enter should press the start button")
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(30), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
	if strings.Contains(RenderBanner(80), bannerCompact) {
		t.Error("wide terminals should get the full banner")
	}
}
