// Package question renders one practice or main item and collects the
// child's answer, either typed by the operator or read from a recording.
package question

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/phonassess/internal/flow"
	"github.com/abhisek/phonassess/internal/router"
	"github.com/abhisek/phonassess/internal/screen"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/transcribe"
	"github.com/abhisek/phonassess/internal/ui/components"
	"github.com/abhisek/phonassess/internal/ui/layout"
)

const inputWidth = 40

const (
	noticeNoRecording = "녹음된 답변이 없습니다. 다시 답해 주세요."
	noticeEmpty       = "인식된 답변이 없습니다. 다시 말해 주세요."
	noticeNoAudio     = "음성 인식이 설정되어 있지 않습니다. 답을 직접 입력해 주세요."
)

// QuestionScreen shows the current item until the run leaves the asking
// phases, then hands over to the screen built by next.
type QuestionScreen struct {
	ctx  context.Context
	sess *session.Session
	next screen.Func

	input        components.TextInput
	outcome      *session.Outcome
	notice       string
	errMsg       string
	transcribing bool
	showingQuit  bool
	done         bool
}

var _ screen.Screen = (*QuestionScreen)(nil)

// New creates the screen for the session's current item.
func New(ctx context.Context, sess *session.Session, next screen.Func) *QuestionScreen {
	return &QuestionScreen{
		ctx:   ctx,
		sess:  sess,
		next:  next,
		input: components.NewTextInput("들은 답을 입력하거나 @녹음파일", inputWidth),
	}
}

func (s *QuestionScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *QuestionScreen) Title() string {
	return s.sess.Title()
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.showingQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "종료"},
			{Key: "N", Description: "계속"},
		}
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "확인"}}
	case s.transcribing:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "종료"}}
	case s.outcome != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "다음"},
			{Key: "PgUp/PgDn", Description: "이동"},
			{Key: "Esc", Description: "종료"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "제출"},
		{Key: "PgUp/PgDn", Description: "이동"},
		{Key: "Esc", Description: "종료"},
	}
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case transcribedMsg:
		return s.handleTranscribed(msg)
	case respondedMsg:
		return s.handleResponded(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.answering() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuestionScreen) answering() bool {
	return !s.transcribing && !s.showingQuit && s.errMsg == "" && s.outcome == nil
}

func (s *QuestionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuit {
		switch key {
		case "y", "Y":
			return s, tea.Quit
		case "n", "N", "esc":
			s.showingQuit = false
		}
		return s, nil
	}

	if s.errMsg != "" {
		s.errMsg = ""
		return s, nil
	}

	if s.transcribing {
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuit = true
		return s, nil
	case "pgup":
		return s.navigate(s.sess.Flow().State().GlobalIndex - 1)
	case "pgdown":
		return s.navigate(s.sess.Flow().State().GlobalIndex + 1)
	}

	if s.outcome != nil {
		if key == "enter" {
			return s.advance()
		}
		return s, nil
	}

	if key == "enter" {
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit records the typed answer directly, or starts transcribing when
// the input names a recording.
func (s *QuestionScreen) submit() (screen.Screen, tea.Cmd) {
	s.notice = ""
	elapsed := s.sess.Elapsed()

	path, isAudio := s.input.AudioPath()
	if !isAudio {
		return s, s.respond(session.Response{Text: s.input.Value(), Duration: elapsed})
	}
	if !s.sess.CanTranscribe() {
		s.notice = noticeNoAudio
		s.input.Reset()
		return s, nil
	}

	q, ok := s.sess.Current()
	if !ok {
		return s, nil
	}
	s.transcribing = true
	ctx, sess := s.ctx, s.sess
	return s, func() tea.Msg {
		req, err := transcribe.RequestFromFile(path, "")
		if err != nil {
			return transcribedMsg{ItemID: q.ItemID, Err: err}
		}
		text, err := sess.Transcribe(ctx, q, req)
		return transcribedMsg{ItemID: q.ItemID, Text: text, Duration: elapsed, Err: err}
	}
}

// respond runs on the update loop since it mutates the run.
func (s *QuestionScreen) respond(resp session.Response) tea.Cmd {
	out, err := s.sess.Respond(s.ctx, resp)
	return func() tea.Msg {
		return respondedMsg{Outcome: out, Err: err}
	}
}

func (s *QuestionScreen) handleTranscribed(msg transcribedMsg) (screen.Screen, tea.Cmd) {
	s.transcribing = false
	if q, ok := s.sess.Current(); !ok || q.ItemID != msg.ItemID {
		return s, nil
	}
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.input.Reset()
		return s, nil
	}
	return s, s.respond(session.Response{Text: msg.Text, Duration: msg.Duration})
}

func (s *QuestionScreen) handleResponded(msg respondedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if !errors.Is(msg.Err, session.ErrNotAsking) {
			s.errMsg = msg.Err.Error()
		}
		s.input.Reset()
		return s, nil
	}

	switch msg.Outcome.Status {
	case session.StatusNoRecording:
		s.notice = noticeNoRecording
		s.input.Reset()
	case session.StatusEmptyTranscript:
		s.notice = noticeEmpty
		s.input.Reset()
	case session.StatusRecorded:
		out := msg.Outcome
		s.outcome = &out
		s.input.Submit(!out.Scored || out.Result.Correct)
	}
	return s, nil
}

func (s *QuestionScreen) advance() (screen.Screen, tea.Cmd) {
	if s.sess.Next() == flow.PhaseResult {
		return s.leave()
	}
	return s, s.reload()
}

func (s *QuestionScreen) navigate(g int) (screen.Screen, tea.Cmd) {
	if !s.sess.Navigate(g) {
		return s, nil
	}
	return s, s.reload()
}

// reload clears per-item state after the current item changed.
func (s *QuestionScreen) reload() tea.Cmd {
	s.outcome = nil
	s.notice = ""
	s.input.Reset()
	return s.input.Init()
}

func (s *QuestionScreen) leave() (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}
	s.done = true
	next := s.next()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}
