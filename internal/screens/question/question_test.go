package question

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/phonassess/internal/flow"
	"github.com/abhisek/phonassess/internal/questions"
	"github.com/abhisek/phonassess/internal/router"
	"github.com/abhisek/phonassess/internal/screen"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/transcribe"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "next" }
func (s *stubScreen) Title() string                           { return "Next" }

// tickingClock moves forward one second on every reading.
func tickingClock() func() time.Time {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func testSet() *questions.Set {
	return &questions.Set{
		Examples: []questions.Question{
			{ItemID: "ex_1", Question: "공책에서 공을 빼면?", CorrectAnswer: "책"},
		},
		Main: []questions.Question{
			{ItemID: "del_1", Question: "바다에서 바를 빼면?", CorrectAnswer: "다"},
		},
	}
}

func testScreen(t *testing.T, opts session.Options) (*QuestionScreen, *session.Session, *int) {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = tickingClock()
	}
	opts.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	sess := session.New(testSet(), opts)
	sess.Start()
	sess.Start()

	calls := 0
	s := New(context.Background(), sess, func() screen.Screen {
		calls++
		return &stubScreen{}
	})
	return s, sess, &calls
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// run feeds the messages produced by cmd back into the screen until no
// command is left.
func run(s *QuestionScreen, cmd tea.Cmd) tea.Msg {
	var last tea.Msg
	for cmd != nil {
		last = cmd()
		switch last.(type) {
		case transcribedMsg, respondedMsg:
			_, cmd = s.Update(last)
		default:
			return last
		}
	}
	return last
}

func submit(s *QuestionScreen, answer string) {
	s.input.Model.SetValue(answer)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(s, cmd)
}

func TestQuestionScreen_Title(t *testing.T) {
	s, _, _ := testScreen(t, session.Options{})
	if s.Title() != "연습문제1" {
		t.Errorf("Title = %q, want %q", s.Title(), "연습문제1")
	}
}

func TestQuestionScreen_ViewShowsQuestion(t *testing.T) {
	s, _, _ := testScreen(t, session.Options{})
	view := s.View(100, 30)
	if !strings.Contains(view, "공책에서 공을 빼면?") {
		t.Error("expected the question text")
	}
	if !strings.Contains(view, "연1") {
		t.Error("expected the navigation bar")
	}
}

func TestQuestionScreen_CorrectAnswer(t *testing.T) {
	s, sess, _ := testScreen(t, session.Options{})
	submit(s, "책")

	if s.outcome == nil {
		t.Fatal("expected an outcome after submit")
	}
	if !s.outcome.Result.Correct {
		t.Error("expected answer to be correct")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, session.FeedbackCorrect) {
		t.Error("expected correct feedback in view")
	}
	if !strings.Contains(view, "인식된 답변: 책") {
		t.Error("expected the recognised answer in view")
	}
	if got := len(sess.Flow().Answers()); got != 1 {
		t.Errorf("answers = %d, want 1", got)
	}
}

func TestQuestionScreen_IncorrectAnswer(t *testing.T) {
	s, _, _ := testScreen(t, session.Options{})
	submit(s, "공")

	if s.outcome == nil || s.outcome.Result.Correct {
		t.Fatal("expected an incorrect outcome")
	}
	if !strings.Contains(s.View(100, 30), session.FeedbackIncorrect) {
		t.Error("expected incorrect feedback in view")
	}
}

func TestQuestionScreen_EmptyAnswerShowsNotice(t *testing.T) {
	s, sess, _ := testScreen(t, session.Options{})
	submit(s, "   ")

	if s.outcome != nil {
		t.Error("empty answer should not produce an outcome")
	}
	if s.notice != noticeEmpty {
		t.Errorf("notice = %q, want %q", s.notice, noticeEmpty)
	}
	if len(sess.Flow().Answers()) != 0 {
		t.Error("empty answer should not be recorded")
	}
}

func TestQuestionScreen_ZeroDurationShowsNotice(t *testing.T) {
	fixed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s, _, _ := testScreen(t, session.Options{Clock: func() time.Time { return fixed }})
	submit(s, "책")

	if s.notice != noticeNoRecording {
		t.Errorf("notice = %q, want %q", s.notice, noticeNoRecording)
	}
}

func TestQuestionScreen_EnterAfterFeedbackAdvances(t *testing.T) {
	s, sess, calls := testScreen(t, session.Options{})
	submit(s, "책")

	s.Update(specialKey(tea.KeyEnter))
	if sess.Phase() != flow.PhaseMain {
		t.Errorf("Phase = %s, want main", sess.Phase())
	}
	if s.outcome != nil || s.input.Value() != "" {
		t.Error("per-item state should be cleared after advancing")
	}
	if *calls != 0 {
		t.Error("factory should not be called while items remain")
	}
}

func TestQuestionScreen_MainUnscored(t *testing.T) {
	s, _, _ := testScreen(t, session.Options{})
	submit(s, "책")
	s.Update(specialKey(tea.KeyEnter))

	submit(s, "다")
	if s.outcome == nil {
		t.Fatal("expected an outcome")
	}
	if s.outcome.Scored {
		t.Error("main answers should not be scored by default")
	}
	if !strings.Contains(s.View(100, 30), "응답이 기록되었습니다") {
		t.Error("expected the recorded notice for unscored answers")
	}
}

func TestQuestionScreen_LastItemLeavesToResult(t *testing.T) {
	s, sess, calls := testScreen(t, session.Options{})
	submit(s, "책")
	s.Update(specialKey(tea.KeyEnter))
	submit(s, "다")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command when leaving")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if sess.Phase() != flow.PhaseResult {
		t.Errorf("Phase = %s, want result", sess.Phase())
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestQuestionScreen_PageNavigation(t *testing.T) {
	s, sess, _ := testScreen(t, session.Options{})

	s.Update(specialKey(tea.KeyPgUp))
	if got := sess.Flow().State().GlobalIndex; got != 0 {
		t.Errorf("PgUp at first item moved to %d", got)
	}

	s.Update(specialKey(tea.KeyPgDown))
	if sess.Phase() != flow.PhaseMain || sess.Flow().State().GlobalIndex != 1 {
		t.Errorf("PgDn should move to the first main item, got %+v", sess.Flow().State())
	}

	s.Update(specialKey(tea.KeyPgDown))
	if got := sess.Flow().State().GlobalIndex; got != 1 {
		t.Errorf("PgDn at last item moved to %d", got)
	}
}

func writeRecording(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answer.wav")
	if err := os.WriteFile(path, []byte("RIFF0000WAVE"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestQuestionScreen_AudioAnswer(t *testing.T) {
	mock := transcribe.NewMockProvider(transcribe.MockResponse{Text: " 책 "})
	s, _, _ := testScreen(t, session.Options{Transcriber: mock})

	s.input.Model.SetValue("@" + writeRecording(t))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if !s.transcribing {
		t.Error("expected transcribing state while the command runs")
	}
	run(s, cmd)

	if s.transcribing {
		t.Error("transcribing should end once the result arrives")
	}
	if s.outcome == nil || s.outcome.Transcript != "책" || !s.outcome.Result.Correct {
		t.Fatalf("unexpected outcome %+v", s.outcome)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("transcriber calls = %d, want 1", mock.CallCount())
	}
	call := mock.Calls[0]
	if call.Prompt != "책" || call.Language != "ko" {
		t.Errorf("request hints = %q/%q, want 책/ko", call.Prompt, call.Language)
	}
}

func TestQuestionScreen_AudioWithoutTranscriber(t *testing.T) {
	s, _, _ := testScreen(t, session.Options{})
	s.input.Model.SetValue("@" + writeRecording(t))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command without a transcriber")
	}
	if s.notice != noticeNoAudio {
		t.Errorf("notice = %q, want %q", s.notice, noticeNoAudio)
	}
}

func TestQuestionScreen_TranscriptionError(t *testing.T) {
	mock := transcribe.NewMockProvider(transcribe.MockResponse{Err: errors.New("upstream down")})
	s, sess, _ := testScreen(t, session.Options{Transcriber: mock})
	submit(s, "@"+writeRecording(t))

	if !strings.Contains(s.errMsg, "upstream down") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if len(sess.Flow().Answers()) != 0 {
		t.Error("failed transcription should not be recorded")
	}

	s.Update(keyPress('x'))
	if s.errMsg != "" {
		t.Error("any key should dismiss the error")
	}
}

func TestQuestionScreen_MissingRecording(t *testing.T) {
	mock := transcribe.NewMockProvider()
	s, _, _ := testScreen(t, session.Options{Transcriber: mock})
	submit(s, "@"+filepath.Join(t.TempDir(), "missing.wav"))

	if s.errMsg == "" {
		t.Error("expected an error for a missing recording")
	}
	if mock.CallCount() != 0 {
		t.Error("transcriber should not be called")
	}
}

func TestQuestionScreen_QuitConfirm(t *testing.T) {
	s, _, _ := testScreen(t, session.Options{})

	s.Update(specialKey(tea.KeyEscape))
	if !s.showingQuit {
		t.Fatal("expected quit confirmation dialog")
	}

	s.Update(keyPress('n'))
	if s.showingQuit {
		t.Error("expected quit confirmation to be dismissed")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestQuestionScreen_KeyHints(t *testing.T) {
	s, _, _ := testScreen(t, session.Options{})
	if len(s.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
	s.showingQuit = true
	if hints := s.KeyHints(); len(hints) != 2 || hints[0].Key != "Y" {
		t.Errorf("unexpected quit hints %+v", hints)
	}
}
