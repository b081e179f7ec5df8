// Package session drives one assessment run. It owns the flow over the
// question set, turns responses into answer records, and hands the UI what
// it needs to render each step.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/phonassess/internal/flow"
	"github.com/abhisek/phonassess/internal/questions"
	"github.com/abhisek/phonassess/internal/scoring"
	"github.com/abhisek/phonassess/internal/transcribe"
)

// Options configures a Session. The zero value is usable: typed answers
// only, practice scoring only, default logger and clock.
type Options struct {
	// Transcriber converts audio responses. Nil disables audio answers.
	Transcriber transcribe.Provider

	Logger *slog.Logger

	// ScoreMain scores main-phase responses as well as practice ones.
	ScoreMain bool

	// Language is the transcription hint. Default: "ko".
	Language string

	// Clock stamps records and measures response time. Default: time.Now.
	Clock func() time.Time
}

// Session is the state of a single run.
type Session struct {
	// ID is a UUID identifying this run in logs.
	ID string

	set    *questions.Set
	flow   *flow.Flow
	opts   Options
	logger *slog.Logger

	startedAt time.Time
	shownAt   time.Time
}

// New creates a session in the intro phase.
func New(set *questions.Set, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Language == "" {
		opts.Language = "ko"
	}
	s := &Session{set: set, opts: opts}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.ID = uuid.NewString()
	s.flow = flow.New(s.set, flow.WithClock(s.opts.Clock))
	s.startedAt = s.opts.Clock()
	s.shownAt = time.Time{}

	logger := s.opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s.logger = logger.With("session_id", s.ID)
}

// Flow exposes the underlying state machine for read access.
func (s *Session) Flow() *flow.Flow {
	return s.flow
}

// Set returns the question set.
func (s *Session) Set() *questions.Set {
	return s.set
}

// Phase returns the current phase.
func (s *Session) Phase() flow.Phase {
	return s.flow.Phase()
}

// CanTranscribe reports whether audio responses are accepted.
func (s *Session) CanTranscribe() bool {
	return s.opts.Transcriber != nil
}

// Current returns the question being asked.
func (s *Session) Current() (questions.Question, bool) {
	return s.flow.CurrentQuestion()
}

// Start moves intro -> practice-intro -> first question.
func (s *Session) Start() {
	from := s.flow.Phase()
	s.flow.Start()
	s.entered(from)
}

// Next advances to the following item. It reports the new phase.
func (s *Session) Next() flow.Phase {
	from := s.flow.Phase()
	s.flow.Advance()
	s.entered(from)
	return s.flow.Phase()
}

// Navigate jumps to the item at global position g. Out-of-range positions
// are ignored and reported as false.
func (s *Session) Navigate(g int) bool {
	from := s.flow.Phase()
	if !s.flow.JumpTo(g) {
		s.logger.Debug("navigation ignored", "target", g, "len", s.flow.Len())
		return false
	}
	s.entered(from)
	return true
}

func (s *Session) entered(from flow.Phase) {
	st := s.flow.State()
	if st.Phase.Asking() {
		s.shownAt = s.opts.Clock()
	}
	if st.Phase != from {
		s.logger.Info("phase changed", "from", from, "to", st.Phase, "global_index", st.GlobalIndex)
	}
	if st.Phase == flow.PhaseResult && from != flow.PhaseResult {
		s.logger.Info("assessment complete", "summary", s.flow.ResultSummary().String())
	}
}

// Elapsed returns the time since the current question was shown, or zero
// when no question is showing.
func (s *Session) Elapsed() time.Duration {
	if !s.flow.Phase().Asking() || s.shownAt.IsZero() {
		return 0
	}
	return s.opts.Clock().Sub(s.shownAt)
}

// Respond handles an answer to the current question. A zero-duration
// response or an empty transcript records nothing. Otherwise the response
// is scored when the phase is scored and appended to the answer log.
func (s *Session) Respond(ctx context.Context, resp Response) (Outcome, error) {
	q, ok := s.flow.CurrentQuestion()
	if !ok {
		return Outcome{}, ErrNotAsking
	}
	phase := s.flow.Phase()
	out := Outcome{ItemID: q.ItemID, Phase: phase}

	if resp.Duration <= 0 {
		out.Status = StatusNoRecording
		s.logger.Debug("response without recording ignored", "item_id", q.ItemID)
		return out, nil
	}

	text, err := s.transcript(ctx, q, resp)
	if err != nil {
		return Outcome{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		out.Status = StatusEmptyTranscript
		s.logger.Info("empty transcript ignored", "item_id", q.ItemID)
		return out, nil
	}
	out.Transcript = text

	verdict := flow.VerdictUnscored
	if phase == flow.PhasePractice || s.opts.ScoreMain {
		out.Scored = true
		out.Result = scoring.Score(text, q.CorrectAnswer)
		verdict = flow.VerdictOf(out.Result.Correct)
	}

	out.Status = StatusRecorded
	out.Record = s.flow.RecordAnswer(q.ItemID, text, verdict)

	s.logger.Info("answer recorded",
		"item_id", q.ItemID,
		"phase", phase,
		"verdict", verdict,
		"similarity", out.Result.Similarity,
		"duration", resp.Duration,
	)
	return out, nil
}

func (s *Session) transcript(ctx context.Context, q questions.Question, resp Response) (string, error) {
	if resp.Audio == nil {
		return resp.Text, nil
	}
	return s.Transcribe(ctx, q, *resp.Audio)
}

// Transcribe converts an audio answer to q into text without touching the
// run state, so it may be called off the UI goroutine. The language and the
// expected answer are filled in as hints when the request leaves them empty.
func (s *Session) Transcribe(ctx context.Context, q questions.Question, req transcribe.Request) (string, error) {
	if s.opts.Transcriber == nil {
		return "", ErrNoTranscriber
	}
	if req.Language == "" {
		req.Language = s.opts.Language
	}
	if req.Prompt == "" {
		req.Prompt = q.CorrectAnswer
	}

	result, err := s.opts.Transcriber.Transcribe(transcribe.WithItem(ctx, q.ItemID), req)
	if err != nil {
		return "", fmt.Errorf("transcribe response to %s: %w", q.ItemID, err)
	}
	return result.Text, nil
}

// Summary returns the aggregated results so far.
func (s *Session) Summary() flow.Summary {
	return s.flow.ResultSummary()
}

// Restart begins a new run over the same question set with a fresh ID.
func (s *Session) Restart() {
	old := s.ID
	s.reset()
	s.logger.Info("session restarted", "previous_session_id", old)
}

// Snapshot captures the run's position and answers.
func (s *Session) Snapshot() flow.Snapshot {
	return s.flow.Snapshot()
}

// Resume restores a snapshot taken from a session over the same set.
func (s *Session) Resume(snap flow.Snapshot) error {
	from := s.flow.Phase()
	if err := s.flow.Restore(snap); err != nil {
		return err
	}
	s.entered(from)
	return nil
}
