package session

import (
	"errors"
	"time"

	"github.com/abhisek/phonassess/internal/flow"
	"github.com/abhisek/phonassess/internal/scoring"
	"github.com/abhisek/phonassess/internal/transcribe"
)

var (
	// ErrNotAsking is returned by Respond outside the practice and main
	// phases.
	ErrNotAsking = errors.New("no question is being asked")

	// ErrNoTranscriber is returned by Respond for an audio response when
	// transcription is disabled.
	ErrNoTranscriber = errors.New("transcription is not configured")
)

// Feedback lines shown after a scored response.
const (
	FeedbackCorrect   = "정답입니다!"
	FeedbackIncorrect = "다시 생각해보세요"
)

// Response is one spoken (or typed) answer to the current question.
type Response struct {
	// Text is the transcript when the caller already has one, e.g. typed
	// input. Ignored when Audio is set.
	Text string

	// Audio is a recording to transcribe.
	Audio *transcribe.Request

	// Duration is how long the subject responded for. A zero duration
	// means nothing was captured.
	Duration time.Duration
}

// Status says what Respond did with a response.
type Status int

const (
	StatusRecorded        Status = iota // appended to the answer log
	StatusNoRecording                   // zero duration; ignored
	StatusEmptyTranscript               // nothing recognised; ignored
)

func (s Status) String() string {
	switch s {
	case StatusRecorded:
		return "recorded"
	case StatusNoRecording:
		return "no-recording"
	case StatusEmptyTranscript:
		return "empty-transcript"
	default:
		return "unknown"
	}
}

// Outcome reports the handling of one response.
type Outcome struct {
	Status Status
	ItemID string
	Phase  flow.Phase

	// Transcript is the text that was scored or recorded.
	Transcript string

	// Scored is true when the phase is scored. Result is only meaningful
	// then.
	Scored bool
	Result scoring.Result

	// Record is the appended record when Status is StatusRecorded.
	Record flow.AnswerRecord
}

// Feedback returns the line to show the subject, empty when the response
// was not scored.
func (o Outcome) Feedback() string {
	if o.Status != StatusRecorded || !o.Scored {
		return ""
	}
	if o.Result.Correct {
		return FeedbackCorrect
	}
	return FeedbackIncorrect
}

// Instructions is read aloud to the child before the practice items.
var Instructions = []string{
	"지금부터 어떤 낱말을 들려 드립니다.",
	"그리고 이 낱말에서 특정 소리를 빼고 남은 소리를 말해 주세요.",
	"예를 들어, 공책에서 공을 빼고 남은 소리를 말해 주세요.",
	"이렇게 요청하면 공책에서 공을 빼고 책만 말하면 됩니다.",
	"그럼 실제로 연습해 봅시다.",
}
