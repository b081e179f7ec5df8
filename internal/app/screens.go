package app

import (
	"context"

	"github.com/abhisek/phonassess/internal/flow"
	"github.com/abhisek/phonassess/internal/screen"
	"github.com/abhisek/phonassess/internal/screens/intro"
	"github.com/abhisek/phonassess/internal/screens/practiceintro"
	"github.com/abhisek/phonassess/internal/screens/question"
	"github.com/abhisek/phonassess/internal/screens/result"
	"github.com/abhisek/phonassess/internal/session"
)

// phaseScreens maps each phase of the run to its screen. Every screen gets
// current as its successor, so transitions follow the session state.
type phaseScreens struct {
	ctx  context.Context
	sess *session.Session
}

func (p *phaseScreens) current() screen.Screen {
	switch p.sess.Phase() {
	case flow.PhasePracticeIntro:
		return practiceintro.New(p.sess, p.current)
	case flow.PhasePractice, flow.PhaseMain:
		return question.New(p.ctx, p.sess, p.current)
	case flow.PhaseResult:
		return result.New(p.sess, p.current)
	default:
		return intro.New(p.sess, p.current)
	}
}
