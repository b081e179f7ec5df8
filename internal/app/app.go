// Package app hosts the Bubble Tea program that walks an operator through
// one assessment run.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/phonassess/internal/router"
	"github.com/abhisek/phonassess/internal/screen"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Session *session.Session
	Logger  *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel creates the model with the screen matching the session's
// current phase.
func newAppModel(ctx context.Context, sess *session.Session) AppModel {
	screens := &phaseScreens{ctx: ctx, sess: sess}
	return AppModel{
		router: router.New(screens.current()),
		sess:   sess,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status returns the "current/total" counter while an item is showing.
func (m AppModel) status() string {
	if m.sess == nil || !m.sess.Phase().Asking() {
		return ""
	}
	f := m.sess.Flow()
	return fmt.Sprintf("%d/%d  ", f.State().GlobalIndex+1, f.Len())
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render composes header, active screen and footer. Empty until the first
// window size arrives.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "종료"},
	}
	if active != nil {
		title = active.Title()
		if hp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = hp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		return errors.New("app: session is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := tea.NewProgram(newAppModel(ctx, opts.Session))
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited with error", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	logger.Info("tui exited", "phase", opts.Session.Phase(), "summary", opts.Session.Summary().String())
	return nil
}
