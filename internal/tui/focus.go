package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusquest/internal/engine"
	"focusquest/internal/ui"
)

// RunFocus runs a countdown for the given session length and reports the
// completed session to the engine exactly once, when the timer hits zero.
// Quitting early reports nothing.
func RunFocus(ctx context.Context, svc *engine.Service, owner engine.Owner, minutes int, out io.Writer) error {
	m := newFocusModel(ctx, svc, owner, minutes)
	p := tea.NewProgram(m, tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(focusModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

type focusModel struct {
	ctx   context.Context
	svc   *engine.Service
	owner engine.Owner

	minutes   int
	remaining time.Duration
	paused    bool
	saving    bool

	result *engine.FocusResult
	err    error
}

type tickMsg time.Time

type savedMsg struct {
	res *engine.FocusResult
	err error
}

func newFocusModel(ctx context.Context, svc *engine.Service, owner engine.Owner, minutes int) focusModel {
	return focusModel{
		ctx:       ctx,
		svc:       svc,
		owner:     owner,
		minutes:   minutes,
		remaining: time.Duration(minutes) * time.Minute,
	}
}

func (m focusModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m focusModel) saveCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.AddFocusMinutes(m.ctx, m.owner, m.minutes)
		return savedMsg{res: res, err: err}
	}
}

func (m focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.paused || m.saving || m.result != nil {
			return m, tickCmd()
		}
		m.remaining -= time.Second
		if m.remaining <= 0 {
			m.remaining = 0
			m.saving = true
			return m, m.saveCmd()
		}
		return m, tickCmd()
	case savedMsg:
		m.saving = false
		m.err = msg.err
		m.result = msg.res
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "p", " ":
			if m.result == nil && !m.saving {
				m.paused = !m.paused
			}
			return m, nil
		case "enter":
			if m.result != nil || m.err != nil {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	return m, nil
}

func (m focusModel) View() string {
	if m.err != nil {
		return ui.Bad.Render(ui.IconError+" Saving session failed: "+m.err.Error()) + "\n\nPress enter to quit.\n"
	}

	if m.result != nil {
		var b strings.Builder
		b.WriteString(ui.Good.Render(fmt.Sprintf("%s +%d focus minutes!", ui.IconDone, m.minutes)))
		b.WriteString("\n")
		if m.result.BonusXP > 0 {
			b.WriteString(ui.Gold.Render(fmt.Sprintf("%s +%d XP", ui.IconBolt, m.result.BonusXP)))
			b.WriteString("\n")
		}
		if m.result.LevelUp {
			b.WriteString(fmt.Sprintf("%s Level %d → %d\n", ui.BadgeLevelUp, m.result.LevelBefore, m.result.LevelAfter))
		}
		b.WriteString(ui.Muted.Render(fmt.Sprintf("Total focus time: %d min", m.result.User.TotalFocusMinutes)))
		b.WriteString("\n\nPress enter to quit.\n")
		return b.String()
	}

	total := time.Duration(m.minutes) * time.Minute
	elapsed := total - m.remaining
	face := fmt.Sprintf("%02d:%02d", int(m.remaining.Minutes()), int(m.remaining.Seconds())%60)
	if m.paused {
		face += "  (paused)"
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconTimer, "Focus Session"))
	b.WriteString("\n\n")
	b.WriteString(ui.TimerFace.Render(face))
	b.WriteString("\n\n")
	b.WriteString(ui.ProgressBar(int(elapsed.Seconds()), int(total.Seconds()), 30))
	b.WriteString("\n\n")
	b.WriteString(ui.Muted.Render("p/space: pause · q: abandon (no credit)"))
	b.WriteString("\n")
	return b.String()
}
