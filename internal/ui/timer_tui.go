package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lawrnfy/TaskForge/internal/engine"
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// TimerModel is the live session watch view. It polls the engine once a
// second and renders the countdown with lifecycle keybindings.
type TimerModel struct {
	eng      *engine.Engine
	snap     engine.StateSnapshot
	progress progress.Model
	total    time.Duration
	err      error
	quitting bool
	width    int
}

// NewTimerModel builds the watch view bound to a running engine.
func NewTimerModel(eng *engine.Engine, accent string) TimerModel {
	p := progress.New(progress.WithSolidFill(string(AccentColor(accent))))
	return TimerModel{eng: eng, progress: p}
}

func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(m.refresh, tick())
}

func (m TimerModel) refresh() tea.Msg {
	snap, err := m.eng.Snapshot()
	if err != nil {
		return err
	}
	return snap
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 10
		if w > 60 {
			w = 60
		}
		if w > 0 {
			m.progress.Width = w
		}

	case tickMsg:
		return m, tea.Batch(m.refresh, tick())

	case *engine.StateSnapshot:
		m.snap = *msg
		m.err = nil
		if msg.Session.Active {
			m.total = msg.Session.EndAt.Sub(msg.Session.StartAt)
		}

	case error:
		m.err = msg

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "p":
			_ = m.eng.PauseSession()
			return m, m.refresh
		case "r":
			_ = m.eng.ResumeSession()
			return m, m.refresh
		case "s":
			_ = m.eng.StopSession()
			return m, m.refresh
		case "b":
			_ = m.eng.StartBreak()
			return m, m.refresh
		}
	}
	return m, nil
}

func (m TimerModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return StyleError.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}

	var b strings.Builder

	sess := m.snap.Session
	if !sess.Active {
		b.WriteString(StyleSubtle.Render("No active session."))
		b.WriteString("\n\n")
		b.WriteString(StyleSubtle.Render("q quit"))
		return StyleTimerBox.Render(b.String()) + "\n"
	}

	title := "Focus"
	if sess.TaskID != nil {
		for _, t := range m.snap.Tasks {
			if t.ID == *sess.TaskID {
				title = t.Title
				break
			}
		}
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")

	remaining := sess.Remaining(time.Now())
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(formatClock(remaining)))
	if sess.Paused {
		b.WriteString(StyleWarning.Render("  ⏸ paused"))
	}
	b.WriteString("\n")

	if m.total > 0 {
		elapsed := m.total - remaining
		b.WriteString(m.progress.ViewAs(float64(elapsed) / float64(m.total)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleSubtle.Render("p pause • r resume • s stop • b break • q quit"))

	return StyleTimerBox.Render(b.String()) + "\n"
}

// formatClock renders a duration as MM:SS (or H:MM:SS past an hour).
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	mm := int(d.Minutes()) % 60
	ss := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}
