package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorBlue   = lipgloss.Color("75")
	colorGreen  = lipgloss.Color("42")
	colorOrange = lipgloss.Color("214")

	styleTitle  = lipgloss.NewStyle().Bold(true)
	styleUrgent = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	styleSubtle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleBox    = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// accentColor maps the settings accent name to a terminal color.
func accentColor(accent string) lipgloss.Color {
	switch accent {
	case "green":
		return colorGreen
	case "orange":
		return colorOrange
	default:
		return colorBlue
	}
}

// ConsoleNotifier renders notifications to a writer. It is the default sink
// for CLI usage; the serve command swaps in whatever surface the host
// provides.
type ConsoleNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	accent string
}

// NewConsoleNotifier writes styled notifications to out.
func NewConsoleNotifier(out io.Writer, accent string) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, accent: accent}
}

// SetAccent updates the accent color used for borders.
func (c *ConsoleNotifier) SetAccent(accent string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accent = accent
}

// Notify implements Notifier.
func (c *ConsoleNotifier) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	title := styleTitle.Render(n.Title)
	if n.RequireInteraction {
		title = styleUrgent.Render("! " + n.Title)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(n.Message)
	if len(n.Buttons) > 0 {
		var labels []string
		for i, btn := range n.Buttons {
			labels = append(labels, fmt.Sprintf("[%d] %s", i, btn.Title))
		}
		b.WriteString("\n")
		b.WriteString(styleSubtle.Render(strings.Join(labels, "  ")))
	}

	box := styleBox.BorderForeground(accentColor(c.accent)).Render(b.String())
	fmt.Fprintln(c.out, box)
}

// MemoryNotifier records notifications for tests.
type MemoryNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

// Notify implements Notifier.
func (m *MemoryNotifier) Notify(n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
}

// Sent returns a copy of everything notified so far.
func (m *MemoryNotifier) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.sent...)
}

// Reset clears recorded notifications.
func (m *MemoryNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}
