package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxRows = 500

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	argsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	connStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dropStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// SignalMsg is one observed signal on the channel. Feed these to the
// running program with Program.Send.
type SignalMsg struct {
	Name string
	Args []any
	At   time.Time
}

// ClientConnectedMsg reports a client attaching to the channel endpoint.
type ClientConnectedMsg struct {
	Remote string
}

// ClientGoneMsg reports a client detaching.
type ClientGoneMsg struct {
	Remote string
}

type row struct {
	at   time.Time
	text string
}

// Model is the signal-traffic monitor: a scrolling feed of every signal
// crossing the channel, newest last.
type Model struct {
	viewport viewport.Model
	rows     []row
	clients  int
	total    int
	ready    bool
	quitting bool
}

// NewModel creates a monitor model with an empty feed.
func NewModel() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.content())
		return m, nil

	case SignalMsg:
		m.total++
		m.appendRow(msg.At, fmt.Sprintf("%s %s",
			nameStyle.Render(msg.Name),
			argsStyle.Render(formatArgs(msg.Args)),
		))
		return m, nil

	case ClientConnectedMsg:
		m.clients++
		m.appendRow(time.Now(), connStyle.Render("client connected "+msg.Remote))
		return m, nil

	case ClientGoneMsg:
		if m.clients > 0 {
			m.clients--
		}
		m.appendRow(time.Now(), dropStyle.Render("client disconnected "+msg.Remote))
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) appendRow(at time.Time, text string) {
	m.rows = append(m.rows, row{at: at, text: text})
	if len(m.rows) > maxRows {
		m.rows = m.rows[len(m.rows)-maxRows:]
	}
	if m.ready {
		m.viewport.SetContent(m.content())
		m.viewport.GotoBottom()
	}
}

func (m Model) content() string {
	var sb strings.Builder
	for _, r := range m.rows {
		sb.WriteString(timeStyle.Render(r.at.Format("15:04:05.000")))
		sb.WriteString(" ")
		sb.WriteString(r.text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "starting monitor..."
	}

	header := titleStyle.Render("deskbridge monitor") + " " +
		statusStyle.Render(fmt.Sprintf("clients: %d  signals: %d", m.clients, m.total))
	footer := helpStyle.Render("↑/↓ scroll · q quit")
	return header + "\n\n" + m.viewport.View() + footer
}

// formatArgs renders signal args compactly for the feed.
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatArg(a)
	}
	return strings.Join(parts, " ")
}

func formatArg(a any) string {
	switch v := a.(type) {
	case nil:
		return "nil"
	case string:
		if len(v) > 60 {
			return fmt.Sprintf("%q…", v[:60])
		}
		return fmt.Sprintf("%q", v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "{" + strings.Join(keys, ",") + "}"
	default:
		return fmt.Sprint(v)
	}
}
