package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/bubblejar/internal/session"
	"github.com/lox/bubblejar/jar"
)

const (
	bubbleGlyph = "●"
	slotGlyph   = " "
	logHeight   = 6
)

// tickMsg refreshes the elapsed time display
type tickMsg time.Time

// Model is the Bubble Tea model for one interactive session
type Model struct {
	session *session.Session
	logger  *log.Logger
	keys    keyMap
	help    help.Model
	logView viewport.Model

	cursor   int
	status   string
	isError  bool
	gameLog  []string
	quitting bool
	width    int
}

// NewModel creates a model driving s
func NewModel(s *session.Session, logger *log.Logger) *Model {
	vp := viewport.New(40, logHeight)

	m := &Model{
		session: s,
		logger:  logger.WithPrefix("tui"),
		keys:    defaultKeyMap(),
		help:    help.New(),
		logView: vp,
	}
	m.addLog(fmt.Sprintf("Game %d dealt", s.Game()))
	return m
}

// Run starts the interactive program and blocks until the player quits or
// ctx is cancelled.
func Run(ctx context.Context, s *session.Session, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(s, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Init starts the clock
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.logView.Width = max(msg.Width-4, 10)
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Left):
			m.cursor = (m.cursor + jar.JarCount - 1) % jar.JarCount
		case key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % jar.JarCount
		case key.Matches(msg, m.keys.Pick):
			m.pick(m.cursor)
		case key.Matches(msg, m.keys.Jar):
			i := int(msg.String()[0] - '1')
			m.cursor = i
			m.pick(i)
		case key.Matches(msg, m.keys.Clear):
			m.session.ClearSelection()
			m.setStatus("", false)
		case key.Matches(msg, m.keys.NewGame):
			m.session.NewGame()
			m.cursor = 0
			m.setStatus("New game", false)
			m.addLog(fmt.Sprintf("Game %d dealt", m.session.Game()))
		case key.Matches(msg, m.keys.ScrollUp):
			m.logView.ScrollUp(1)
		case key.Matches(msg, m.keys.ScrollDn):
			m.logView.ScrollDown(1)
		}
	}
	return m, nil
}

// pick feeds a jar selection into the session and reports the outcome
func (m *Model) pick(i int) {
	res, err := m.session.Select(i)
	if err != nil {
		m.logger.Error("Selection failed", "jar", i, "error", err)
		m.setStatus(err.Error(), true)
		return
	}

	switch res.Outcome {
	case session.Selected:
		m.setStatus(fmt.Sprintf("Jar %d selected, pick a destination", i+1), false)
	case session.Deselected:
		m.setStatus("Selection cleared", false)
	case session.Rejected:
		m.setStatus(fmt.Sprintf("Can't move %d → %d: %s", res.From+1, res.To+1, res.Reject), true)
	case session.Moved, session.Won:
		board := m.session.Board()
		top, _ := board[res.To].Top()
		m.addLog(fmt.Sprintf("%d. %s %d → %d", m.session.Moves(), top, res.From+1, res.To+1))
		m.setStatus("", false)
		if res.Outcome == session.Won {
			m.addLog(fmt.Sprintf("Solved in %d moves", m.session.Moves()))
		}
	case session.Ignored:
		if res.Reject == jar.RejectEmptySource {
			m.setStatus(fmt.Sprintf("Jar %d is empty", i+1), true)
		}
	}
}

func (m *Model) setStatus(s string, isError bool) {
	m.status = s
	m.isError = isError
}

func (m *Model) addLog(line string) {
	m.gameLog = append(m.gameLog, line)
	m.logView.SetContent(strings.Join(m.gameLog, "\n"))
	m.logView.GotoBottom()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Bubble Jar Challenge"))
	b.WriteString("\n\n")

	info := fmt.Sprintf("Game %d  Moves: %d  Time: %s",
		m.session.Game(), m.session.Moves(), m.session.Elapsed().Truncate(time.Second))
	if m.session.Rules().MatchColor {
		info += "  (match colors)"
	}
	b.WriteString(InfoStyle.Render(info))
	b.WriteString("\n\n")

	b.WriteString(m.renderJars())
	b.WriteString("\n")

	switch {
	case m.session.Won():
		b.WriteString(WonStyle.Render(fmt.Sprintf("🎉 You won in %d moves! Press n for a new game.", m.session.Moves())))
	case m.isError:
		b.WriteString(ErrorStyle.Render(m.status))
	default:
		b.WriteString(StatusStyle.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(LogStyle.Render(m.logView.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// renderJars draws every jar as a bordered column, top bubble uppermost
func (m *Model) renderJars() string {
	board := m.session.Board()
	selected, hasSelection := m.session.Selected()

	cols := make([]string, len(board))
	for i, j := range board {
		var rows []string
		for row := range jar.Capacity {
			slot := row - (jar.Capacity - len(j))
			if slot < 0 {
				rows = append(rows, slotGlyph)
				continue
			}
			rows = append(rows, bubbleStyle(j[slot]).Render(bubbleGlyph))
		}

		style := jarStyle
		switch {
		case hasSelection && i == selected:
			style = selectedJarStyle
		case hasSelection && m.session.CanMove(selected, i):
			style = targetJarStyle
		case j.IsSolved():
			style = solvedJarStyle
		}
		if i == m.cursor && !(hasSelection && i == selected) {
			style = cursorJarStyle
		}

		label := fmt.Sprintf("%d", i+1)
		if i == m.cursor {
			label = "▲" + label
		}
		col := lipgloss.JoinVertical(lipgloss.Center, style.Render(strings.Join(rows, "\n")), label)
		cols[i] = col
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func bubbleStyle(b jar.Bubble) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(b.Hex()))
}

// Status returns the current status line, for tests
func (m *Model) Status() string {
	return m.status
}

// Log returns the move log, for tests
func (m *Model) Log() []string {
	return m.gameLog
}
