// Package tui is an interactive browser for carve results: a result table
// with a detail pane, clipboard copy of matched secrets, and highlighted
// decoded token data.
package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keyreaper/keyreaper/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	secretFoundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	identifiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusStyle      = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("7"))
	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)
)

// Model is the TUI state: the carve results and the widgets viewing them.
type Model struct {
	url           string
	results       []types.DetectionResult
	table         table.Model
	viewport      viewport.Model
	ready         bool
	quitting      bool
	statusMessage string
	height        int
	width         int
}

type clearStatusMsg struct{}

// NewModel builds the browser over a fixed result set.
func NewModel(url string, results []types.DetectionResult) Model {
	columns := []table.Column{
		{Title: "Result", Width: 18},
		{Title: "Module", Width: 22},
		{Title: "Location", Width: 24},
		{Title: "Product Type", Width: 28},
	}
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		kind := "identified"
		if r.Kind == types.KindSecretFound {
			kind = "SECRET FOUND"
		}
		rows = append(rows, table.Row{kind, r.DetectingModule, r.Location, r.Description.Product})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
	)
	return Model{url: url, results: results, table: t}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		tableHeight := m.height/2 - 4
		if tableHeight < 4 {
			tableHeight = 4
		}
		m.table.SetHeight(tableHeight)
		m.viewport = viewport.New(m.width-4, m.height-tableHeight-7)
		m.ready = true
		m.refreshDetail()
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "c":
			return m.copySecret()
		case "up", "down", "k", "j", "pgup", "pgdown":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			m.refreshDetail()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) copySecret() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.results) {
		return m, nil
	}
	r := m.results[idx]
	if r.Kind != types.KindSecretFound {
		m.statusMessage = "no secret on this result"
	} else if err := clipboard.WriteAll(r.Secret); err != nil {
		m.statusMessage = "clipboard unavailable"
	} else {
		m.statusMessage = "secret copied"
	}
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) refreshDetail() {
	if !m.ready {
		return
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.results) {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(renderDetail(m.results[idx]))
	m.viewport.GotoTop()
}

// renderDetail pretty-prints one result as highlighted JSON.
func renderDetail(r types.DetectionResult) string {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", r)
	}
	lexer := lexers.Get("json")
	if lexer == nil {
		return string(b)
	}
	it, err := lexer.Tokenise(nil, string(b))
	if err != nil {
		return string(b)
	}
	var buf bytes.Buffer
	if err := formatters.TTY256.Format(&buf, styles.Get("monokai"), it); err != nil {
		return string(b)
	}
	return buf.String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	if len(m.results) == 0 {
		return emptyTextStyle.Width(m.width).Render("\nNo secrets found :(\n\npress q to quit")
	}

	title := titleStyle.Render("keyreaper carve: " + m.url)
	summary := m.summaryLine()
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		tableBorderStyle.Render(m.table.View()),
		detailPaneBorderStyle.Render(m.viewport.View()),
	)
	status := "  up/down: select   c: copy secret   q: quit"
	if m.statusMessage != "" {
		status = "  " + m.statusMessage
	}
	return body + "\n" + statusStyle.Width(m.width).Render(status)
}

func (m Model) summaryLine() string {
	var secretsFound, identified int
	for _, r := range m.results {
		if r.Kind == types.KindSecretFound {
			secretsFound++
		} else {
			identified++
		}
	}
	return fmt.Sprintf(" %s  %s",
		secretFoundStyle.Render(fmt.Sprintf("%d secret(s)", secretsFound)),
		identifiedStyle.Render(fmt.Sprintf("%d identified", identified)))
}
