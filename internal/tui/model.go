// Package tui is the terminal front-end: one input, one table, one status line.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JonMunkholm/companysearch/internal/core"
)

const (
	titleText     = "Motor de Búsqueda"
	promptText    = "Ingrese el nombre de la empresa a buscar:"
	noQueryText   = "Por favor, ingrese un término de búsqueda."
	noMatchesText = "No se encontraron empresas con el nombre ingresado."
	searchingText = "Buscando..."
	helpText      = "enter: buscar • esc: cambiar foco • ctrl+c: salir"

	maxColumnWidth = 40
	minTableHeight = 5
)

// Searcher runs one search. *core.Service implements it.
type Searcher interface {
	Search(ctx context.Context, query string) (core.Result, error)
}

// ResultMsg carries a completed search.
type ResultMsg struct{ Result core.Result }

// ErrMsg carries a failed search.
type ErrMsg struct{ Err error }

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusWarning
	statusError
)

// Model is the Bubble Tea model of the search screen.
type Model struct {
	ctx      context.Context
	searcher Searcher

	input textinput.Model
	table table.Model

	searching  bool
	status     string
	statusKind statusKind
	hasRows    bool

	styles Styles
}

// New creates the model. ctx bounds every search it starts.
func New(ctx context.Context, s Searcher) Model {
	in := textinput.New()
	in.Placeholder = "Ej: fabrica"
	in.CharLimit = 120
	in.Width = 50
	in.Focus()

	t := table.New(
		table.WithFocused(false),
		table.WithHeight(15),
	)

	return Model{
		ctx:      ctx,
		searcher: s,
		input:    in,
		table:    t,
		styles:   DefaultStyles(),
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, s Searcher) error {
	_, err := tea.NewProgram(New(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, minTableHeight))
		m.table.SetWidth(msg.Width - 2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.toggleFocus()
			return m, nil
		case "enter":
			if m.input.Focused() {
				if m.searching {
					return m, nil
				}
				m.searching = true
				m.setStatus(statusInfo, searchingText)
				return m, m.search(m.input.Value())
			}
		}

	case ResultMsg:
		m.searching = false
		m.showResult(msg.Result)
		return m, nil

	case ErrMsg:
		m.searching = false
		m.clearRows()
		m.setStatus(statusError, core.FormatUserError(msg.Err))
		return m, nil
	}

	if m.input.Focused() {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// search runs one search off the UI goroutine.
func (m Model) search(query string) tea.Cmd {
	ctx, s := m.ctx, m.searcher
	return func() tea.Msg {
		res, err := s.Search(ctx, query)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ResultMsg{Result: res}
	}
}

func (m *Model) toggleFocus() {
	if m.input.Focused() && m.hasRows {
		m.input.Blur()
		m.table.Focus()
		return
	}
	m.table.Blur()
	m.input.Focus()
}

func (m *Model) showResult(res core.Result) {
	switch res.Status {
	case core.StatusNoQuery:
		m.clearRows()
		m.setStatus(statusWarning, noQueryText)
		return
	case core.StatusZeroMatches:
		m.clearRows()
		m.setStatus(statusError, noMatchesText)
		return
	}

	rows := make([]table.Row, len(res.Records))
	for i, rec := range res.Records {
		rows[i] = rec.Values()
	}
	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(res.Columns, rows))
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.hasRows = true

	n := res.Count()
	text := strconv.Itoa(n) + " empresas encontradas"
	if n == 1 {
		text = "1 empresa encontrada"
	}
	m.setStatus(statusInfo, text)
}

func (m *Model) clearRows() {
	m.table.SetRows(nil)
	m.hasRows = false
	m.table.Blur()
	m.input.Focus()
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// columnsFor sizes each column to its widest cell, capped at maxColumnWidth.
func columnsFor(headers []string, rows []table.Row) []table.Column {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		w := len([]rune(h))
		for _, row := range rows {
			if i < len(row) {
				w = max(w, len([]rune(row[i])))
			}
		}
		cols[i] = table.Column{Title: h, Width: min(w, maxColumnWidth)}
	}
	return cols
}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(titleText))
	b.WriteString("\n")
	b.WriteString(m.styles.Prompt.Render(promptText))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.statusStyle().Render(m.status))
		b.WriteString("\n")
	}

	if m.hasRows {
		b.WriteString(m.styles.Table.Render(m.table.View()))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(helpText))
	return b.String()
}

func (m Model) statusStyle() lipgloss.Style {
	switch m.statusKind {
	case statusWarning:
		return m.styles.Warning
	case statusError:
		return m.styles.Error
	}
	return m.styles.Info
}
