// Package tui provides the Bubble Tea flashcard interface.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/ladder/internal/session"
)

type focusArea int

const (
	focusCategories focusArea = iota
	focusInput
)

const (
	sidebarWidth   = 30
	minTableHeight = 3
)

type toast struct {
	notice  session.Notice
	expires time.Time
}

type expireMsg struct{}

// Model implements the Bubble Tea practice UI.
type Model struct {
	ctrl *session.Controller
	log  logrus.FieldLogger
	now  func() time.Time

	categories table.Model
	input      textinput.Model
	focus      focusArea
	toasts     []toast

	width  int
	height int
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	codeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	panelStyle    = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	activePanelStyle = panelStyle.BorderForeground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs the practice TUI around a session controller.
func NewModel(ctrl *session.Controller, log logrus.FieldLogger) *Model {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	m := &Model{
		ctrl: ctrl,
		log:  log,
		now:  time.Now,
	}
	m.categories = table.New(
		table.WithColumns(categoryColumns()),
		table.WithHeight(minTableHeight),
	)
	m.categories.SetStyles(categoryTableStyles())
	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "type the answer, Enter to submit"
	m.input.CharLimit = 0
	m.refreshCategories()
	m.setFocus(focusCategories)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case expireMsg:
		m.pruneToasts()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.focus == focusInput {
			m.setFocus(focusCategories)
		} else {
			m.setFocus(focusInput)
		}
		return m, nil
	case "ctrl+s":
		return m, m.dispatch(session.Save{})
	case "ctrl+r":
		cmd := m.dispatch(session.Reload{})
		m.input.SetValue("")
		return m, cmd
	case "ctrl+o":
		return m, m.dispatch(session.Review{})
	case "ctrl+t":
		return m, m.dispatch(session.ToggleHint{})
	case "ctrl+l":
		return m, m.dispatch(session.SetLevel{Level: m.ctrl.State().Level.Next()})
	case "ctrl+p":
		return m, m.dispatch(session.Speak{})
	}

	if m.focus == focusCategories {
		switch msg.String() {
		case "esc":
			return m, tea.Quit
		case "enter":
			return m, m.selectHighlighted()
		}
		var cmd tea.Cmd
		m.categories, cmd = m.categories.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.setFocus(focusCategories)
		return m, nil
	case "enter":
		m.ctrl.Dispatch(session.SetInput{Text: m.input.Value()})
		cmd := m.dispatch(session.Submit{})
		m.input.SetValue(m.ctrl.State().Input)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.Dispatch(session.SetInput{Text: m.input.Value()})
	return m, cmd
}

func (m *Model) selectHighlighted() tea.Cmd {
	row := m.categories.SelectedRow()
	if len(row) == 0 {
		return nil
	}
	name := row[0]
	if m.ctrl.Words().RemainingWords(name) == 0 {
		m.log.WithField("category", name).Debug("category has no words left")
		return m.addNotices([]session.Notice{{
			Kind:     session.NoticeError,
			Text:     "No words left in " + name,
			Duration: session.DefaultNoticeDuration,
		}})
	}
	cmd := m.dispatch(session.SelectCategory{Name: name})
	m.input.SetValue("")
	m.setFocus(focusInput)
	return cmd
}

// dispatch forwards an intent to the controller and schedules toast expiry.
func (m *Model) dispatch(in session.Intent) tea.Cmd {
	notices := m.ctrl.Dispatch(in)
	m.refreshCategories()
	return m.addNotices(notices)
}

func (m *Model) addNotices(notices []session.Notice) tea.Cmd {
	if len(notices) == 0 {
		return nil
	}
	now := m.now()
	cmds := make([]tea.Cmd, 0, len(notices))
	for _, n := range notices {
		m.toasts = append(m.toasts, toast{notice: n, expires: now.Add(n.Duration)})
		cmds = append(cmds, tea.Tick(n.Duration, func(time.Time) tea.Msg { return expireMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (m *Model) pruneToasts() {
	now := m.now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.categories.Blur()
		m.input.Focus()
		return
	}
	m.input.Blur()
	m.categories.Focus()
}

func (m *Model) refreshCategories() {
	summary := m.ctrl.Words().Summary()
	rows := make([]table.Row, 0, len(summary))
	for _, c := range summary {
		rows = append(rows, table.Row{c.Name, strconv.Itoa(c.Remaining), strconv.Itoa(c.Completed)})
	}
	m.categories.SetRows(rows)
	if cursor := m.categories.Cursor(); cursor >= len(rows) {
		m.categories.SetCursor(maxInt(0, len(rows)-1))
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.categories.SetHeight(maxInt(minTableHeight, m.height-6))
	mainWidth := m.width - sidebarWidth - 6
	promptWidth := lipgloss.Width(m.input.Prompt)
	m.input.Width = maxInt(10, minInt(60, mainWidth-promptWidth-2))
}

// View implements tea.Model.
func (m *Model) View() string {
	sidebar := m.renderSidebar()
	main := m.renderMain()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n" + footer
	}
	bodyHeight := maxInt(1, m.height-1)
	body = lipgloss.Place(m.width, bodyHeight, lipgloss.Left, lipgloss.Top, body)
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Left, footer)
}

func (m *Model) renderSidebar() string {
	style := panelStyle
	if m.focus == focusCategories {
		style = activePanelStyle
	}
	title := titleStyle.Render(fmt.Sprintf("word category: %d", len(m.ctrl.Words().Learn)))
	return style.Width(sidebarWidth).Render(title + "\n" + m.categories.View())
}

func (m *Model) renderMain() string {
	st := m.ctrl.State()
	lines := []string{m.renderToolbar()}
	if st.Category != "" {
		lines = append(lines, fmt.Sprintf("category is %s  remaining word %d  completed word %d",
			codeStyle.Render(st.Category),
			m.ctrl.Words().RemainingWords(st.Category),
			m.ctrl.Words().CompletedWords(st.Category),
		))
	} else {
		lines = append(lines, mutedStyle.Render("select a category and press Enter"))
	}
	lines = append(lines, "", questionStyle.Render(st.Question))
	if st.Hint {
		lines = append(lines, hintStyle.Render(st.Answer))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, "", mutedStyle.Render("Please input the answer"), m.input.View())

	style := panelStyle
	if m.focus == focusInput {
		style = activePanelStyle
	}
	width := 0
	if m.width > 0 {
		width = maxInt(20, m.width-sidebarWidth-6)
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderToolbar() string {
	st := m.ctrl.State()
	hint := "[ ]"
	if st.Hint {
		hint = "[x]"
	}
	parts := []string{
		"^R reload",
		"^S save progress",
		"^O review",
		"^L level " + st.Level.String(),
		"^T hint " + hint,
		"^P speak",
	}
	return mutedStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) renderFooter() string {
	st := m.ctrl.State()
	counters := footerStyle.Render(fmt.Sprintf("Correct rate: %d  Error rate: %d", st.Correct, st.Errors))
	toasts := m.renderToasts()
	if toasts == "" {
		return counters
	}
	return counters + "  " + toasts
}

func (m *Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.notice.Kind == session.NoticeError {
			parts = append(parts, errorStyle.Render("✗ "+t.notice.Text))
			continue
		}
		parts = append(parts, successStyle.Render("✓ "+t.notice.Text))
	}
	return strings.Join(parts, "  ")
}

func categoryColumns() []table.Column {
	return []table.Column{
		{Title: "Category", Width: 14},
		{Title: "Left", Width: 5},
		{Title: "Done", Width: 5},
	}
}

func categoryTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
