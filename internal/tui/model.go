package tui

import (
	"fmt"
	"strings"

	"adventure/internal/logger"
	"adventure/internal/transcript"
	"adventure/internal/tui/render"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Options struct {
	// CopyableOutput 关闭 alt screen，保留终端原生选择/复制。
	CopyableOutput bool
	Logger         *logger.LogEntry
	// Clipboard overrides the system clipboard writer (tests).
	Clipboard func(string) error
}

type Model struct {
	textarea   textarea.Model
	viewport   render.Viewport
	controller *transcript.Controller
	// entries mirrors what the controller appended to this display.
	entries         []transcript.Entry
	history         promptHistory
	status          string
	width           int
	height          int
	transcriptDirty bool
	scrollPending   bool
	copyText        func(string) error
	log             *logger.LogEntry
}

// paneDisplay is the display surface handed to the controller.
type paneDisplay struct{ m *Model }

func (d paneDisplay) Append(entry transcript.Entry) {
	d.m.entries = append(d.m.entries, entry)
	d.m.transcriptDirty = true
}

func (d paneDisplay) ScrollToNewest() {
	d.m.scrollPending = true
}

// composerInput exposes the textarea as the controller's input field.
type composerInput struct{ m *Model }

func (c composerInput) Value() string { return c.m.textarea.Value() }

func (c composerInput) Clear() { c.m.textarea.Reset() }

func New(opts Options) *Model {
	ti := textarea.New()
	ti.Placeholder = "What do you do?"
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.SetWidth(76)
	ti.SetHeight(1)
	ti.ShowLineNumbers = false
	ti.KeyMap.InsertNewline.SetEnabled(false)
	ti.Focus()

	log := opts.Logger
	if log == nil {
		log = logger.Named("tui")
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	m := &Model{
		textarea: ti,
		viewport: render.NewViewport(76, 12),
		width:    80,
		height:   24,
		copyText: copyText,
		log:      log,
	}
	m.controller = transcript.New(paneDisplay{m: m}, composerInput{m: m}, transcript.WithLogger(log))
	return m
}

// Init is the startup signal: the viewport exists, so the welcome entry
// can be shown.
func (m *Model) Init() tea.Cmd {
	m.controller.Initialize()
	m.flushTranscript()
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.finish(cmds...)
	case tea.MouseMsg:
		if cmd := m.viewport.HandleUpdate(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m.finish(cmds...)
	case tea.KeyMsg:
		if m.handleScrollKeys(msg) {
			return m.finish(cmds...)
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			cmds = append(cmds, tea.Quit)
			return m.finish(cmds...)
		case "ctrl+y":
			m.copyTranscript()
			return m.finish(cmds...)
		case "up":
			if text, ok := m.history.Prev(m.textarea.Value()); ok {
				m.setComposer(text)
			}
			return m.finish(cmds...)
		case "down":
			if !m.history.Browsing() {
				break
			}
			if text, ok := m.history.Next(); ok {
				m.setComposer(text)
			}
			return m.finish(cmds...)
		}
		if msg.Type == tea.KeyEnter && !msg.Alt {
			m.history.Add(m.textarea.Value())
			m.controller.Press(transcript.KeyEnter)
			m.status = ""
			return m.finish(cmds...)
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	return m.finish(cmds...)
}

func (m *Model) finish(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	m.flushTranscript()
	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	header := renderHeader(m.width)
	chat := renderPane("", m.viewport.View(), m.width, m.viewport.Height)
	composer := renderPane("Command", m.textarea.View(), m.width, m.textarea.Height()+1)
	footer := renderHints(m.status, m.width)
	return lipgloss.JoinVertical(lipgloss.Left, header, chat, composer, footer)
}

// Entries returns a copy of the transcript shown so far.
func (m *Model) Entries() []transcript.Entry {
	return m.controller.Entries()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	const (
		headerHeight   = 3 // title + border
		composerHeight = 4 // title + input + border
		hintsHeight    = 1
		paneBorder     = 2
	)
	viewHeight := height - headerHeight - composerHeight - hintsHeight - paneBorder
	if viewHeight < 3 {
		viewHeight = 3
	}
	innerWidth := width - 4 // border + horizontal padding
	if innerWidth < 10 {
		innerWidth = 10
	}
	m.viewport.Resize(innerWidth, viewHeight)
	m.textarea.SetWidth(innerWidth)
	m.transcriptDirty = true
}

func (m *Model) flushTranscript() {
	if m.transcriptDirty {
		m.viewport.SetLines(m.renderTranscriptLines())
		m.transcriptDirty = false
	}
	if m.scrollPending {
		m.viewport.GotoBottom()
		m.scrollPending = false
	}
}

func (m *Model) renderTranscriptLines() []string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	return render.LinesToStrings(render.RenderEntries(m.entries, width))
}

func (m *Model) setComposer(text string) {
	m.textarea.Reset()
	m.textarea.InsertString(text)
}

func (m *Model) copyTranscript() {
	if err := m.copyText(render.PlainText(m.entries)); err != nil {
		m.log.WithError(err).Warn("copy transcript")
		m.status = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("Copied %d entries", len(m.entries))
}

func (m *Model) handleScrollKeys(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyPgUp:
		m.viewport.ScrollPageUp()
	case tea.KeyPgDown:
		m.viewport.ScrollPageDown()
	case tea.KeyCtrlHome:
		m.viewport.GotoTop()
	case tea.KeyCtrlEnd:
		m.viewport.GotoBottom()
	default:
		return false
	}
	return true
}

func renderHeader(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Render("adventure")
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85")).PaddingLeft(2).Render("a text adventure")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		Padding(0, 1).
		Width(maxInt(20, width-2)).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, title, sub))
}

func renderPane(title string, body string, width int, height int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5E6472")).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(maxInt(20, width-2))
	}
	if height > 0 {
		style = style.Height(height)
	}
	content := body
	if strings.TrimSpace(title) != "" {
		titleText := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Render(title)
		content = lipgloss.JoinVertical(lipgloss.Left, titleText, body)
	}
	return style.Render(content)
}

func renderHints(status string, width int) string {
	hint := "Enter submit • ↑/↓ history • PgUp/PgDn scroll • Ctrl+Y copy • Esc quit"
	if status != "" {
		hint = status + " • " + hint
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7D7A85")).
		Padding(0, 1).
		Width(maxInt(20, width)).
		Render(hint)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
