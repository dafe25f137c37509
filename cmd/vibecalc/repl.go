package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/vibecalc/calc"
)

var (
	accentColor = lipgloss.Color("#3B82F6")
	mutedColor  = lipgloss.Color("#6B7280")
	keyColor    = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	keyStyle    = lipgloss.NewStyle().Foreground(keyColor)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")).MarginLeft(2)

	valueStyles = map[calc.ValueKind]lipgloss.Style{
		calc.KindInt:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		calc.KindFloat: lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true),
	}

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	errorBadges = map[calc.ErrorKind]lipgloss.Style{
		calc.KindLexical:        badgeStyle.Background(lipgloss.Color("#B45309")),
		calc.KindParsing:        badgeStyle.Background(lipgloss.Color("#7C3AED")),
		calc.KindDivisionByZero: badgeStyle.Background(lipgloss.Color("#DC2626")),
		calc.KindOverflow:       badgeStyle.Background(lipgloss.Color("#BE185D")),
		calc.KindLimit:          badgeStyle.Background(lipgloss.Color("#475569")),
	}
	otherBadge = badgeStyle.Background(lipgloss.Color("#EF4444"))

	// Code frames hang under the error line behind a thick left rule.
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#EF4444")).
			PaddingLeft(1).
			MarginLeft(2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type outcome int

const (
	outcomeValue outcome = iota
	outcomeError
	outcomeNote
)

// historyEntry is one line of the transcript. outcome selects which of
// value, err or note is set.
type historyEntry struct {
	input   string
	outcome outcome
	value   calc.Value
	err     error
	note    string
}

type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Submit key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Help, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Submit}, {k.Clear, k.Help, k.Quit}}
}

var keys = keyMap{
	Prev:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "older line")),
	Next:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "newer line")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Clear:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Help:   key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "commands")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
}

// replAction is a colon command. run returns text for the transcript, an
// error to display, or neither.
type replAction struct {
	names []string
	arg   string
	desc  string
	run   func(m *replModel, arg string) (string, error)
}

var replActions = []replAction{
	{names: []string{":ast", ":a"}, arg: "<expr>", desc: "show the parse tree", run: (*replModel).showTree},
	{names: []string{":tokens", ":t"}, arg: "<expr>", desc: "show the token stream", run: (*replModel).showTokens},
	{names: []string{":clear", ":c"}, desc: "clear the transcript", run: (*replModel).clear},
	{names: []string{":help", ":h"}, desc: "toggle this panel", run: (*replModel).toggleHelp},
	{names: []string{":quit", ":q", "exit"}, desc: "leave the REPL", run: (*replModel).quit},
}

// lookupAction resolves the command word of line. ok is false for plain
// expressions; a colon word with no matching action yields an error.
func lookupAction(line string) (action *replAction, arg string, ok bool, err error) {
	word, rest, _ := strings.Cut(line, " ")
	word = strings.ToLower(word)
	for i := range replActions {
		for _, name := range replActions[i].names {
			if name == word {
				return &replActions[i], strings.TrimSpace(rest), true, nil
			}
		}
	}
	if strings.HasPrefix(word, ":") {
		return nil, "", true, fmt.Errorf("unknown command %s (try :help)", word)
	}
	return nil, "", false, nil
}

type replModel struct {
	input  textinput.Model
	help   help.Model
	engine *calc.Engine

	entries []historyEntry
	// submitted holds every entered line, oldest first. recallAt indexes
	// it while browsing and equals len(submitted) otherwise.
	submitted []string
	recallAt  int

	width    int
	height   int
	showHelp bool
	quitting bool
	ready    bool
}

func newREPLModel(cfg calc.Config) replModel {
	ti := textinput.New()
	ti.Prompt = "calc> "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "2 * (3 + 4), or :help"
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Focus()

	return replModel{
		input:  ti,
		help:   help.New(),
		engine: calc.NewEngine(cfg),
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-2, 10)
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Clear):
			m.entries = nil
			return m, nil
		case key.Matches(msg, keys.Help):
			m.toggleHelp("")
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, keys.Next):
			m.recall(1)
			return m, nil
		case key.Matches(msg, keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}
	m.submitted = append(m.submitted, line)
	m.recallAt = len(m.submitted)

	action, arg, isCommand, err := lookupAction(line)
	switch {
	case err != nil:
		m.entries = append(m.entries, historyEntry{input: line, outcome: outcomeError, err: err})
	case isCommand:
		note, err := action.run(&m, arg)
		if m.quitting {
			return m, tea.Quit
		}
		if err != nil {
			m.entries = append(m.entries, historyEntry{input: line, outcome: outcomeError, err: err})
		} else if note != "" {
			m.entries = append(m.entries, historyEntry{input: line, outcome: outcomeNote, note: note})
		}
	default:
		m.entries = append(m.entries, m.evaluate(line))
	}
	return m, nil
}

// recall moves through previously submitted lines. Moving past the newest
// line leaves an empty prompt.
func (m *replModel) recall(delta int) {
	if len(m.submitted) == 0 {
		return
	}
	m.recallAt = max(0, min(m.recallAt+delta, len(m.submitted)))
	if m.recallAt == len(m.submitted) {
		m.input.SetValue("")
	} else {
		m.input.SetValue(m.submitted[m.recallAt])
	}
	m.input.CursorEnd()
}

func (m replModel) evaluate(line string) historyEntry {
	value, err := m.engine.Evaluate(line)
	if err != nil {
		return historyEntry{input: line, outcome: outcomeError, err: err}
	}
	return historyEntry{input: line, outcome: outcomeValue, value: value}
}

func (m *replModel) showTree(arg string) (string, error) {
	if arg == "" {
		return "", errors.New("usage: :ast <expr>")
	}
	expr, err := m.engine.Compile(arg)
	if err != nil {
		return "", err
	}
	return calc.Dump(expr.Root()), nil
}

func (m *replModel) showTokens(arg string) (string, error) {
	if arg == "" {
		return "", errors.New("usage: :tokens <expr>")
	}
	tokens, err := calc.Tokenize(arg)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(tokens))
	for i, tok := range tokens {
		lines[i] = strings.ReplaceAll(formatToken(tok), "\t", "  ")
	}
	return strings.Join(lines, "\n"), nil
}

func (m *replModel) clear(string) (string, error) {
	m.entries = nil
	return "", nil
}

func (m *replModel) toggleHelp(string) (string, error) {
	m.showHelp = !m.showHelp
	m.help.ShowAll = m.showHelp
	return "", nil
}

func (m *replModel) quit(string) (string, error) {
	m.quitting = true
	return "", nil
}

func (m replModel) View() string {
	if m.quitting {
		return mutedStyle.Render("bye") + "\n"
	}
	if !m.ready {
		return "starting..."
	}

	header := titleStyle.Render("vibecalc") + "  " + mutedStyle.Render(m.limitsSummary())

	var panel string
	if m.showHelp {
		panel = renderCommandPanel()
	}
	footer := m.help.View(keys)

	fixed := lipgloss.Height(header) + 2 + lipgloss.Height(footer) + 2
	if panel != "" {
		fixed += lipgloss.Height(panel)
	}
	transcript := lastLines(m.renderTranscript(), m.height-fixed)

	parts := []string{header, ""}
	if transcript != "" {
		parts = append(parts, transcript)
	}
	if panel != "" {
		parts = append(parts, panel)
	}
	parts = append(parts, m.input.View(), "", footer)
	return strings.Join(parts, "\n")
}

func (m replModel) limitsSummary() string {
	cfg := m.engine.Config()
	return fmt.Sprintf("depth %s · steps %s", limitLabel(cfg.RecursionLimit), limitLabel(cfg.StepQuota))
}

func limitLabel(n int) string {
	if n <= 0 {
		return "∞"
	}
	return strconv.Itoa(n)
}

func (m replModel) renderTranscript() string {
	blocks := make([]string, len(m.entries))
	for i, entry := range m.entries {
		blocks[i] = renderEntry(entry)
	}
	return strings.Join(blocks, "\n")
}

func renderEntry(e historyEntry) string {
	head := mutedStyle.Render("› ") + e.input
	switch e.outcome {
	case outcomeValue:
		style := valueStyles[e.value.Kind()]
		return head + "\n  " + style.Render(e.value.String()) + " " + mutedStyle.Render(e.value.Kind().String())
	case outcomeError:
		return head + "\n" + renderError(e.err)
	default:
		return head + "\n" + noteStyle.Render(e.note)
	}
}

// renderError shows a calc.Error as a kind badge and message with its code
// frame underneath. Other errors get a generic badge.
func renderError(err error) string {
	var calcErr *calc.Error
	if !errors.As(err, &calcErr) {
		return "  " + otherBadge.Render("error") + " " + err.Error()
	}
	badge, ok := errorBadges[calcErr.Kind]
	if !ok {
		badge = otherBadge
	}
	line := "  " + badge.Render(string(calcErr.Kind)) + " " + calcErr.Message
	if calcErr.Pos.Line > 0 {
		line += mutedStyle.Render(fmt.Sprintf(" at %d:%d", calcErr.Pos.Line, calcErr.Pos.Column))
	}
	if calcErr.CodeFrame == "" {
		return line
	}
	return line + "\n" + frameStyle.Render(calcErr.CodeFrame)
}

func renderCommandPanel() string {
	rows := []string{titleStyle.Render("Commands")}
	for _, a := range replActions {
		usage := a.names[0]
		if a.arg != "" {
			usage += " " + a.arg
		}
		rows = append(rows, keyStyle.Render(fmt.Sprintf("%-16s", usage))+mutedStyle.Render(a.desc))
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

// lastLines keeps the final n lines of s.
func lastLines(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

func runREPL(cfg calc.Config) error {
	p := tea.NewProgram(newREPLModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
