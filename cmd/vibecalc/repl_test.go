package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgomes/vibecalc/calc"
)

func submit(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.input.SetValue(input)
	return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func press(t *testing.T, m replModel, msg tea.Msg) (replModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func sized(t *testing.T) replModel {
	t.Helper()
	m, _ := press(t, newREPLModel(calc.Config{}), tea.WindowSizeMsg{Width: 100, Height: 60})
	return m
}

func TestQuitCommandsReturnQuit(t *testing.T) {
	for _, input := range []string{":quit", ":q", "exit", "EXIT"} {
		rm, cmd := submit(t, newREPLModel(calc.Config{}), input)

		if !rm.quitting {
			t.Fatalf("%s: quitting flag not set", input)
		}
		if rm.input.Value() != "" {
			t.Fatalf("%s: input not cleared", input)
		}
		if cmd == nil {
			t.Fatalf("%s: expected tea.Quit command", input)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected QuitMsg", input)
		}
	}
}

func TestSubmitRecordsTypedValue(t *testing.T) {
	m := newREPLModel(calc.Config{})
	m, _ = submit(t, m, "(2 + 3) * 4")
	m, _ = submit(t, m, "7 / 2")

	if len(m.entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(m.entries))
	}
	first, second := m.entries[0], m.entries[1]
	if first.outcome != outcomeValue || first.value.Kind() != calc.KindInt || first.value.Int() != 20 {
		t.Fatalf("unexpected int entry %#v", first)
	}
	if second.outcome != outcomeValue || second.value.Kind() != calc.KindFloat || second.value.String() != "3.5" {
		t.Fatalf("unexpected float entry %#v", second)
	}
}

func TestSubmitRecordsCalcErrors(t *testing.T) {
	tests := map[string]calc.ErrorKind{
		"5 / 0":                   calc.KindDivisionByZero,
		"2 & 3":                   calc.KindLexical,
		"(1 + 2":                  calc.KindParsing,
		"9223372036854775807 + 1": calc.KindOverflow,
	}
	for input, kind := range tests {
		m, _ := submit(t, newREPLModel(calc.Config{}), input)
		entry := m.entries[0]
		if entry.outcome != outcomeError {
			t.Fatalf("%q: expected error entry, got %#v", input, entry)
		}
		if calc.KindOf(entry.err) != kind {
			t.Fatalf("%q: expected %s, got %v", input, kind, entry.err)
		}
	}
}

func TestLimitsApplyInsideREPL(t *testing.T) {
	m, _ := submit(t, newREPLModel(calc.Config{StepQuota: 2}), "1 + 2")
	if got := calc.KindOf(m.entries[0].err); got != calc.KindLimit {
		t.Fatalf("expected LimitError, got %v", m.entries[0].err)
	}
}

func TestTreeAndTokenCommands(t *testing.T) {
	m := newREPLModel(calc.Config{})
	m, _ = submit(t, m, ":ast 1 + 2")
	m, _ = submit(t, m, ":tokens 12*3")
	m, _ = submit(t, m, ":T 4")

	if len(m.entries) != 3 {
		t.Fatalf("expected three entries, got %d", len(m.entries))
	}
	if e := m.entries[0]; e.outcome != outcomeNote || !strings.Contains(e.note, "op: PLUS") {
		t.Fatalf("unexpected :ast entry %#v", e)
	}
	if e := m.entries[1]; e.outcome != outcomeNote || e.note != "1:1  INT  12\n1:3  *\n1:4  INT  3\n1:5  EOF" {
		t.Fatalf("unexpected :tokens entry %q", e.note)
	}
	if e := m.entries[2]; !strings.HasPrefix(e.note, "1:1  INT  4") {
		t.Fatalf("expected commands to be case-insensitive, got %#v", e)
	}
}

func TestCommandsRejectMissingOrBadArguments(t *testing.T) {
	tests := map[string]string{
		":ast":      "usage: :ast",
		":tokens":   "usage: :tokens",
		":tokens #": "LexicalError",
		":ast (1":   "ParsingError",
		":bogus":    "unknown command :bogus",
	}
	for input, want := range tests {
		m, cmd := submit(t, newREPLModel(calc.Config{}), input)
		if cmd != nil {
			t.Fatalf("%q: expected no command", input)
		}
		if len(m.entries) != 1 || m.entries[0].outcome != outcomeError {
			t.Fatalf("%q: expected error entry, got %#v", input, m.entries)
		}
		if got := m.entries[0].err.Error(); !strings.Contains(got, want) {
			t.Fatalf("%q: expected %q in %q", input, want, got)
		}
	}
}

func TestHelpAndClearCommands(t *testing.T) {
	m := newREPLModel(calc.Config{})
	m, _ = submit(t, m, "1 + 1")
	m, _ = submit(t, m, ":help")
	if !m.showHelp || !m.help.ShowAll {
		t.Fatalf("expected help panel to be shown")
	}
	if len(m.entries) != 1 {
		t.Fatalf("help should not add a transcript entry, got %d", len(m.entries))
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if m.showHelp {
		t.Fatalf("ctrl+k should toggle help off")
	}

	m, _ = submit(t, m, ":clear")
	if len(m.entries) != 0 {
		t.Fatalf("expected cleared transcript, got %#v", m.entries)
	}
}

func TestRecallWalksSubmittedLines(t *testing.T) {
	m := newREPLModel(calc.Config{})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "" {
		t.Fatalf("recall with no history should be a no-op")
	}

	m, _ = submit(t, m, "1 + 1")
	m, _ = submit(t, m, ":ast 2 * 3")

	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, ":ast 2 * 3"},
		{tea.KeyUp, "1 + 1"},
		{tea.KeyUp, "1 + 1"},
		{tea.KeyDown, ":ast 2 * 3"},
		{tea.KeyDown, ""},
		{tea.KeyDown, ""},
	}
	for i, step := range steps {
		m, _ = press(t, m, tea.KeyMsg{Type: step.key})
		if got := m.input.Value(); got != step.want {
			t.Fatalf("step %d: expected %q, got %q", i, step.want, got)
		}
	}
}

func TestViewShowsValuesAndErrors(t *testing.T) {
	m := sized(t)
	m, _ = submit(t, m, "7 / 2")
	m, _ = submit(t, m, "6 * 7")
	m, _ = submit(t, m, "5 / 0")

	view := m.View()
	for _, want := range []string{
		"depth ∞ · steps ∞",
		"› 7 / 2", "3.5 float",
		"› 6 * 7", "42 int",
		"DivisionByZeroError", "division by zero at 1:3",
		"1 | 5 / 0", "  |   ^",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewShowsCommandPanel(t *testing.T) {
	m := sized(t)
	m, _ = submit(t, m, ":help")
	view := m.View()
	for _, a := range replActions {
		if !strings.Contains(view, a.desc) {
			t.Fatalf("command panel missing %q:\n%s", a.desc, view)
		}
	}
}

func TestViewKeepsNewestEntriesWhenShort(t *testing.T) {
	m, _ := press(t, newREPLModel(calc.Config{}), tea.WindowSizeMsg{Width: 80, Height: 12})
	for _, input := range []string{"1 + 1", "2 + 2", "3 + 3", "4 + 4", "5 + 5"} {
		m, _ = submit(t, m, input)
	}
	view := m.View()
	if !strings.Contains(view, "› 5 + 5") {
		t.Fatalf("newest entry should stay visible:\n%s", view)
	}
	if strings.Contains(view, "› 1 + 1") {
		t.Fatalf("oldest entry should scroll away:\n%s", view)
	}
}

func TestRenderErrorBadges(t *testing.T) {
	if got := renderError(errors.New("usage: :ast <expr>")); !strings.Contains(got, "error") || !strings.Contains(got, "usage") {
		t.Fatalf("unexpected generic error rendering %q", got)
	}

	_, err := calc.Evaluate("2 $")
	got := renderError(err)
	if !strings.Contains(got, "LexicalError") || !strings.Contains(got, "unexpected character '$'") {
		t.Fatalf("unexpected lexical error rendering %q", got)
	}
	if strings.Count(got, "\n") < 2 {
		t.Fatalf("expected code frame below the message, got %q", got)
	}
}

func TestLimitLabel(t *testing.T) {
	if limitLabel(0) != "∞" || limitLabel(-3) != "∞" || limitLabel(64) != "64" {
		t.Fatalf("unexpected limit labels")
	}
	m := newREPLModel(calc.Config{RecursionLimit: 8, StepQuota: 100})
	if got := m.limitsSummary(); got != "depth 8 · steps 100" {
		t.Fatalf("unexpected summary %q", got)
	}
}
