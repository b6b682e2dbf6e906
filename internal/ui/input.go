package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
)

// LineReader reads chat input with command completion and an in-memory
// history navigated with the arrow keys.
type LineReader struct {
	history []string
}

func NewLineReader() *LineReader {
	return &LineReader{}
}

// Read shows prompt and returns the entered line. ok is false when the user
// pressed Ctrl+C or Ctrl+D.
func (r *LineReader) Read(prompt string) (line string, ok bool) {
	finalModel, err := tea.NewProgram(newInputModel(prompt, r.history)).Run()
	if err != nil {
		return "", false
	}
	m := finalModel.(inputModel)
	if m.cancelled {
		return "", false
	}
	line = strings.TrimSpace(m.textInput.Value())
	r.remember(line)
	return line, true
}

func (r *LineReader) remember(line string) {
	if line == "" {
		return
	}
	if n := len(r.history); n > 0 && r.history[n-1] == line {
		return
	}
	r.history = append(r.history, line)
}

type inputModel struct {
	textInput textinput.Model
	history   []string
	// cursor indexes history; len(history) means the line being typed.
	cursor    int
	draft     string
	cancelled bool
}

func newInputModel(prompt string, history []string) inputModel {
	ti := textinput.New()
	ti.Prompt = pterm.Bold.Sprint(pterm.Cyan(prompt))
	ti.Focus()
	ti.SetSuggestions(CommandNames())
	ti.ShowSuggestions = true
	return inputModel{textInput: ti, history: history, cursor: len(history)}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *inputModel) recall(step int) {
	next := m.cursor + step
	if next < 0 || next > len(m.history) {
		return
	}
	if m.cursor == len(m.history) {
		m.draft = m.textInput.Value()
	}
	m.cursor = next
	if next == len(m.history) {
		m.textInput.SetValue(m.draft)
	} else {
		m.textInput.SetValue(m.history[next])
	}
	m.textInput.CursorEnd()
}

func (m inputModel) View() string {
	return m.textInput.View()
}

func ConfirmYesNo(question string) bool {
	return confirm(os.Stdin, os.Stdout, question)
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	s := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s [Y/n]: ", pterm.Bold.Sprint(question))
		if !s.Scan() {
			return false
		}
		if answer, ok := parseYesNo(s.Text()); ok {
			return answer
		}
	}
}

func parseYesNo(input string) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

func IsExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit", "q", "/exit", "/quit":
		return true
	}
	return false
}
