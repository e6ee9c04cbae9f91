// Package tui implements the interactive clarification prompt using
// bubbletea. When stdin is not a terminal it falls back to a plain
// line-oriented prompt so piped runs still work.
package tui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driving/tui/styles"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driving"
)

// Ensure Clarifier implements the interface.
var _ driving.Clarifier = (*Clarifier)(nil)

// Clarifier gathers clarification answers from the user's terminal.
type Clarifier struct {
	styles *styles.Styles
}

// NewClarifier creates a terminal clarifier.
func NewClarifier() *Clarifier {
	return &Clarifier{
		styles: styles.DefaultStyles(),
	}
}

// Ask presents the open questions and returns the user's answer.
// An empty answer, or Esc, means proceed with defaults.
func (c *Clarifier) Ask(ctx context.Context, questions []string) (string, bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return c.askPlain(ctx, questions)
	}

	m := newPromptModel(questions, c.styles)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("clarification prompt: %w", err)
	}

	result, ok := final.(promptModel)
	if !ok || result.cancelled {
		return "", false, context.Canceled
	}
	return result.answer, result.proceed, nil
}

// askPlain reads one answer line from stdin without any TUI.
func (c *Clarifier) askPlain(ctx context.Context, questions []string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	fmt.Fprintln(os.Stderr, "The request needs clarification:")
	for i, q := range questions {
		fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, q)
	}
	fmt.Fprint(os.Stderr, "Answer (empty to proceed with defaults): ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		// EOF on a piped stdin means no answer is coming.
		return "", true, nil
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return "", true, nil
	}
	return answer, false, nil
}

// promptModel is the bubbletea model for one clarification round.
type promptModel struct {
	questions []string
	input     textinput.Model
	styles    *styles.Styles

	answer    string
	proceed   bool
	cancelled bool
}

func newPromptModel(questions []string, s *styles.Styles) promptModel {
	ti := textinput.New()
	ti.Placeholder = "Type an answer, or press Enter to proceed with defaults"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 70

	return promptModel{
		questions: questions,
		input:     ti,
		styles:    s,
	}
}

// Init initialises the prompt.
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.answer = strings.TrimSpace(m.input.Value())
			m.proceed = m.answer == ""
			return m, tea.Quit
		case tea.KeyEsc:
			m.proceed = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m promptModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("The request needs clarification"))
	b.WriteString("\n\n")
	for i, q := range m.questions {
		b.WriteString(m.styles.Question.Render(fmt.Sprintf("%d. %s", i+1, q)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.InputField.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter: submit · esc: proceed with defaults · ctrl+c: abort"))
	b.WriteString("\n")

	return b.String()
}
