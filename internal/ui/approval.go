package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ApprovalModel is the bubbletea model behind TeaPrompter
type ApprovalModel struct {
	oldName  string
	newName  string
	input    textinput.Model
	invalid  bool
	done     bool
	approval Approval
}

// NewApprovalModel creates a focused prompt for a single rename
func NewApprovalModel(oldName, newName string) ApprovalModel {
	ti := textinput.New()
	ti.Placeholder = "y / n / q / year"
	ti.CharLimit = 8
	ti.Width = 20
	ti.Focus()

	return ApprovalModel{
		oldName: oldName,
		newName: newName,
		input:   ti,
	}
}

// Init starts the cursor blink
func (m ApprovalModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input
func (m ApprovalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.approval = Approval{Decision: DecisionQuit}
			m.done = true
			return m, tea.Quit

		case tea.KeyEnter:
			approval, ok := ParseResponse(m.input.Value())
			if !ok {
				m.invalid = true
				m.input.SetValue("")
				return m, nil
			}
			m.approval = approval
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m ApprovalModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Rename") + "\n")
	b.WriteString("  From: " + MutedStyle.Render(m.oldName) + "\n")
	b.WriteString("  To:   " + HighlightStyle.Render(m.newName) + "\n")

	if m.done {
		answer := m.approval.Decision.String()
		if m.approval.Year != "" {
			answer = "year " + m.approval.Year
		}
		b.WriteString("  " + MutedStyle.Render("→ "+answer) + "\n")
		return b.String()
	}

	b.WriteString("Approve? " + m.input.View() + "\n")
	if m.invalid {
		b.WriteString(ErrorStyle.Render(promptHelp) + "\n")
	}
	b.WriteString(FormatKeybinding("y", "rename") + "  " +
		FormatKeybinding("n", "skip") + "  " +
		FormatKeybinding("q", "quit") + "  " +
		FormatKeybinding("1999", "use year") + "\n")

	return b.String()
}

// Approval returns the answer once the user has submitted one
func (m ApprovalModel) Approval() (Approval, bool) {
	return m.approval, m.done
}

// TeaPrompter asks for approval with an inline bubbletea prompt.
// It needs a terminal on in.
type TeaPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewTeaPrompter creates a terminal prompter
func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out}
}

// Approve runs one prompt program and returns its answer
func (p *TeaPrompter) Approve(ctx context.Context, oldName, newName string) (Approval, error) {
	program := tea.NewProgram(
		NewApprovalModel(oldName, newName),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return Approval{}, ctx.Err()
	}
	if err != nil {
		return Approval{}, fmt.Errorf("approval prompt failed: %w", err)
	}

	m, ok := final.(ApprovalModel)
	if !ok {
		return Approval{Decision: DecisionQuit}, nil
	}
	approval, done := m.Approval()
	if !done {
		return Approval{Decision: DecisionQuit}, nil
	}
	return approval, nil
}
