package ui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nomadcxx/yearstamp/internal/ui"
)

func typeText(t *testing.T, m ui.ApprovalModel, text string) ui.ApprovalModel {
	t.Helper()
	ret, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return ret.(ui.ApprovalModel)
}

func TestApprovalModelAcceptsYes(t *testing.T) {
	m := ui.NewApprovalModel("Foo.Bar.mkv", "Foo.Bar.(2010).mkv")

	if !strings.Contains(m.View(), "Foo.Bar.(2010).mkv") {
		t.Fatalf("view should show the proposed name, got:\n%s", m.View())
	}

	m = typeText(t, m, "y")
	ret, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = ret.(ui.ApprovalModel)

	approval, done := m.Approval()
	if !done {
		t.Fatal("expected prompt to be done after enter")
	}
	if approval.Decision != ui.DecisionYes || approval.Year != "" {
		t.Errorf("expected plain yes, got %+v", approval)
	}
	if cmd == nil {
		t.Fatal("expected quit command after a valid answer")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from returned command")
	}
}

func TestApprovalModelManualYear(t *testing.T) {
	m := ui.NewApprovalModel("Foo.mkv", "Foo.(2003).mkv")
	m = typeText(t, m, "1987")

	ret, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = ret.(ui.ApprovalModel)

	approval, done := m.Approval()
	if !done || approval.Year != "1987" {
		t.Fatalf("expected manual year 1987, got %+v (done=%v)", approval, done)
	}
	if !strings.Contains(m.View(), "year 1987") {
		t.Errorf("final view should echo the answer, got:\n%s", m.View())
	}
}

func TestApprovalModelRejectsInvalidInput(t *testing.T) {
	m := ui.NewApprovalModel("Foo.mkv", "Foo.(2003).mkv")
	m = typeText(t, m, "maybe")

	ret, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = ret.(ui.ApprovalModel)

	if _, done := m.Approval(); done {
		t.Fatal("invalid input must not finish the prompt")
	}
	if cmd != nil {
		t.Error("invalid input must not quit the program")
	}
	if !strings.Contains(m.View(), "4-digit year") {
		t.Errorf("expected help text in view, got:\n%s", m.View())
	}

	// Prompt repeats and accepts a valid answer afterwards
	m = typeText(t, m, "n")
	ret, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = ret.(ui.ApprovalModel)
	if approval, done := m.Approval(); !done || approval.Decision != ui.DecisionNo {
		t.Errorf("expected no after retry, got %+v (done=%v)", approval, done)
	}
}

func TestApprovalModelCtrlCQuits(t *testing.T) {
	m := ui.NewApprovalModel("Foo.mkv", "Foo.(2003).mkv")

	ret, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = ret.(ui.ApprovalModel)

	approval, done := m.Approval()
	if !done || approval.Decision != ui.DecisionQuit {
		t.Errorf("expected quit on ctrl+c, got %+v (done=%v)", approval, done)
	}
}
