package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decision is the user's answer to a rename prompt
type Decision int

const (
	DecisionYes Decision = iota
	DecisionNo
	DecisionQuit
)

func (d Decision) String() string {
	switch d {
	case DecisionYes:
		return "yes"
	case DecisionNo:
		return "no"
	case DecisionQuit:
		return "quit"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Approval is a parsed prompt answer. Year is set when the user typed a
// year instead of y/n/q; it replaces the looked-up year.
type Approval struct {
	Decision Decision
	Year     string
}

// Approver asks whether oldName should become newName. Approve returns
// ctx.Err() when ctx is cancelled while waiting for an answer.
type Approver interface {
	Approve(ctx context.Context, oldName, newName string) (Approval, error)
}

const promptHelp = "Please enter 'y' for yes, 'n' for no, 'q' to quit, or a 4-digit year"

// ParseResponse interprets one line of prompt input
func ParseResponse(s string) (Approval, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "y":
		return Approval{Decision: DecisionYes}, true
	case "n":
		return Approval{Decision: DecisionNo}, true
	case "q":
		return Approval{Decision: DecisionQuit}, true
	}

	if isYear(s) {
		return Approval{Decision: DecisionYes, Year: s}, true
	}
	return Approval{}, false
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// LinePrompter asks on out and reads answers line by line from in.
// It is used when stdin is not a terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer

	// read still in flight after a cancelled Approve
	pending chan lineRead
}

type lineRead struct {
	line string
	err  error
}

// NewLinePrompter creates a prompter over the given streams
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Approve repeats the prompt until a valid answer is read. End of input
// counts as quit.
func (p *LinePrompter) Approve(ctx context.Context, oldName, newName string) (Approval, error) {
	for {
		fmt.Fprintf(p.out, "\nRename:\n  From: %s\n  To: %s\nApprove? (y/n/q) or enter year: ", oldName, newName)

		line, err := p.readLine(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			fmt.Fprintln(p.out)
			return Approval{}, err
		}
		if approval, ok := ParseResponse(line); ok {
			return approval, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out)
				return Approval{Decision: DecisionQuit}, nil
			}
			return Approval{}, fmt.Errorf("failed to read response: %w", err)
		}

		fmt.Fprintln(p.out, promptHelp)
	}
}

// readLine waits for the next line or for ctx. A read abandoned on cancel
// is picked up by the next call.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if p.pending == nil {
		p.pending = make(chan lineRead, 1)
		go func(ch chan<- lineRead) {
			line, err := p.in.ReadString('\n')
			ch <- lineRead{line: line, err: err}
		}(p.pending)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.pending:
		p.pending = nil
		return r.line, r.err
	}
}
