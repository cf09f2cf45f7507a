package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		input    string
		wantOK   bool
		decision Decision
		year     string
	}{
		{"y", true, DecisionYes, ""},
		{"Y", true, DecisionYes, ""},
		{" n \n", true, DecisionNo, ""},
		{"q", true, DecisionQuit, ""},
		{"Q\n", true, DecisionQuit, ""},
		{"1999", true, DecisionYes, "1999"},
		{"2010\n", true, DecisionYes, "2010"},
		{"yes", false, 0, ""},
		{"199", false, 0, ""},
		{"19999", false, 0, ""},
		{"19a9", false, 0, ""},
		{"", false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			got, ok := ParseResponse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseResponse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Decision != tt.decision || got.Year != tt.year {
				t.Errorf("ParseResponse(%q) = %+v, want decision %v year %q", tt.input, got, tt.decision, tt.year)
			}
		})
	}
}

func TestLinePrompter_RepeatsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("maybe\nyes please\n2004\n"), &out)

	got, err := p.Approve(context.Background(), "Foo.mkv", "Foo.(2003).mkv")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got.Decision != DecisionYes || got.Year != "2004" {
		t.Errorf("expected manual year 2004, got %+v", got)
	}

	if n := strings.Count(out.String(), "Approve? (y/n/q) or enter year:"); n != 3 {
		t.Errorf("expected prompt to be shown 3 times, got %d", n)
	}
	if n := strings.Count(out.String(), promptHelp); n != 2 {
		t.Errorf("expected help line twice, got %d", n)
	}
	if !strings.Contains(out.String(), "From: Foo.mkv") || !strings.Contains(out.String(), "To: Foo.(2003).mkv") {
		t.Errorf("prompt missing file names:\n%s", out.String())
	}
}

func TestLinePrompter_SequentialAnswers(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("n\ny\n"), &out)

	first, err := p.Approve(context.Background(), "a.mkv", "a.(2000).mkv")
	if err != nil || first.Decision != DecisionNo {
		t.Fatalf("expected no, got %+v (%v)", first, err)
	}

	second, err := p.Approve(context.Background(), "b.mkv", "b.(2000).mkv")
	if err != nil || second.Decision != DecisionYes {
		t.Fatalf("expected yes, got %+v (%v)", second, err)
	}
}

func TestLinePrompter_EOFQuits(t *testing.T) {
	var out bytes.Buffer

	p := NewLinePrompter(strings.NewReader(""), &out)
	got, err := p.Approve(context.Background(), "a.mkv", "a.(2000).mkv")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got.Decision != DecisionQuit {
		t.Errorf("expected quit on EOF, got %v", got.Decision)
	}

	// A final answer without trailing newline is still honoured
	p = NewLinePrompter(strings.NewReader("y"), &out)
	got, err = p.Approve(context.Background(), "a.mkv", "a.(2000).mkv")
	if err != nil || got.Decision != DecisionYes {
		t.Errorf("expected yes from unterminated line, got %+v (%v)", got, err)
	}
}

func TestLinePrompter_CancelWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	p := NewLinePrompter(pr, &out)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := p.Approve(ctx, "a.mkv", "a.(2000).mkv")
		errCh <- err
	}()

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// The abandoned read still delivers the next line
	go pw.Write([]byte("y\n"))
	got, err := p.Approve(context.Background(), "b.mkv", "b.(2000).mkv")
	if err != nil || got.Decision != DecisionYes {
		t.Errorf("expected yes after cancel, got %+v (%v)", got, err)
	}
}
