package ui

import (
	"strings"
	"testing"

	"grun/internal/suite"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short.py", 20, "short.py"},
		{"averyveryverylongname.py", 10, "averyve..."},
		{"abcdef", 3, "abc"},
		{"漢字漢字漢字", 7, "漢字..."},
		{"anything", 0, "anything"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.width); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}

func TestProgressModelCounts(t *testing.T) {
	events := make(chan suite.Event)
	m := NewProgressModel("suite", []string{"a.py", "b.py", "c.py"}, events).(*progressModel)

	m.applyEvent(suite.Event{Case: "a.py", Status: suite.StatusRunning})
	m.applyEvent(suite.Event{Case: "a.py", Status: suite.StatusPass})
	m.applyEvent(suite.Event{Case: "b.py", Status: suite.StatusFail, Detail: "exit code 2, want 0"})
	m.applyEvent(suite.Event{Case: "b.py", Status: suite.StatusFail})
	m.applyEvent(suite.Event{Case: "unknown.py", Status: suite.StatusPass})

	if m.finished != 2 || m.failed != 1 {
		t.Fatalf("finished=%d failed=%d", m.finished, m.failed)
	}
	view := m.View()
	if !strings.Contains(view, "suite 2/3, 1 failed") {
		t.Errorf("header missing in view:\n%s", view)
	}
	if !strings.Contains(view, "b.py") || strings.Contains(view, "a.py") {
		t.Errorf("only failing and running cases should be listed:\n%s", view)
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan suite.Event)
	close(events)
	m := NewProgressModel("suite", nil, events).(*progressModel)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	m.Update(msg)
	if !m.done {
		t.Fatal("model should be done")
	}
}
