package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("tokenize")
	tm.End(lex, "12 tokens")
	parse := tm.Begin("parse")
	tm.End(parse, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "tokenize" || rep.Phases[1].Name != "parse" {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Fatalf("total %f below phase %f", rep.TotalMS, rep.Phases[0].DurationMS)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "// 12 tokens") || !strings.Contains(sum, "total") {
		t.Fatalf("summary:\n%s", sum)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", rep)
	}
}
