package diag

import "grun/internal/source"

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), CountingReporter (считает ошибки).
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReportError is a shortcut for SevError diagnostics without notes.
func ReportError(r Reporter, code Code, primary source.Span, msg string) {
	if r == nil {
		return
	}
	r.Report(code, SevError, primary, msg, nil)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// CountingReporter forwards to Next and keeps exact error counts even when
// Next drops diagnostics (a full Bag, for instance).
type CountingReporter struct {
	Next   Reporter
	errors int
	syntax int
}

func NewCountingReporter(next Reporter) *CountingReporter {
	return &CountingReporter{Next: next}
}

func (r *CountingReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if sev >= SevError {
		r.errors++
		if code.IsSyntax() {
			r.syntax++
		}
	}
	if r.Next != nil {
		r.Next.Report(code, sev, primary, msg, notes)
	}
}

// Errors returns the number of SevError diagnostics seen.
func (r *CountingReporter) Errors() int { return r.errors }

// SyntaxErrors counts only lexical and syntactic errors.
func (r *CountingReporter) SyntaxErrors() int { return r.syntax }

// Reset zeroes both counters.
func (r *CountingReporter) Reset() {
	r.errors = 0
	r.syntax = 0
}
