package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"grun/internal/diag"
	"grun/internal/lexer"
	"grun/internal/source"
)

func parseSource(t *testing.T, input string) (*Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", input)
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	stream := lexer.Tokenize(file, lexer.Options{})
	res, err := Parse(context.Background(), stream, Options{File: fileID, Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return res, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func expectErrors(t *testing.T, input string, want int) *diag.Bag {
	t.Helper()
	res, bag := parseSource(t, input)
	if res.SyntaxErrors != want {
		t.Fatalf("input %q: expected %d syntax errors, got %d: %s", input, want, res.SyntaxErrors, diagnosticsSummary(bag))
	}
	if bag.Len() != want {
		t.Fatalf("input %q: reported %d diagnostics for %d errors: %s", input, bag.Len(), want, diagnosticsSummary(bag))
	}
	return bag
}
