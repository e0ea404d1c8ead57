package driver

import (
	"context"
	"strconv"

	"grun/internal/diag"
	"grun/internal/grammar"
	"grun/internal/parser"
	"grun/internal/trace"
)

// ParseResult is the parser outcome plus its diagnostics.
type ParseResult struct {
	*parser.Result
	Bag *diag.Bag
}

// Parse runs the grammar's entry production over an already tokenized file.
// The stream is rewound first so the parser sees it from index 0.
func Parse(ctx context.Context, g grammar.Grammar, tr *TokenizeResult, cfg Config) (*ParseResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopePhase, "parse")

	bag := diag.NewBag(cfg.MaxDiagnostics)
	tr.Stream.Reset()
	res, err := g.Parse(ctx, tr.File, tr.Stream, grammar.Options{
		Reporter: &tracingReporter{ctx: ctx, fs: tr.FileSet, next: diag.BagReporter{Bag: bag}},
	})
	if err != nil {
		span.End(err.Error())
		return nil, err
	}

	span.WithExtra("errors", strconv.Itoa(res.SyntaxErrors)).
		WithExtra("statements", strconv.Itoa(res.Statements)).
		End("")
	return &ParseResult{Result: res, Bag: bag}, nil
}
