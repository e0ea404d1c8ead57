package driver

import (
	"context"
	"fmt"
	"strconv"

	"grun/internal/diag"
	"grun/internal/grammar"
	"grun/internal/source"
	"grun/internal/token"
	"grun/internal/trace"
)

// TokenizeResult holds everything the later phases need.
type TokenizeResult struct {
	FileSet     *source.FileSet
	File        *source.File
	Stream      *token.Stream
	Bag         *diag.Bag
	LexerErrors int
}

// Tokenize loads path, decodes it and materializes the whole token stream.
// Lexer diagnostics land in the returned Bag.
func Tokenize(ctx context.Context, g grammar.Grammar, path string, cfg Config) (*TokenizeResult, error) {
	cfg = cfg.withDefaults()
	ctx, span := trace.Start(ctx, trace.ScopePhase, "tokenize")

	fs := source.NewFileSet()
	fileID, err := fs.Load(path, cfg.Encoding)
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(cfg.MaxDiagnostics)
	counter := diag.NewCountingReporter(&tracingReporter{ctx: ctx, fs: fs, next: diag.BagReporter{Bag: bag}})
	stream, err := g.Tokenize(file, grammar.Options{
		Reporter:       counter,
		KeepWhitespace: cfg.KeepWhitespace,
	})
	if err != nil {
		span.End(err.Error())
		return nil, fmt.Errorf("%s: %w", g.Name(), err)
	}
	stream.Fill()

	span.WithExtra("tokens", strconv.Itoa(stream.Len())).
		WithExtra("errors", strconv.Itoa(counter.Errors())).
		End("")
	return &TokenizeResult{
		FileSet:     fs,
		File:        file,
		Stream:      stream,
		Bag:         bag,
		LexerErrors: counter.Errors(),
	}, nil
}

// tracingReporter mirrors every diagnostic as a debug-level trace point.
type tracingReporter struct {
	ctx  context.Context
	fs   *source.FileSet
	next diag.Reporter
}

func (r *tracingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if t := trace.FromContext(r.ctx); t.Enabled() {
		start, _ := r.fs.Resolve(primary)
		detail := fmt.Sprintf("%s %d:%d %s", sev, start.Line, start.Col, msg)
		trace.Point(t, trace.ScopeDetail, code.ID(), detail, trace.CurrentSpan(r.ctx).SpanID)
	}
	r.next.Report(code, sev, primary, msg, notes)
}
