package grammar

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"
	"go.starlark.net/syntax"

	"grun/internal/diag"
	"grun/internal/lexer"
	"grun/internal/parser"
	"grun/internal/source"
	"grun/internal/token"
)

func init() {
	Register(starlark{})
}

// starlark dumps tokens with the Python lexer and checks the file with the
// go.starlark.net parser. That parser stops at the first error, so a run
// reports at most one.
type starlark struct{}

var starlarkOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

func (starlark) Name() string { return "starlark" }

func (starlark) Description() string { return "Starlark (go.starlark.net parser, Python tokens)" }

func (starlark) Vocabulary() token.Vocabulary { return lexer.Vocabulary() }

func (starlark) Tokenize(file *source.File, opts Options) (*token.Stream, error) {
	return tokenizePython(file, opts), nil
}

func (starlark) Parse(ctx context.Context, file *source.File, _ *token.Stream, opts Options) (*parser.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := starlarkOptions.Parse(file.Path, string(file.Text), syntax.RetainComments)
	if err == nil {
		return &parser.Result{Statements: len(f.Stmts)}, nil
	}
	var serr syntax.Error
	if !errors.As(err, &serr) {
		return nil, fmt.Errorf("starlark: %w", err)
	}
	span := starlarkSpan(file, serr.Pos)
	diag.ReportError(opts.Reporter, diag.SynForeignGrammar, span, serr.Msg)
	return &parser.Result{SyntaxErrors: 1}, nil
}

// starlarkSpan maps a starlark position (1-based line and column) onto an
// empty span in file.
func starlarkSpan(file *source.File, pos syntax.Position) source.Span {
	line, err := safecast.Conv[uint32](max(pos.Line, 1))
	if err != nil {
		line = 1
	}
	col, err := safecast.Conv[uint32](max(pos.Col-1, 0))
	if err != nil {
		col = 0
	}
	off := file.Offset(source.LineCol{Line: line, Col: col})
	return source.Span{File: file.ID, Start: off, End: off}
}
