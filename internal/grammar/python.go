package grammar

import (
	"context"

	"grun/internal/lexer"
	"grun/internal/parser"
	"grun/internal/source"
	"grun/internal/token"
)

func init() {
	Register(python{})
}

// python is the bundled Python 3 pair: indentation-aware lexer plus a
// recovering file_input parser.
type python struct{}

func (python) Name() string { return "python" }

func (python) Description() string { return "Python 3 (file_input)" }

func (python) Vocabulary() token.Vocabulary { return lexer.Vocabulary() }

func (python) Tokenize(file *source.File, opts Options) (*token.Stream, error) {
	return tokenizePython(file, opts), nil
}

func (python) Parse(ctx context.Context, file *source.File, tokens *token.Stream, opts Options) (*parser.Result, error) {
	return parser.Parse(ctx, tokens, parser.Options{File: file.ID, Reporter: opts.Reporter})
}

func tokenizePython(file *source.File, opts Options) *token.Stream {
	return lexer.Tokenize(file, lexer.Options{
		Reporter:       opts.Reporter,
		KeepWhitespace: opts.KeepWhitespace,
	})
}
