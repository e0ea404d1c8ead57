package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"grun/internal/diag"
	"grun/internal/source"
	"grun/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: ошибки игнорируем, но продолжаем лексить
	// KeepWhitespace surfaces inline WS tokens on the hidden channel.
	KeepWhitespace bool
}

// errorPrefix marks every diagnostic the lexer emits.
const errorPrefix = "LEXER ERROR: "

func (lx *Lexer) report(code diag.Code, at token.Token, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, lx.spanOf(at), errorPrefix+msg, nil)
}

func (lx *Lexer) spanOf(t token.Token) source.Span {
	start, err := safecast.Conv[uint32](t.Start)
	if err != nil {
		panic(fmt.Errorf("token start overflow: %w", err))
	}
	end := start
	if t.Stop >= t.Start {
		end, err = safecast.Conv[uint32](t.Stop + 1)
		if err != nil {
			panic(fmt.Errorf("token stop overflow: %w", err))
		}
	}
	return source.Span{File: lx.file.ID, Start: start, End: end}
}
