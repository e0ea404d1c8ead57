package parser

import (
	"context"

	"grun/internal/diag"
	"grun/internal/source"
	"grun/internal/token"
)

type Options struct {
	File     source.FileID // для спанов диагностик
	Reporter diag.Reporter // может быть nil, ошибки всё равно считаются
}

// Result is the outcome of parsing one file.
type Result struct {
	SyntaxErrors int // сколько ошибок сообщено
	Statements   int // инструкций верхнего уровня
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks []token.Token // только DEFAULT канал, EOF последним
	pos  int
	opts Options

	errors      int
	errorMode   bool // после ошибки молчим до следующего успешного совпадения
	strayIndent int  // сколько лишних INDENT пропущено; их DEDENT съедаются молча
	statements  int
}

// Parse разбирает весь поток. Скрытые токены игнорируются.
func Parse(ctx context.Context, stream *token.Stream, opts Options) (*Result, error) {
	p := &Parser{
		toks: stream.OnChannel(token.DefaultChannel),
		opts: opts,
	}
	if err := p.parseFileInput(ctx); err != nil {
		return nil, err
	}
	return &Result{SyntaxErrors: p.errors, Statements: p.statements}, nil
}

// parseFileInput: (NEWLINE | stmt)* EOF
func (p *Parser) parseFileInput(ctx context.Context) error {
	for !p.at(token.EOF) {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case p.at(newlineType):
			p.advance()
		case p.canStartStmt():
			p.statements++
			p.parseStmtOrRecover()
		default:
			p.skipStray("statement")
		}
	}
	return nil
}

// parseStmtOrRecover разбирает инструкцию и при ошибке пропускает
// остаток логической строки.
func (p *Parser) parseStmtOrRecover() {
	if !p.parseStmt() {
		p.resyncStmt()
	}
}

// skipStray съедает токен, с которого не может начаться инструкция.
// DEDENT парный к ранее пропущенному INDENT уходит без диагностики.
func (p *Parser) skipStray(expecting string) {
	tok := p.peek()
	switch tok.Type {
	case dedentType:
		if p.strayIndent > 0 {
			p.strayIndent--
			p.skip()
			return
		}
	case indentType:
		p.strayIndent++
	}
	p.reportAt(diag.SynExtraneousInput, tok, "extraneous input "+display(tok)+" expecting "+expecting)
	p.skip()
}

// resyncStmt: восстановление после ошибки: прокручиваем до NEWLINE
// (съедаем его), DEDENT или EOF.
func (p *Parser) resyncStmt() {
	for {
		tok := p.peek()
		switch tok.Type {
		case token.EOF:
			return
		case newlineType:
			p.skip()
			return
		case dedentType:
			if p.strayIndent == 0 {
				return
			}
			p.strayIndent--
		case indentType:
			p.strayIndent++
		}
		p.skip()
	}
}
