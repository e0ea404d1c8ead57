package parser

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"grun/internal/diag"
	"grun/internal/lexer"
	"grun/internal/source"
	"grun/internal/token"
)

const (
	nameType    = lexer.Name
	numberType  = lexer.Number
	stringType  = lexer.String
	opType      = lexer.Op
	newlineType = lexer.Newline
	indentType  = lexer.Indent
	dedentType  = lexer.Dedent
)

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(t token.Type) bool {
	return p.peek().Type == t
}

// atOp: текущий токен OP с одним из текстов
func (p *Parser) atOp(texts ...string) bool {
	return isOp(p.peek(), texts...)
}

func (p *Parser) atKeyword(kw string) bool {
	return isKeywordTok(p.peek(), kw)
}

// atName: идентификатор, не ключевое слово
func (p *Parser) atName() bool {
	return isIdentifier(p.peek())
}

func isOp(tok token.Token, texts ...string) bool {
	if tok.Type != opType {
		return false
	}
	for _, t := range texts {
		if tok.Text == t {
			return true
		}
	}
	return false
}

func isKeywordTok(tok token.Token, kw string) bool {
	return tok.Type == nameType && tok.Text == kw
}

func isIdentifier(tok token.Token) bool {
	return tok.Type == nameType && !isKeyword(tok.Text)
}

// advance: съедает токен как успешное совпадение и выходит из режима ошибки
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Type != token.EOF {
		p.pos++
	}
	p.errorMode = false
	return tok
}

// skip: съедает токен при восстановлении, режим ошибки не сбрасывается
func (p *Parser) skip() {
	if p.peek().Type != token.EOF {
		p.pos++
	}
}

// eatOp съедает OP с данным текстом, если он есть
func (p *Parser) eatOp(text string) bool {
	if p.atOp(text) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatKeyword(kw string) bool {
	if p.atKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

// expectOp ожидает OP с текстом. Если следующий за текущим токен подходит,
// текущий считается лишним (extraneous) и пропускается.
func (p *Parser) expectOp(text string) bool {
	if p.eatOp(text) {
		return true
	}
	return p.recoverInline(func(t token.Token) bool { return isOp(t, text) }, quote(text))
}

func (p *Parser) expectKeyword(kw string) bool {
	if p.eatKeyword(kw) {
		return true
	}
	return p.recoverInline(func(t token.Token) bool { return isKeywordTok(t, kw) }, quote(kw))
}

func (p *Parser) expectType(typ token.Type) bool {
	if p.at(typ) {
		p.advance()
		return true
	}
	return p.recoverInline(func(t token.Token) bool { return t.Type == typ }, lexer.Vocabulary().SymbolicName(typ))
}

func (p *Parser) expectName() bool {
	if p.atName() {
		p.advance()
		return true
	}
	return p.recoverInline(isIdentifier, "NAME")
}

// recoverInline: удаление одного лишнего токена, иначе mismatched/missing.
func (p *Parser) recoverInline(match func(token.Token) bool, expecting string) bool {
	cur := p.peek()
	if cur.Type != token.EOF && cur.Type != newlineType && match(p.peekAt(1)) {
		p.reportAt(diag.SynExtraneousInput, cur, "extraneous input "+display(cur)+" expecting "+expecting)
		p.skip()
		p.advance()
		return true
	}
	if cur.Type == newlineType || cur.Type == token.EOF {
		p.reportAt(diag.SynMissingToken, cur, "missing "+expecting+" at "+display(cur))
		return false
	}
	p.reportAt(diag.SynMismatchedInput, cur, "mismatched input "+display(cur)+" expecting "+expecting)
	return false
}

// noViable сообщает, что ни одна альтернатива не подошла, и возвращает false.
func (p *Parser) noViable() bool {
	cur := p.peek()
	p.reportAt(diag.SynNoViableAlt, cur, "no viable alternative at input "+display(cur))
	return false
}

func (p *Parser) reportAt(code diag.Code, tok token.Token, msg string) {
	if p.errorMode {
		return
	}
	p.errorMode = true
	p.errors++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, p.spanOf(tok), msg, nil)
	}
}

func (p *Parser) spanOf(tok token.Token) source.Span {
	start, err := safecast.Conv[uint32](tok.Start)
	if err != nil {
		panic(fmt.Errorf("token start overflow: %w", err))
	}
	end := start
	if tok.Stop >= tok.Start {
		if end, err = safecast.Conv[uint32](tok.Stop + 1); err != nil {
			panic(fmt.Errorf("token stop overflow: %w", err))
		}
	}
	return source.Span{File: p.opts.File, Start: start, End: end}
}

var displayEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// display: текст токена для сообщения об ошибке
func display(tok token.Token) string {
	if tok.Type == token.EOF {
		return "'<EOF>'"
	}
	return "'" + displayEscaper.Replace(tok.Text) + "'"
}

func quote(s string) string {
	return "'" + s + "'"
}
