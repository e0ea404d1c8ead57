package parser

import (
	"grun/internal/token"
)

// compoundKeywords начинают составные инструкции
var compoundKeywords = map[string]bool{
	"if": true, "while": true, "for": true, "try": true,
	"with": true, "def": true, "class": true, "async": true,
}

// simpleKeywords начинают простые инструкции
var simpleKeywords = map[string]bool{
	"pass": true, "break": true, "continue": true, "return": true,
	"raise": true, "global": true, "nonlocal": true, "del": true,
	"assert": true, "import": true, "from": true, "yield": true,
}

func (p *Parser) canStartStmt() bool {
	tok := p.peek()
	if tok.Type == nameType && (compoundKeywords[tok.Text] || simpleKeywords[tok.Text]) {
		return true
	}
	if isOp(tok, "@") {
		return true
	}
	return p.canStartExpr()
}

// parseStmt: compound_stmt | simple_stmts
func (p *Parser) parseStmt() bool {
	tok := p.peek()
	if isOp(tok, "@") {
		return p.parseDecorated()
	}
	if tok.Type == nameType {
		switch tok.Text {
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "for":
			return p.parseFor()
		case "try":
			return p.parseTry()
		case "with":
			return p.parseWith()
		case "def":
			return p.parseFuncDef()
		case "class":
			return p.parseClassDef()
		case "async":
			return p.parseAsync()
		}
	}
	return p.parseSimpleStmts()
}

// parseSimpleStmts: small_stmt (';' small_stmt)* [';'] NEWLINE
func (p *Parser) parseSimpleStmts() bool {
	if !p.parseSmallStmt() {
		return false
	}
	for p.eatOp(";") {
		if p.at(newlineType) {
			break
		}
		if !p.parseSmallStmt() {
			return false
		}
	}
	return p.expectType(newlineType)
}

func (p *Parser) parseSmallStmt() bool {
	tok := p.peek()
	if tok.Type == nameType {
		switch tok.Text {
		case "pass", "break", "continue":
			p.advance()
			return true
		case "return":
			p.advance()
			if p.canStartExpr() {
				return p.parseStarExpressions()
			}
			return true
		case "raise":
			return p.parseRaise()
		case "global", "nonlocal":
			p.advance()
			return p.parseNameList()
		case "del":
			p.advance()
			return p.parseExprList()
		case "assert":
			p.advance()
			if !p.parseTest() {
				return false
			}
			if p.eatOp(",") {
				return p.parseTest()
			}
			return true
		case "import":
			return p.parseImportName()
		case "from":
			return p.parseImportFrom()
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseRaise() bool {
	p.advance() // raise
	if !p.canStartExpr() {
		return true
	}
	if !p.parseTest() {
		return false
	}
	if p.eatKeyword("from") {
		return p.parseTest()
	}
	return true
}

// parseNameList: NAME (',' NAME)*
func (p *Parser) parseNameList() bool {
	if !p.expectName() {
		return false
	}
	for p.eatOp(",") {
		if !p.expectName() {
			return false
		}
	}
	return true
}

var augAssignOps = []string{"+=", "-=", "*=", "@=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", "**=", "//="}

// parseExprStmt:
//
//	star_expressions (augassign (yield_expr | testlist)
//	                 | ':' test ['=' (yield_expr | star_expressions)]
//	                 | ('=' (yield_expr | star_expressions))*)
func (p *Parser) parseExprStmt() bool {
	if p.atKeyword("yield") {
		return p.parseYieldExpr()
	}
	if !p.canStartExpr() {
		return p.noViable()
	}
	if !p.parseStarExpressions() {
		return false
	}
	switch {
	case p.atOp(augAssignOps...):
		p.advance()
		return p.parseAssignValue()
	case p.atOp(":"):
		p.advance()
		if !p.parseTest() {
			return false
		}
		if p.eatOp("=") {
			return p.parseAssignValue()
		}
		return true
	}
	for p.eatOp("=") {
		if !p.parseAssignValue() {
			return false
		}
	}
	return true
}

func (p *Parser) parseAssignValue() bool {
	if p.atKeyword("yield") {
		return p.parseYieldExpr()
	}
	if !p.canStartExpr() {
		return p.noViable()
	}
	return p.parseStarExpressions()
}

// parseSuite: simple_stmts | NEWLINE INDENT stmt+ DEDENT
func (p *Parser) parseSuite() bool {
	if !p.at(newlineType) {
		if !p.canStartStmt() || p.atCompoundStart() {
			return p.noViable()
		}
		return p.parseSimpleStmts()
	}
	p.advance() // NEWLINE
	if !p.expectType(indentType) {
		return false
	}
	for {
		tok := p.peek()
		switch {
		case tok.Type == token.EOF:
			return p.expectType(dedentType)
		case tok.Type == dedentType && p.strayIndent == 0:
			p.advance()
			return true
		case tok.Type == newlineType:
			p.advance()
		case p.canStartStmt():
			p.parseStmtOrRecover()
		default:
			p.skipStray("statement")
		}
	}
}

func (p *Parser) atCompoundStart() bool {
	tok := p.peek()
	return (tok.Type == nameType && compoundKeywords[tok.Text]) || isOp(tok, "@")
}
