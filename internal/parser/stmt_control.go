package parser

import (
	"grun/internal/token"
)

// parseIf: 'if' named_expr ':' suite ('elif' named_expr ':' suite)* ['else' ':' suite]
func (p *Parser) parseIf() bool {
	p.advance() // if
	if !p.parseCondSuite() {
		return false
	}
	for p.eatKeyword("elif") {
		if !p.parseCondSuite() {
			return false
		}
	}
	return p.parseElse()
}

// parseWhile: 'while' named_expr ':' suite ['else' ':' suite]
func (p *Parser) parseWhile() bool {
	p.advance() // while
	return p.parseCondSuite() && p.parseElse()
}

// parseFor: 'for' exprlist 'in' star_expressions ':' suite ['else' ':' suite]
func (p *Parser) parseFor() bool {
	p.advance() // for
	if !p.parseExprList() {
		return false
	}
	if !p.expectKeyword("in") {
		return false
	}
	if !p.parseStarExpressions() {
		return false
	}
	return p.parseColonSuite() && p.parseElse()
}

// parseTry:
//
//	'try' ':' suite ((except_clause ':' suite)+ ['else' ':' suite] ['finally' ':' suite]
//	                | 'finally' ':' suite)
func (p *Parser) parseTry() bool {
	p.advance() // try
	if !p.parseColonSuite() {
		return false
	}
	if p.eatKeyword("finally") {
		return p.parseColonSuite()
	}
	if !p.atKeyword("except") {
		return p.expectKeyword("except")
	}
	for p.eatKeyword("except") {
		p.eatOp("*")
		if !p.atOp(":") {
			if !p.parseTest() {
				return false
			}
			if p.eatKeyword("as") && !p.expectName() {
				return false
			}
		}
		if !p.parseColonSuite() {
			return false
		}
	}
	if !p.parseElse() {
		return false
	}
	if p.eatKeyword("finally") {
		return p.parseColonSuite()
	}
	return true
}

// parseWith: 'with' (with_item (',' with_item)* | '(' with_item (',' with_item)* [','] ')') ':' suite
func (p *Parser) parseWith() bool {
	p.advance() // with
	if p.atOp("(") && p.parenthesizedWithItems() {
		p.advance() // (
		if !p.parseWithItem() {
			return false
		}
		for p.eatOp(",") {
			if p.atOp(")") {
				break
			}
			if !p.parseWithItem() {
				return false
			}
		}
		if !p.expectOp(")") {
			return false
		}
		return p.parseColonSuite()
	}
	if !p.parseWithItem() {
		return false
	}
	for p.eatOp(",") {
		if !p.parseWithItem() {
			return false
		}
	}
	return p.parseColonSuite()
}

// parenthesizedWithItems смотрит вперёд: "(...)" сразу за которым ':'
// и внутри есть 'as' на верхнем уровне скобок.
func (p *Parser) parenthesizedWithItems() bool {
	depth := 0
	sawAs := false
	for i := 0; ; i++ {
		tok := p.peekAt(i)
		switch {
		case tok.Type == newlineType || tok.Type == token.EOF:
			return false
		case isOp(tok, "(", "[", "{"):
			depth++
		case isOp(tok, ")", "]", "}"):
			depth--
			if depth == 0 {
				return sawAs && isOp(p.peekAt(i+1), ":")
			}
		case depth == 1 && tok.Type == nameType && tok.Text == "as":
			sawAs = true
		}
	}
}

// parseWithItem: test ['as' expr]
func (p *Parser) parseWithItem() bool {
	if !p.parseTest() {
		return false
	}
	if p.eatKeyword("as") {
		return p.parseStarTarget()
	}
	return true
}

func (p *Parser) parseCondSuite() bool {
	return p.parseNamedExpr() && p.parseColonSuite()
}

func (p *Parser) parseColonSuite() bool {
	return p.expectOp(":") && p.parseSuite()
}

func (p *Parser) parseElse() bool {
	if p.eatKeyword("else") {
		return p.parseColonSuite()
	}
	return true
}
