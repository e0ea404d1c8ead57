package parser

// exprKeywords: ключевые слова, с которых может начинаться выражение
var exprKeywords = map[string]bool{
	"lambda": true, "not": true, "await": true,
	"None": true, "True": true, "False": true,
}

func (p *Parser) canStartExpr() bool {
	tok := p.peek()
	switch tok.Type {
	case numberType, stringType:
		return true
	case nameType:
		return !isKeyword(tok.Text) || exprKeywords[tok.Text]
	case opType:
		return isOp(tok, "(", "[", "{", "-", "+", "~", "...", "*")
	}
	return false
}

// parseStarExpressions: (test | star_expr) (',' (test | star_expr))* [',']
func (p *Parser) parseStarExpressions() bool {
	if !p.parseStarOrTest() {
		return false
	}
	for p.eatOp(",") {
		if !p.canStartExpr() {
			return true
		}
		if !p.parseStarOrTest() {
			return false
		}
	}
	return true
}

func (p *Parser) parseStarOrTest() bool {
	if p.eatOp("*") {
		return p.parseExpr()
	}
	return p.parseTest()
}

// parseExprList: цели присваивания в for/del/comprehension:
// (expr | star_expr) (',' (expr | star_expr))* [',']
func (p *Parser) parseExprList() bool {
	if !p.parseStarTarget() {
		return false
	}
	for p.eatOp(",") {
		if !p.canStartExpr() || p.atKeyword("not") {
			return true
		}
		if !p.parseStarTarget() {
			return false
		}
	}
	return true
}

func (p *Parser) parseStarTarget() bool {
	p.eatOp("*")
	return p.parseExpr()
}

// parseNamedExpr: NAME ':=' test | test
func (p *Parser) parseNamedExpr() bool {
	if p.atName() && isOp(p.peekAt(1), ":=") {
		p.advance()
		p.advance()
		return p.parseTest()
	}
	return p.parseTest()
}

// parseTest: lambdef | or_test ['if' or_test 'else' test]
func (p *Parser) parseTest() bool {
	if p.atKeyword("lambda") {
		return p.parseLambda(true)
	}
	if !p.parseOrTest() {
		return false
	}
	if p.eatKeyword("if") {
		if !p.parseOrTest() {
			return false
		}
		if !p.expectKeyword("else") {
			return false
		}
		return p.parseTest()
	}
	return true
}

// parseTestNoCond: or_test | lambdef_nocond
func (p *Parser) parseTestNoCond() bool {
	if p.atKeyword("lambda") {
		return p.parseLambda(false)
	}
	return p.parseOrTest()
}

// parseOrTest: and_test ('or' and_test)*
func (p *Parser) parseOrTest() bool {
	if !p.parseAndTest() {
		return false
	}
	for p.eatKeyword("or") {
		if !p.parseAndTest() {
			return false
		}
	}
	return true
}

// parseAndTest: not_test ('and' not_test)*
func (p *Parser) parseAndTest() bool {
	if !p.parseNotTest() {
		return false
	}
	for p.eatKeyword("and") {
		if !p.parseNotTest() {
			return false
		}
	}
	return true
}

// parseNotTest: 'not' not_test | comparison
func (p *Parser) parseNotTest() bool {
	if p.eatKeyword("not") {
		return p.parseNotTest()
	}
	return p.parseComparison()
}

// parseComparison: expr (comp_op expr)*
func (p *Parser) parseComparison() bool {
	if !p.parseExpr() {
		return false
	}
	for p.eatCompareOp() {
		if !p.parseExpr() {
			return false
		}
	}
	return true
}

// parseExpr: побитовые и арифметические операторы по таблице приоритетов
func (p *Parser) parseExpr() bool {
	return p.parseBinary(precBitwiseOr)
}

func (p *Parser) parseBinary(minPrec int) bool {
	if !p.parseFactor() {
		return false
	}
	for {
		prec := p.binaryOperatorPrec()
		if prec < minPrec {
			return true
		}
		p.advance()
		if !p.parseBinary(prec + 1) {
			return false
		}
	}
}

// parseFactor: ('+' | '-' | '~') factor | power
func (p *Parser) parseFactor() bool {
	if p.eatOp("+") || p.eatOp("-") || p.eatOp("~") {
		return p.parseFactor()
	}
	return p.parsePower()
}

// parsePower: ['await'] atom trailer* ['**' factor]
func (p *Parser) parsePower() bool {
	p.eatKeyword("await")
	if !p.parseAtom() {
		return false
	}
	if !p.parseTrailers() {
		return false
	}
	if p.eatOp("**") {
		return p.parseFactor()
	}
	return true
}

// parseYieldExpr: 'yield' ['from' test | star_expressions]
func (p *Parser) parseYieldExpr() bool {
	p.advance() // yield
	if p.eatKeyword("from") {
		return p.parseTest()
	}
	if p.canStartExpr() {
		return p.parseStarExpressions()
	}
	return true
}
