package parser

// parseAtom:
//
//	'(' [yield_expr | testlist_comp] ')' | '[' [testlist_comp] ']' | '{' [dictorsetmaker] '}'
//	| NAME | NUMBER | STRING+ | '...' | 'None' | 'True' | 'False'
func (p *Parser) parseAtom() bool {
	tok := p.peek()
	switch tok.Type {
	case numberType:
		p.advance()
		return true
	case stringType:
		for p.at(stringType) {
			p.advance()
		}
		return true
	case nameType:
		if !isKeyword(tok.Text) || tok.Text == "None" || tok.Text == "True" || tok.Text == "False" {
			p.advance()
			return true
		}
		return p.noViable()
	case opType:
		switch tok.Text {
		case "...":
			p.advance()
			return true
		case "(":
			p.advance()
			if p.eatOp(")") {
				return true
			}
			if p.atKeyword("yield") {
				if !p.parseYieldExpr() {
					return false
				}
			} else if !p.parseTestListComp(")") {
				return false
			}
			return p.expectOp(")")
		case "[":
			p.advance()
			if p.eatOp("]") {
				return true
			}
			if !p.parseTestListComp("]") {
				return false
			}
			return p.expectOp("]")
		case "{":
			p.advance()
			if p.eatOp("}") {
				return true
			}
			if !p.parseDictOrSetMaker() {
				return false
			}
			return p.expectOp("}")
		}
	}
	return p.noViable()
}

// parseTestListComp: (named_expr | star_expr) (comp_for | (',' (named_expr | star_expr))* [','])
func (p *Parser) parseTestListComp(end string) bool {
	if !p.parseNamedOrStar() {
		return false
	}
	if p.atCompFor() {
		return p.parseCompFor()
	}
	for p.eatOp(",") {
		if p.atOp(end) {
			return true
		}
		if !p.parseNamedOrStar() {
			return false
		}
	}
	return true
}

func (p *Parser) parseNamedOrStar() bool {
	if p.eatOp("*") {
		return p.parseExpr()
	}
	return p.parseNamedExpr()
}

// parseDictOrSetMaker:
//
//	((test ':' test | '**' expr) (comp_for | (',' (test ':' test | '**' expr))* [',']))
//	| ((test | star_expr) (comp_for | (',' (test | star_expr))* [',']))
func (p *Parser) parseDictOrSetMaker() bool {
	isDict := p.atOp("**")
	if isDict {
		p.advance()
		if !p.parseExpr() {
			return false
		}
	} else {
		if !p.parseNamedOrStar() {
			return false
		}
		if p.eatOp(":") {
			isDict = true
			if !p.parseTest() {
				return false
			}
		}
	}
	if p.atCompFor() {
		return p.parseCompFor()
	}
	for p.eatOp(",") {
		if p.atOp("}") {
			return true
		}
		if isDict {
			if !p.parseDictItem() {
				return false
			}
		} else if !p.parseNamedOrStar() {
			return false
		}
	}
	return true
}

func (p *Parser) parseDictItem() bool {
	if p.eatOp("**") {
		return p.parseExpr()
	}
	return p.parseTest() && p.expectOp(":") && p.parseTest()
}

func (p *Parser) atCompFor() bool {
	return p.atKeyword("for") || (p.atKeyword("async") && isKeywordTok(p.peekAt(1), "for"))
}

// parseCompFor: ['async'] 'for' exprlist 'in' or_test [comp_iter]
// comp_iter: comp_for | 'if' test_nocond [comp_iter]
func (p *Parser) parseCompFor() bool {
	for {
		switch {
		case p.atCompFor():
			p.eatKeyword("async")
			p.advance() // for
			if !p.parseExprList() {
				return false
			}
			if !p.expectKeyword("in") {
				return false
			}
			if !p.parseOrTest() {
				return false
			}
		case p.eatKeyword("if"):
			if !p.parseTestNoCond() {
				return false
			}
		default:
			return true
		}
	}
}

// parseTrailers: ('(' [arglist] ')' | '[' subscriptlist ']' | '.' NAME)*
func (p *Parser) parseTrailers() bool {
	for {
		switch {
		case p.eatOp("("):
			if !p.atOp(")") && !p.parseArgList(")") {
				return false
			}
			if !p.expectOp(")") {
				return false
			}
		case p.eatOp("["):
			if !p.parseSubscriptList() {
				return false
			}
			if !p.expectOp("]") {
				return false
			}
		case p.eatOp("."):
			if !p.expectName() {
				return false
			}
		default:
			return true
		}
	}
}

// parseArgList: argument (',' argument)* [',']
//
//	argument: test [comp_for] | NAME ':=' test | NAME '=' test | '**' test | '*' test
func (p *Parser) parseArgList(end string) bool {
	for {
		switch {
		case p.eatOp("**"), p.eatOp("*"):
			if !p.parseTest() {
				return false
			}
		case p.atName() && isOp(p.peekAt(1), "=", ":="):
			p.advance()
			p.advance()
			if !p.parseTest() {
				return false
			}
		default:
			if !p.parseTest() {
				return false
			}
			if p.atCompFor() && !p.parseCompFor() {
				return false
			}
		}
		if !p.eatOp(",") || p.atOp(end) {
			return true
		}
	}
}

// parseSubscriptList: subscript (',' subscript)* [',']
func (p *Parser) parseSubscriptList() bool {
	for {
		if !p.parseSubscript() {
			return false
		}
		if !p.eatOp(",") || p.atOp("]") {
			return true
		}
	}
}

// parseSubscript: star_expr | named_expr | [test] ':' [test] [':' [test]]
func (p *Parser) parseSubscript() bool {
	if p.eatOp("*") {
		return p.parseExpr()
	}
	if !p.atOp(":") {
		if !p.parseNamedExpr() {
			return false
		}
		if !p.atOp(":") {
			return true
		}
	}
	p.advance() // :
	if p.canStartExpr() && !p.parseTest() {
		return false
	}
	if p.eatOp(":") && p.canStartExpr() {
		return p.parseTest()
	}
	return true
}
