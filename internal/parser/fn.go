package parser

// parseDecorated: ('@' named_expr NEWLINE)+ (classdef | funcdef | async_funcdef)
func (p *Parser) parseDecorated() bool {
	for p.eatOp("@") {
		if !p.parseNamedExpr() {
			return false
		}
		if !p.expectType(newlineType) {
			return false
		}
	}
	switch {
	case p.atKeyword("def"):
		return p.parseFuncDef()
	case p.atKeyword("class"):
		return p.parseClassDef()
	case p.atKeyword("async") && isKeywordTok(p.peekAt(1), "def"):
		p.advance()
		return p.parseFuncDef()
	}
	return p.noViable()
}

// parseAsync: 'async' (funcdef | with_stmt | for_stmt)
func (p *Parser) parseAsync() bool {
	p.advance() // async
	switch {
	case p.atKeyword("def"):
		return p.parseFuncDef()
	case p.atKeyword("with"):
		return p.parseWith()
	case p.atKeyword("for"):
		return p.parseFor()
	}
	return p.noViable()
}

// parseFuncDef: 'def' NAME [type_params] '(' [typedargslist] ')' ['->' test] ':' suite
func (p *Parser) parseFuncDef() bool {
	p.advance() // def
	if !p.expectName() {
		return false
	}
	if p.atOp("[") && !p.parseTypeParams() {
		return false
	}
	if !p.expectOp("(") {
		return false
	}
	if !p.atOp(")") && !p.parseParams(")", true) {
		return false
	}
	if !p.expectOp(")") {
		return false
	}
	if p.eatOp("->") && !p.parseTest() {
		return false
	}
	return p.parseColonSuite()
}

// parseClassDef: 'class' NAME [type_params] ['(' [arglist] ')'] ':' suite
func (p *Parser) parseClassDef() bool {
	p.advance() // class
	if !p.expectName() {
		return false
	}
	if p.atOp("[") && !p.parseTypeParams() {
		return false
	}
	if p.eatOp("(") {
		if !p.atOp(")") && !p.parseArgList(")") {
			return false
		}
		if !p.expectOp(")") {
			return false
		}
	}
	return p.parseColonSuite()
}

// parseTypeParams: '[' type_param (',' type_param)* [','] ']'
// type_param: ['*' | '**'] NAME [':' expr] ['=' expr]
func (p *Parser) parseTypeParams() bool {
	p.advance() // [
	for {
		if !p.eatOp("*") {
			p.eatOp("**")
		}
		if !p.expectName() {
			return false
		}
		if p.eatOp(":") && !p.parseExpr() {
			return false
		}
		if p.eatOp("=") && !p.parseExpr() {
			return false
		}
		if !p.eatOp(",") || p.atOp("]") {
			break
		}
	}
	return p.expectOp("]")
}

// parseParams разбирает список параметров до закрывающего токена end
// (')' для def, ':' для lambda). Аннотации только для def.
//
//	param: '/' | '*' [NAME [':' test]] | '**' NAME [':' test] | NAME [':' test] ['=' test]
func (p *Parser) parseParams(end string, annotations bool) bool {
	for {
		switch {
		case p.eatOp("/"):
		case p.eatOp("**"):
			if !p.parseParamName(annotations) {
				return false
			}
		case p.eatOp("*"):
			if p.atName() && !p.parseParamName(annotations) {
				return false
			}
		default:
			if !p.parseParamName(annotations) {
				return false
			}
			if p.eatOp("=") && !p.parseTest() {
				return false
			}
		}
		if !p.eatOp(",") || p.atOp(end) {
			return true
		}
	}
}

func (p *Parser) parseParamName(annotations bool) bool {
	if !p.expectName() {
		return false
	}
	if annotations && p.eatOp(":") {
		return p.parseTest()
	}
	return true
}

// parseLambda: 'lambda' [varargslist] ':' test
func (p *Parser) parseLambda(allowCond bool) bool {
	p.advance() // lambda
	if !p.atOp(":") && !p.parseParams(":", false) {
		return false
	}
	if !p.expectOp(":") {
		return false
	}
	if allowCond {
		return p.parseTest()
	}
	return p.parseOrTest()
}
