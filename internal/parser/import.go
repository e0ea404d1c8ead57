package parser

// parseImportName: 'import' dotted_as_name (',' dotted_as_name)*
func (p *Parser) parseImportName() bool {
	p.advance() // import
	if !p.parseDottedAsName() {
		return false
	}
	for p.eatOp(",") {
		if !p.parseDottedAsName() {
			return false
		}
	}
	return true
}

// parseImportFrom:
//
//	'from' (('.' | '...')* dotted_name | ('.' | '...')+)
//	'import' ('*' | '(' import_as_names ')' | import_as_names)
func (p *Parser) parseImportFrom() bool {
	p.advance() // from
	dots := 0
	for p.atOp(".", "...") {
		p.advance()
		dots++
	}
	if dots == 0 || p.atName() {
		if !p.parseDottedName() {
			return false
		}
	}
	if !p.expectKeyword("import") {
		return false
	}
	switch {
	case p.eatOp("*"):
		return true
	case p.eatOp("("):
		if !p.parseImportAsNames(")") {
			return false
		}
		return p.expectOp(")")
	}
	return p.parseImportAsNames("")
}

// parseImportAsNames: import_as_name (',' import_as_name)* [',']
// Висячая запятая допустима только внутри скобок.
func (p *Parser) parseImportAsNames(end string) bool {
	for {
		if !p.expectName() {
			return false
		}
		if p.eatKeyword("as") && !p.expectName() {
			return false
		}
		if !p.eatOp(",") {
			return true
		}
		if end != "" && p.atOp(end) {
			return true
		}
	}
}

// parseDottedAsName: dotted_name ['as' NAME]
func (p *Parser) parseDottedAsName() bool {
	if !p.parseDottedName() {
		return false
	}
	if p.eatKeyword("as") {
		return p.expectName()
	}
	return true
}

// parseDottedName: NAME ('.' NAME)*
func (p *Parser) parseDottedName() bool {
	if !p.expectName() {
		return false
	}
	for p.eatOp(".") {
		if !p.expectName() {
			return false
		}
	}
	return true
}
