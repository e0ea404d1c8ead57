package parser

// Таблица приоритетов бинарных операторов уровня expr.
// Чем больше число, тем выше приоритет; все левоассоциативны.
const (
	precBitwiseOr      = 1 // |
	precBitwiseXor     = 2 // ^
	precBitwiseAnd     = 3 // &
	precShift          = 4 // << >>
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / // % @
)

var binaryPrec = map[string]int{
	"|":  precBitwiseOr,
	"^":  precBitwiseXor,
	"&":  precBitwiseAnd,
	"<<": precShift,
	">>": precShift,
	"+":  precAdditive,
	"-":  precAdditive,
	"*":  precMultiplicative,
	"/":  precMultiplicative,
	"//": precMultiplicative,
	"%":  precMultiplicative,
	"@":  precMultiplicative,
}

// binaryOperatorPrec возвращает приоритет текущего токена или -1
func (p *Parser) binaryOperatorPrec() int {
	tok := p.peek()
	if tok.Type != opType {
		return -1
	}
	if prec, ok := binaryPrec[tok.Text]; ok {
		return prec
	}
	return -1
}

var compareOps = []string{"<", ">", "==", ">=", "<=", "!="}

// eatCompareOp съедает оператор сравнения, включая "not in" и "is not"
func (p *Parser) eatCompareOp() bool {
	switch {
	case p.atOp(compareOps...):
		p.advance()
		return true
	case p.atKeyword("in"):
		p.advance()
		return true
	case p.atKeyword("not") && isKeywordTok(p.peekAt(1), "in"):
		p.advance()
		p.advance()
		return true
	case p.atKeyword("is"):
		p.advance()
		p.eatKeyword("not")
		return true
	}
	return false
}
