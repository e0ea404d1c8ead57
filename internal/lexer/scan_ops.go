package lexer

import (
	"grun/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// Всё, что не является оператором или разделителем Python: ERRORTOKEN
// ровно из одного символа.
func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	op := func() token.Token { return lx.emit(Op, token.DefaultChannel, start) }

	switch {
	case lx.try3('*', '*', '='), lx.try3('/', '/', '='),
		lx.try3('>', '>', '='), lx.try3('<', '<', '='),
		lx.try3('.', '.', '.'):
		return op()
	case lx.try2('*', '*'), lx.try2('/', '/'),
		lx.try2('<', '<'), lx.try2('>', '>'),
		lx.try2('<', '='), lx.try2('>', '='),
		lx.try2('=', '='), lx.try2('!', '='),
		lx.try2('-', '>'), lx.try2(':', '='),
		lx.try2('+', '='), lx.try2('-', '='),
		lx.try2('*', '='), lx.try2('/', '='),
		lx.try2('%', '='), lx.try2('&', '='),
		lx.try2('|', '='), lx.try2('^', '='),
		lx.try2('@', '='):
		return op()
	}

	switch lx.cursor.Bump() {
	case '+', '-', '*', '/', '%', '@', '&', '|', '^', '~',
		'<', '>', '(', ')', '[', ']', '{', '}',
		',', ':', '.', ';', '=':
		return op()
	default:
		// неизвестный символ
		return lx.emit(ErrorToken, token.DefaultChannel, start)
	}
}

func isOpening(t token.Token) bool {
	return t.Type == Op && (t.Text == "(" || t.Text == "[" || t.Text == "{")
}

func isClosing(t token.Token) bool {
	return t.Type == Op && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}
