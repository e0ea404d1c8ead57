package lexer

import (
	"grun/internal/token"
)

// scanWhitespace: подряд идущие ' ', '\t', '\f' в один WS.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isInlineSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(WS, token.HiddenChannel, start)
}

// scanComment: '#' до конца строки, перевод строки не входит.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		r := lx.cursor.Peek()
		if r == '\n' || r == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(Comment, token.HiddenChannel, start)
}

// scanLineJoining: '\' сразу перед переводом строки склеивает строки.
// Одиночный '\' в любом другом месте - ERRORTOKEN.
func (lx *Lexer) scanLineJoining() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.bumpNewline() {
		return lx.emit(ExplicitLineJoining, token.HiddenChannel, start)
	}
	return lx.emit(ErrorToken, token.DefaultChannel, start)
}
