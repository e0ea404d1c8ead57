package lexer

import (
	"grun/internal/token"
)

// scanName сканирует идентификатор. Ключевые слова тоже NAME:
// их различает парсер по тексту.
func (lx *Lexer) scanName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(Name, token.DefaultChannel, start)
}
