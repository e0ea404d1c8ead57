package lexer

import (
	"grun/internal/token"
)

// scanNumber: целые (dec/0b/0o/0x), дробные, экспонента, мнимый суффикс j.
// '_' съедается только между цифрами. Если после префикса базы нет цифр,
// число заканчивается на "0" и дальше пойдёт NAME, как при longest-match.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			if lx.scanRadix(isHex) {
				return lx.emit(Number, token.DefaultChannel, start)
			}
		case 'o', 'O':
			if lx.scanRadix(isOct) {
				return lx.emit(Number, token.DefaultChannel, start)
			}
		case 'b', 'B':
			if lx.scanRadix(isBin) {
				return lx.emit(Number, token.DefaultChannel, start)
			}
		}
	}

	// целая часть (может отсутствовать: ".5")
	lx.scanDigits(isDec)

	// дробная часть
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.scanDigits(isDec)
	}

	// экспонента только если за ней реально есть цифры
	if r := lx.cursor.Peek(); r == 'e' || r == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !lx.scanDigits(isDec) {
			lx.cursor.Reset(mark)
		}
	}

	if r := lx.cursor.Peek(); r == 'j' || r == 'J' {
		lx.cursor.Bump()
	}
	return lx.emit(Number, token.DefaultChannel, start)
}

// scanRadix съедает "0x" и цифры базы; без цифр откатывается.
func (lx *Lexer) scanRadix(digit func(rune) bool) bool {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // 0
	lx.cursor.Bump() // x/o/b
	// после префикса допустим ведущий '_': 0x_ff
	if lx.cursor.Peek() == '_' && digit(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
	}
	if !lx.scanDigits(digit) {
		lx.cursor.Reset(mark)
		return false
	}
	return true
}

// scanDigits съедает digit ('_'? digit)*; возвращает false, если не было ни одной цифры.
func (lx *Lexer) scanDigits(digit func(rune) bool) bool {
	if !digit(lx.cursor.Peek()) {
		return false
	}
	for {
		r := lx.cursor.Peek()
		switch {
		case digit(r):
			lx.cursor.Bump()
		case r == '_' && digit(lx.cursor.PeekAt(1)):
			lx.cursor.Bump()
		default:
			return true
		}
	}
}
