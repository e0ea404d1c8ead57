package lexer

import (
	"unicode"
)

// ===== Классификаторы =====

func isIdentStart(r rune) bool {
	if r < 0x80 {
		return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_ID_Start, r)
}

func isIdentContinue(r rune) bool {
	if r < 0x80 {
		return isIdentStart(r) || isDec(r)
	}
	return isIdentStart(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc) ||
		unicode.Is(unicode.Other_ID_Continue, r)
}

func isDec(r rune) bool { return r >= '0' && r <= '9' }

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'f') ||
		(r >= 'A' && r <= 'F')
}

func isOct(r rune) bool { return r >= '0' && r <= '7' }

func isBin(r rune) bool { return r == '0' || r == '1' }

func isInlineSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\f' }

// ===== Матчеры последовательностей операторов (жадность) =====

// try2/try3 пробуют "съесть" 2/3 символа, если совпадает.
func (lx *Lexer) try3(a, b, c rune) bool {
	r0, r1, r2, ok := lx.cursor.Peek3()
	if !ok || r0 != a || r1 != b || r2 != c {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

func (lx *Lexer) try2(a, b rune) bool {
	r0, r1, ok := lx.cursor.Peek2()
	if !ok || r0 != a || r1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
