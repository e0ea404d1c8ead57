package lexer

import (
	"strings"

	"grun/internal/token"
)

// String prefixes Python accepts, compared case-insensitively.
var stringPrefixes = map[string]bool{
	"r": true, "u": true, "b": true, "f": true,
	"br": true, "rb": true, "fr": true, "rf": true,
}

// scanPrefixedString пробует prefix + кавычку. При неудаче курсор
// возвращается к началу и вызывающий сканирует NAME.
func (lx *Lexer) scanPrefixedString() (token.Token, bool) {
	start := lx.cursor.Mark()
	var prefix strings.Builder
	for i := 0; i < 2; i++ {
		r := lx.cursor.Peek()
		if r == '\'' || r == '"' || !isIdentStart(r) {
			break
		}
		prefix.WriteRune(r)
		lx.cursor.Bump()
	}
	q := lx.cursor.Peek()
	if (q != '\'' && q != '"') || !stringPrefixes[strings.ToLower(prefix.String())] {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	if !lx.scanQuoted() {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	return lx.emit(String, token.DefaultChannel, start), true
}

// scanQuoted съедает строковый литерал с текущей кавычки. Сначала пробует
// тройные кавычки, затем обычные; при неудаче оставляет курсор на месте.
// f-строки сканируются целиком как один литерал.
func (lx *Lexer) scanQuoted() bool {
	start := lx.cursor.Mark()
	q := lx.cursor.Peek()
	if lx.try3(q, q, q) {
		if lx.scanBody(q, true) {
			return true
		}
		lx.cursor.Reset(start)
	}
	lx.cursor.Bump()
	if lx.scanBody(q, false) {
		return true
	}
	lx.cursor.Reset(start)
	return false
}

// scanBody ищет закрывающую кавычку. '\' экранирует следующий символ,
// в том числе перевод строки. В однострочной строке голый перевод строки
// означает незакрытый литерал.
func (lx *Lexer) scanBody(q rune, triple bool) bool {
	for !lx.cursor.EOF() {
		r := lx.cursor.Peek()
		switch {
		case r == '\\':
			lx.cursor.Bump()
			if !lx.bumpNewline() {
				lx.cursor.Bump()
			}
		case r == q:
			if !triple {
				lx.cursor.Bump()
				return true
			}
			if lx.try3(q, q, q) {
				return true
			}
			lx.cursor.Bump()
		case !triple && (r == '\n' || r == '\r'):
			return false
		default:
			lx.cursor.Bump()
		}
	}
	return false
}
