package lexer

import (
	"grun/internal/source"
	"grun/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	indent indentState
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes the whole file eagerly and returns a filled stream.
func Tokenize(file *source.File, opts Options) *token.Stream {
	s := token.NewStream(New(file, opts))
	s.Fill()
	return s
}

// nextRaw сканирует один токен без учёта отступов. WS, COMMENT и
// EXPLICIT_LINE_JOINING возвращаются как обычные токены на скрытом канале.
// После конца ввода всегда возвращает EOF.
func (lx *Lexer) nextRaw() token.Token {
	if lx.cursor.EOF() {
		return lx.eofToken()
	}

	start := lx.cursor.Mark()
	r := lx.cursor.Peek()

	switch {
	case isInlineSpace(r):
		return lx.scanWhitespace()

	case r == '\n' || r == '\r':
		lx.bumpNewline()
		return lx.emit(Newline, token.DefaultChannel, start)

	case r == '#':
		return lx.scanComment()

	case r == '\\':
		return lx.scanLineJoining()

	case isIdentStart(r):
		// строковые префиксы (r, b, f, rb, ...) выглядят как начало имени
		if tok, ok := lx.scanPrefixedString(); ok {
			return tok
		}
		return lx.scanName()

	case isDec(r):
		return lx.scanNumber()

	case r == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()

	case r == '\'' || r == '"':
		if lx.scanQuoted() {
			return lx.emit(String, token.DefaultChannel, start)
		}
		lx.cursor.Bump()
		return lx.emit(ErrorToken, token.DefaultChannel, start)

	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) emit(typ token.Type, ch token.Channel, start Mark) token.Token {
	return token.Token{
		Start:   int(start.off),
		Stop:    int(lx.cursor.Off) - 1,
		Text:    lx.cursor.TextFrom(start),
		Type:    typ,
		Channel: ch,
		Line:    start.line,
		Column:  start.col,
	}
}

func (lx *Lexer) eofToken() token.Token {
	off := int(lx.cursor.Off)
	return token.Token{
		Start:  off,
		Stop:   off - 1,
		Text:   token.EOFText,
		Type:   token.EOF,
		Line:   lx.cursor.Line,
		Column: lx.cursor.Col,
	}
}

// bumpNewline съедает "\r\n", "\n" или одиночный "\r".
func (lx *Lexer) bumpNewline() bool {
	switch lx.cursor.Peek() {
	case '\r':
		lx.cursor.Bump()
		lx.cursor.Eat('\n')
		return true
	case '\n':
		lx.cursor.Bump()
		return true
	}
	return false
}
