package lexer

import (
	"grun/internal/diag"
	"grun/internal/token"
)

const (
	tabWidth      = 8
	invalidLength = -1
	// errorText prefixes the text of tokens inserted for indentation errors.
	errorText = " ERROR: "
)

// indentState: состояние синтеза INDENT/DEDENT поверх сырых токенов.
type indentState struct {
	stack   []int         // ширины отступов; 0 на дне никогда не снимается
	pending []token.Token // токены, ожидающие выдачи
	started bool

	prevPendingType    token.Type // тип последнего добавленного токена
	lastDefaultType    token.Type // то же, но только для DEFAULT канала
	opened             int        // глубина скобок (), [], {}
	wasSpaceIndent     bool
	wasTabIndent       bool
	mixedIndentCounted bool

	cur    token.Token
	ffg    token.Token // следующий токен (lookahead)
	hasFfg bool
	done   bool
	eof    token.Token
}

// Next возвращает следующий токен с учётом отступов.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	st := &lx.indent
	for {
		if len(st.pending) == 0 {
			if st.done {
				return st.eof
			}
			lx.checkNextToken()
			continue
		}
		tok := st.pending[0]
		st.pending = st.pending[1:]
		if tok.Type == token.EOF {
			st.done = true
			st.eof = tok
		}
		if tok.Type == WS && !lx.opts.KeepWhitespace {
			continue
		}
		return tok
	}
}

func (lx *Lexer) checkNextToken() {
	st := &lx.indent
	if st.prevPendingType == token.EOF {
		return
	}

	lx.advance()
	if !st.started {
		lx.handleStartOfInput()
	}

	cur := st.cur
	switch {
	case isOpening(cur):
		st.opened++
		lx.addPending(cur)
	case isClosing(cur):
		st.opened--
		lx.addPending(cur)
	case cur.Type == Newline:
		lx.handleNewline()
	case cur.Type == ErrorToken:
		code := diag.LexUnknownChar
		if cur.Text == "'" || cur.Text == `"` {
			code = diag.LexUnterminatedString
		}
		lx.report(code, cur, "token recognition error at: '"+cur.Text+"'")
		lx.addPending(cur)
	case cur.Type == token.EOF:
		lx.handleEOF()
	default:
		lx.addPending(cur)
	}
}

// advance сдвигает пару (cur, ffg) на один сырой токен.
func (lx *Lexer) advance() {
	st := &lx.indent
	if st.hasFfg {
		st.cur = st.ffg
	} else {
		st.cur = lx.nextRaw()
	}
	if st.cur.Type == token.EOF {
		st.ffg = st.cur
	} else {
		st.ffg = lx.nextRaw()
	}
	st.hasFfg = true
}

// handleStartOfInput скрывает ведущие NEWLINE и ищет первую инструкцию.
// Если перед ней есть отступ, вставляется INDENT с текстом ошибки, чтобы
// парсер сообщил о неожиданном отступе.
func (lx *Lexer) handleStartOfInput() {
	st := &lx.indent
	st.started = true
	st.stack = append(st.stack, 0)
	for st.cur.Type != token.EOF {
		if st.cur.Channel == token.DefaultChannel {
			if st.cur.Type != Newline {
				lx.insertLeadingIndent()
				return
			}
			lx.hideAndAddPending(st.cur)
		} else {
			// WS, EXPLICIT_LINE_JOINING или COMMENT
			lx.addPending(st.cur)
		}
		lx.advance()
	}
}

func (lx *Lexer) insertLeadingIndent() {
	st := &lx.indent
	if st.prevPendingType != WS || len(st.pending) == 0 {
		return
	}
	ws := st.pending[len(st.pending)-1]
	if lx.indentationLength(ws.Text) != 0 {
		const msg = "first statement indented"
		lx.report(diag.LexUnexpectedIndent, st.cur, msg)
		lx.addSynthetic(Indent, errorText+msg, st.cur)
	}
}

func (lx *Lexer) handleNewline() {
	st := &lx.indent
	if st.opened > 0 {
		// неявное продолжение строки внутри скобок
		lx.hideAndAddPending(st.cur)
		return
	}

	nl := st.cur
	lookingAhead := st.ffg.Type == WS
	if lookingAhead {
		lx.advance() // cur = WS, ffg = токен после него
	}

	switch st.ffg.Type {
	case Newline, Comment:
		// пустая строка или строка с одним комментарием
		lx.hideAndAddPending(nl)
		if lookingAhead {
			lx.addPending(st.cur)
		}
	default:
		lx.addPending(nl)
		if !lookingAhead {
			lx.insertIndentOrDedent(0)
			return
		}
		length := 0
		if st.ffg.Type != token.EOF {
			length = lx.indentationLength(st.cur.Text)
		}
		if length == invalidLength {
			lx.reportError(diag.LexInconsistentTabs, "inconsistent use of tabs and spaces in indentation")
			return
		}
		lx.addPending(st.cur)
		lx.insertIndentOrDedent(length)
	}
}

func (lx *Lexer) insertIndentOrDedent(length int) {
	st := &lx.indent
	prev := st.stack[len(st.stack)-1]
	if length > prev {
		lx.addSynthetic(Indent, "", st.ffg)
		st.stack = append(st.stack, length)
		return
	}
	for length < prev {
		st.stack = st.stack[:len(st.stack)-1]
		prev = st.stack[len(st.stack)-1]
		if length <= prev {
			lx.addSynthetic(Dedent, "", st.ffg)
		} else {
			lx.reportError(diag.LexInconsistentDedent, "inconsistent dedent")
		}
	}
}

func (lx *Lexer) handleEOF() {
	st := &lx.indent
	if st.lastDefaultType > 0 {
		// был хотя бы один оператор (ведущие NEWLINE скрыты)
		if st.lastDefaultType != Newline && st.lastDefaultType != Dedent {
			lx.addSynthetic(Newline, "", st.ffg)
		}
		lx.insertIndentOrDedent(0)
	}
	lx.addPending(st.cur)
}

// indentationLength считает ширину отступа: таб до следующей позиции,
// кратной 8, form feed сбрасывает счёт. Первое смешение табов и пробелов
// в файле даёт invalidLength.
func (lx *Lexer) indentationLength(text string) int {
	st := &lx.indent
	length := 0
	for _, r := range text {
		switch r {
		case ' ':
			st.wasSpaceIndent = true
			length++
		case '\t':
			st.wasTabIndent = true
			length += tabWidth - length%tabWidth
		case '\f':
			length = 0
		}
	}
	if st.wasTabIndent && st.wasSpaceIndent && !st.mixedIndentCounted {
		st.mixedIndentCounted = true
		length = invalidLength
	}
	return length
}

// reportError сообщает об ошибке и вставляет ERRORTOKEN, чтобы парсер тоже
// её увидел.
func (lx *Lexer) reportError(code diag.Code, msg string) {
	st := &lx.indent
	lx.report(code, st.cur, msg)
	lx.addSynthetic(ErrorToken, errorText+msg, st.ffg)
}

func (lx *Lexer) hideAndAddPending(t token.Token) {
	t.Channel = token.HiddenChannel
	lx.addPending(t)
}

func (lx *Lexer) addSynthetic(typ token.Type, text string, anchor token.Token) {
	lx.addPending(token.Synthetic(typ, token.DefaultChannel, text, anchor, vocabulary))
}

func (lx *Lexer) addPending(t token.Token) {
	st := &lx.indent
	st.prevPendingType = t.Type
	if t.Channel == token.DefaultChannel {
		st.lastDefaultType = t.Type
	}
	st.pending = append(st.pending, t)
}
