package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"grun/internal/source"
)

// eof is returned by the Peek family past the end of input.
const eof rune = -1

// Cursor представляет собой позицию в декодированном тексте файла.
// Line и Col обновляются на каждом Bump: строка меняется только на '\n'.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Text).
	Limit uint32
	Line  int // 1-based
	Col   int // 0-based
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Text))
	if err != nil {
		panic(fmt.Errorf("len file text overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Limit: limit,
		Line:  1,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий символ, если есть, иначе возвращает eof
func (c *Cursor) Peek() rune {
	if c.EOF() {
		return eof
	}
	return c.File.Text[c.Off]
}

// PeekAt смотрит на n символов вперёд от текущего
func (c *Cursor) PeekAt(n uint32) rune {
	if c.Off+n >= c.Limit {
		return eof
	}
	return c.File.Text[c.Off+n]
}

// Peek2 читает текущий и следующий символ, если есть
func (c *Cursor) Peek2() (r0, r1 rune, ok bool) {
	if c.Off+1 >= c.Limit {
		return eof, eof, false
	}
	return c.File.Text[c.Off], c.File.Text[c.Off+1], true
}

// Peek3 читает три символа подряд, если есть
func (c *Cursor) Peek3() (r0, r1, r2 rune, ok bool) {
	if c.Off+2 >= c.Limit {
		return eof, eof, eof, false
	}
	return c.File.Text[c.Off], c.File.Text[c.Off+1], c.File.Text[c.Off+2], true
}

// Bump перемещает курсор на один символ вперед и возвращает прочитанный символ
func (c *Cursor) Bump() rune {
	if c.EOF() {
		return eof
	}
	r := c.File.Text[c.Off]
	c.Off++
	if r == '\n' {
		c.Line++
		c.Col = 0
	} else {
		c.Col++
	}
	return r
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark struct {
	off  uint32
	line int
	col  int
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, line: c.Line, col: c.Col}
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: m.off,
		End:   c.Off,
	}
}

// TextFrom возвращает текст от метки до текущей позиции
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Text[m.off:c.Off])
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = m.off
	c.Line = m.line
	c.Col = m.col
}

// Eat consumes the next character if it matches r.
func (c *Cursor) Eat(r rune) bool {
	if !c.EOF() && c.File.Text[c.Off] == r {
		c.Bump()
		return true
	}
	return false
}
