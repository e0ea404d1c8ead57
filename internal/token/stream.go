package token

// Source yields tokens one by one. After EOF it must keep returning EOF.
type Source interface {
	Next() Token
}

// Stream materialises every token of a Source before anyone reads it.
// Reads are restartable: Reset rewinds the cursor without re-lexing.
type Stream struct {
	src    Source
	tokens []Token
	filled bool
	pos    int
}

// NewStream wraps src; nothing is lexed until Fill.
func NewStream(src Source) *Stream {
	return &Stream{src: src}
}

// NewStreamFromTokens builds an already filled stream. Indices are
// reassigned and an EOF sentinel is appended when missing.
func NewStreamFromTokens(toks []Token) *Stream {
	s := &Stream{tokens: make([]Token, 0, len(toks)+1), filled: true}
	for _, t := range toks {
		s.push(t)
		if t.Type == EOF {
			break
		}
	}
	if len(s.tokens) == 0 || s.tokens[len(s.tokens)-1].Type != EOF {
		var anchor Token
		if n := len(s.tokens); n > 0 {
			last := s.tokens[n-1]
			anchor = Token{Start: last.Stop + 1, Line: last.Line, Column: last.Column + last.Len()}
		} else {
			anchor = Token{Line: 1}
		}
		s.push(Token{
			Start:  anchor.Start,
			Stop:   anchor.Start - 1,
			Text:   EOFText,
			Type:   EOF,
			Line:   anchor.Line,
			Column: anchor.Column,
		})
	}
	return s
}

func (s *Stream) push(t Token) {
	t.Index = len(s.tokens)
	s.tokens = append(s.tokens, t)
}

// Fill pulls tokens from the source until EOF. Calling it twice is a no-op.
func (s *Stream) Fill() {
	if s.filled {
		return
	}
	for {
		t := s.src.Next()
		s.push(t)
		if t.Type == EOF {
			break
		}
	}
	s.filled = true
}

// Tokens returns every token including EOF. The slice must not be modified.
func (s *Stream) Tokens() []Token {
	s.Fill()
	return s.tokens
}

// Len is the number of tokens including EOF.
func (s *Stream) Len() int {
	s.Fill()
	return len(s.tokens)
}

// Get returns token i; indices past the end yield the EOF sentinel.
func (s *Stream) Get(i int) Token {
	s.Fill()
	if i < 0 {
		i = 0
	}
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

// Reset rewinds the read cursor to the first token.
func (s *Stream) Reset() { s.pos = 0 }

// Next returns the token under the cursor and advances; EOF is sticky.
func (s *Stream) Next() Token {
	t := s.Get(s.pos)
	if t.Type != EOF {
		s.pos++
	}
	return t
}

// OnChannel returns the tokens on ch in index order, EOF always included.
func (s *Stream) OnChannel(ch Channel) []Token {
	s.Fill()
	out := make([]Token, 0, len(s.tokens))
	for _, t := range s.tokens {
		if t.Channel == ch || t.Type == EOF {
			out = append(out, t)
		}
	}
	return out
}
