package token_test

import (
	"testing"

	"grun/internal/token"
)

type sliceSource struct {
	toks []token.Token
	pos  int
}

func (s *sliceSource) Next() token.Token {
	if s.pos >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	t := s.toks[s.pos]
	s.pos++
	return t
}

func TestStreamFillAssignsDenseIndices(t *testing.T) {
	src := &sliceSource{toks: []token.Token{
		{Index: 7, Type: 1, Text: "x"},
		{Index: 7, Type: 2, Text: "="},
		{Index: 7, Type: token.EOF, Text: token.EOFText},
	}}
	s := token.NewStream(src)
	toks := s.Tokens()
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	for i, tok := range toks {
		if tok.Index != i {
			t.Fatalf("token %d has index %d", i, tok.Index)
		}
	}
	if !toks[2].IsEOF() {
		t.Fatalf("last token must be EOF, got %+v", toks[2])
	}
}

func TestStreamFillStopsAtFirstEOF(t *testing.T) {
	src := &sliceSource{toks: []token.Token{{Type: token.EOF, Text: token.EOFText}}}
	s := token.NewStream(src)
	s.Fill()
	s.Fill()
	if s.Len() != 1 {
		t.Fatalf("expected a single EOF token, got %d", s.Len())
	}
	if src.pos != 1 {
		t.Fatalf("source must be drained exactly once, pos=%d", src.pos)
	}
}

func TestStreamIsRestartable(t *testing.T) {
	s := token.NewStreamFromTokens([]token.Token{{Type: 1, Text: "a"}, {Type: 1, Text: "b"}})
	first := []string{s.Next().Text, s.Next().Text, s.Next().Text, s.Next().Text}
	s.Reset()
	second := []string{s.Next().Text, s.Next().Text}
	if first[0] != "a" || first[1] != "b" || first[2] != token.EOFText || first[3] != token.EOFText {
		t.Fatalf("unexpected first pass: %v", first)
	}
	if second[0] != "a" || second[1] != "b" {
		t.Fatalf("unexpected second pass: %v", second)
	}
}

func TestNewStreamFromTokensAppendsEOF(t *testing.T) {
	s := token.NewStreamFromTokens([]token.Token{{Type: 1, Text: "ab", Start: 0, Stop: 1, Line: 1, Column: 0}})
	eof := s.Get(s.Len() - 1)
	if !eof.IsEOF() || eof.Start != 2 || eof.Stop != 1 || eof.Column != 2 {
		t.Fatalf("unexpected synthetic EOF: %+v", eof)
	}

	empty := token.NewStreamFromTokens(nil)
	if empty.Len() != 1 {
		t.Fatalf("empty stream must hold only EOF, got %d", empty.Len())
	}
	got := empty.Get(0)
	if got.Start != 0 || got.Stop != -1 || got.Line != 1 || got.Column != 0 {
		t.Fatalf("unexpected EOF for empty input: %+v", got)
	}
}

func TestStreamOnChannel(t *testing.T) {
	s := token.NewStreamFromTokens([]token.Token{
		{Type: 1, Text: "a"},
		{Type: 2, Text: "#c", Channel: token.HiddenChannel},
		{Type: 1, Text: "b"},
	})
	def := s.OnChannel(token.DefaultChannel)
	if len(def) != 3 {
		t.Fatalf("expected a, b and EOF, got %d tokens", len(def))
	}
	if def[1].Text != "b" || def[1].Index != 2 {
		t.Fatalf("default-channel view must keep stream indices, got %+v", def[1])
	}
	hidden := s.OnChannel(token.HiddenChannel)
	if len(hidden) != 2 || hidden[0].Text != "#c" {
		t.Fatalf("unexpected hidden view: %+v", hidden)
	}
}
