// Package testkit holds checks shared by tests of several packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"grun/internal/source"
	"grun/internal/token"
)

// CheckTokenInvariants verifies what every dump relies on:
//  1. indices run 0..n-1 and exactly one EOF closes the stream
//  2. every token satisfies Stop >= Start-1 and stays within the text
//  3. a non-empty token's text is the source slice it covers and its
//     line:column is the position of Start
//  4. non-empty tokens do not overlap and appear in source order
//  5. EOF sits at len(text) with an empty range
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	size := len(sf.Text)
	prevStop := -1

	for i, tok := range tokens {
		if tok.Index != i {
			return fmt.Errorf("token %d has index %d", i, tok.Index)
		}
		if tok.Stop < tok.Start-1 {
			return fmt.Errorf("token %d: stop %d < start-1 (%d)", i, tok.Stop, tok.Start-1)
		}
		if tok.Start < 0 || tok.Start > size || tok.Stop >= size {
			return fmt.Errorf("token %d: range %d:%d outside text of %d chars", i, tok.Start, tok.Stop, size)
		}
		if tok.Type == token.EOF {
			if i != len(tokens)-1 {
				return fmt.Errorf("EOF at index %d before the end (%d tokens)", i, len(tokens))
			}
			if tok.Start != size || tok.Stop != size-1 || tok.Text != token.EOFText {
				return fmt.Errorf("EOF at %d:%d %q, want %d:%d %q", tok.Start, tok.Stop, tok.Text, size, size-1, token.EOFText)
			}
			continue
		}
		if tok.Stop < tok.Start {
			continue // синтетический токен, текст - маркер
		}

		if got := string(sf.Text[tok.Start : tok.Stop+1]); got != tok.Text {
			return fmt.Errorf("token %d: text %q, source has %q", i, tok.Text, got)
		}
		if tok.Start <= prevStop {
			return fmt.Errorf("token %d starts at %d, inside or before previous token ending at %d", i, tok.Start, prevStop)
		}
		prevStop = tok.Stop

		line, err := safecast.Conv[uint32](tok.Line)
		if err != nil {
			return fmt.Errorf("token %d: line %d: %w", i, tok.Line, err)
		}
		col, err := safecast.Conv[uint32](tok.Column)
		if err != nil {
			return fmt.Errorf("token %d: column %d: %w", i, tok.Column, err)
		}
		if off := sf.Offset(source.LineCol{Line: line, Col: col}); int(off) != tok.Start {
			return fmt.Errorf("token %d: %d:%d resolves to offset %d, token starts at %d", i, tok.Line, tok.Column, off, tok.Start)
		}
	}

	if last := tokens[len(tokens)-1]; last.Type != token.EOF {
		return fmt.Errorf("stream does not end with EOF (last is type %d)", last.Type)
	}
	return nil
}
