package token

// Type is a grammar-defined token category.
type Type int

// Channel is the lexer-assigned lane of a token.
type Channel int

const (
	// EOF marks the end of the token stream for every grammar.
	EOF Type = -1
	// InvalidType is never produced by a well-behaved lexer.
	InvalidType Type = 0
)

const (
	// DefaultChannel carries tokens the parser consumes.
	DefaultChannel Channel = 0
	// HiddenChannel carries comments, whitespace and hidden newlines.
	HiddenChannel Channel = 1
)

// EOFText is the text of the end-of-stream sentinel.
const EOFText = "<EOF>"

// Token is a single lexical unit with its source position.
type Token struct {
	Index   int
	Start   int // inclusive
	Stop    int // inclusive; Start-1 for empty tokens
	Text    string
	Type    Type
	Channel Channel
	Line    int // 1-based
	Column  int // 0-based, in code points
}

// IsEOF reports whether the token is the end-of-stream sentinel.
func (t Token) IsEOF() bool { return t.Type == EOF }

// OnDefaultChannel reports whether the parser sees the token.
func (t Token) OnDefaultChannel() bool { return t.Channel == DefaultChannel }

// Len returns the number of code points the token covers.
func (t Token) Len() int { return t.Stop - t.Start + 1 }

// Synthetic builds an empty token of the given type positioned at anchor.
// Text defaults to "<NAME>" for the type's symbolic name when text is empty.
func Synthetic(typ Type, ch Channel, text string, anchor Token, vocab Vocabulary) Token {
	if text == "" {
		text = "<" + vocab.SymbolicName(typ) + ">"
	}
	return Token{
		Start:   anchor.Start,
		Stop:    anchor.Start - 1,
		Text:    text,
		Type:    typ,
		Channel: ch,
		Line:    anchor.Line,
		Column:  anchor.Column,
	}
}
