package lexer

import "grun/internal/token"

// Token types of the Python vocabulary. Keywords are lexed as Name and
// operators and delimiters as Op; the parser tells them apart by text.
const (
	Indent token.Type = iota + 1
	Dedent
	Name
	Number
	String
	Op
	Newline
	Comment
	WS
	ExplicitLineJoining
	ErrorToken
)

var symbolicNames = []string{
	"<INVALID>",
	"INDENT",
	"DEDENT",
	"NAME",
	"NUMBER",
	"STRING",
	"OP",
	"NEWLINE",
	"COMMENT",
	"WS",
	"EXPLICIT_LINE_JOINING",
	"ERRORTOKEN",
}

var channelNames = []string{
	"DEFAULT_TOKEN_CHANNEL",
	"HIDDEN",
}

var vocabulary = token.NewVocabulary(symbolicNames, channelNames)

// Vocabulary returns the symbolic and channel name tables of the lexer.
func Vocabulary() token.Vocabulary {
	return vocabulary
}
