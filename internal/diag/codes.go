package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                  Code = 1000
	LexUnknownChar           Code = 1001
	LexUnterminatedString    Code = 1002
	LexBadNumber             Code = 1003
	LexInconsistentTabs      Code = 1004
	LexInconsistentDedent    Code = 1005
	LexUnexpectedIndent      Code = 1006
	LexUnmatchedBracket      Code = 1007
	LexDanglingLineJoin      Code = 1008
	LexUnterminatedTripleStr Code = 1009

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynMismatchedInput    Code = 2002
	SynExtraneousInput    Code = 2003
	SynMissingToken       Code = 2004
	SynNoViableAlt        Code = 2005
	SynForeignGrammar     Code = 2006
	SynTooManyErrors      Code = 2007
	SynExpectExpression   Code = 2008
	SynExpectIndentedBody Code = 2009

	// Ввод/вывод
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		LexInfo:                  "Lexical information",
		LexUnknownChar:           "Token recognition error",
		LexUnterminatedString:    "Unterminated string literal",
		LexBadNumber:             "Malformed number literal",
		LexInconsistentTabs:      "Inconsistent use of tabs and spaces in indentation",
		LexInconsistentDedent:    "Inconsistent dedent",
		LexUnexpectedIndent:      "First statement indented",
		LexUnmatchedBracket:      "Unmatched closing bracket",
		LexDanglingLineJoin:      "Line continuation at end of file",
		LexUnterminatedTripleStr: "Unterminated triple-quoted string",
		SynInfo:                  "Syntax information",
		SynUnexpectedToken:       "Unexpected token",
		SynMismatchedInput:       "Mismatched input",
		SynExtraneousInput:       "Extraneous input",
		SynMissingToken:          "Missing token",
		SynNoViableAlt:           "No viable alternative",
		SynForeignGrammar:        "Syntax error reported by grammar backend",
		SynTooManyErrors:         "Too many syntax errors",
		SynExpectExpression:      "Expected expression",
		SynExpectIndentedBody:    "Expected an indented block",
		IOLoadFileError:          "I/O load file error",
		IODecodeError:            "Input decoding error",
		ObsInfo:                  "Observability information",
		ObsTimings:               "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// IsSyntax reports whether c belongs to the lexical or syntactic range.
// Both count towards a run's syntax error total.
func (c Code) IsSyntax() bool {
	return c >= 1000 && c < 3000
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
