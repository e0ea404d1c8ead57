// Package lexer turns Python source text into the token stream the harness
// dumps and the parser consumes.
//
// Lexing happens in two layers. The raw scanner (lexer.go and the scan_*
// files) splits the decoded text into NAME, NUMBER, STRING, OP, NEWLINE,
// COMMENT, WS, EXPLICIT_LINE_JOINING and ERRORTOKEN tokens, one code point
// at a time. The indentation layer (indent.go) sits on top, keeps a stack of
// indentation widths and synthesises INDENT, DEDENT and trailing NEWLINE
// tokens, hiding the NEWLINEs that do not end a logical line.
//
// Offsets, lines and columns are counted in code points. Lines advance on
// '\n' only.
package lexer
