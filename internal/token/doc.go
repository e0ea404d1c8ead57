// Package token defines the grammar-neutral token record shared by lexers,
// parsers and the token dump.
// Invariants:
//   - Token.Start/Stop are inclusive code point offsets; Stop >= Start-1.
//     Synthetic tokens (EOF, INDENT, DEDENT) are empty: Stop == Start-1.
//   - Token.Line is 1-based, Token.Column is 0-based.
//   - A Stream assigns Index itself, so indices are dense and start at 0,
//     and the last token of a filled Stream is always EOF.
//   - Type EOF renders as "EOF" whatever the grammar's name table says.
package token
