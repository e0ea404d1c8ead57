// Package parser recognises the Python file_input production over the
// default-channel tokens of a lexed file.
//
// The parser builds no tree: it only decides whether the tokens form a valid
// program and reports every syntax error it finds. Recovery follows the
// usual generated-parser strategy. An error is reported once, further
// reports are suppressed until a token is matched again, and the parser
// resynchronises at the end of the offending logical line. Stray INDENT
// tokens are skipped together with their matching DEDENT.
//
// Result.SyntaxErrors is the exact number of reports made.
package parser
