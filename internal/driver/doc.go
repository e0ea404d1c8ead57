// Package driver runs one harness pass over a file: tokenize, dump every
// token to stdout, parse, and turn the syntax error count into an exit code.
package driver
