// Package diag defines the diagnostic model shared by the lexers, parsers
// and the driver.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEX1001, SYN2002, ...), a short Message, the Primary span and
// optional Notes.
//
// Phases emit through a Reporter and never format anything themselves.
// BagReporter stores into a bounded Bag; CountingReporter sits in front of it
// and keeps the exact number of errors, which is what the driver turns into
// the process exit status. Rendering lives in internal/diagfmt.
package diag
