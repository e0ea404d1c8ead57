package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowCodes bool // добавить [LEX1001] перед сообщением
	ShowNotes bool
}
