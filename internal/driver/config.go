package driver

import (
	"io"
	"os"

	"grun/internal/source"
)

// DefaultGrammar is used when Config.Grammar is empty.
const DefaultGrammar = "python"

// Config describes one harness run. The zero value writes to the process
// streams and uses the Python grammar with strict UTF-8 input.
type Config struct {
	Stdout io.Writer // token dump
	Stderr io.Writer // usage, Error: lines and diagnostics

	Grammar        string
	Encoding       string
	MaxDiagnostics int  // per phase; 0 means unbounded
	KeepWhitespace bool // surface WS tokens on the hidden channel
	Color          bool
	ShowCodes      bool // prefix diagnostics with [SYN2001] etc
	Timings        bool // print phase timings to Stderr
}

func (c Config) withDefaults() Config {
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	if c.Grammar == "" {
		c.Grammar = DefaultGrammar
	}
	if c.Encoding == "" {
		c.Encoding = source.EncodingUTF8
	}
	return c
}
