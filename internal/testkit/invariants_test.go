package testkit

import (
	"strings"
	"testing"

	"grun/internal/lexer"
	"grun/internal/source"
	"grun/internal/token"
)

func lex(t *testing.T, input string, keepWS bool) ([]token.Token, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("k.py", input))
	return lexer.Tokenize(file, lexer.Options{KeepWhitespace: keepWS}).Tokens(), file
}

func TestInvariantsHoldForLexerOutput(t *testing.T) {
	inputs := []string{
		"",
		"x = 1\n",
		"def f(a,\n      b):\n\treturn a + b  # sum\n",
		"if x:\n    y = 1\n  z = 2\n",
		"s = '''multi\nline'''\r\nt = \"\\n\"\n",
		"x = $\n",
		"  indented\n",
		"a = (1 +\n     2) \\\n    + 3\n",
	}
	for _, in := range inputs {
		for _, keep := range []bool{false, true} {
			toks, file := lex(t, in, keep)
			if err := CheckTokenInvariants(toks, file); err != nil {
				t.Errorf("input %q (keep ws %v): %v", in, keep, err)
			}
		}
	}
}

func TestInvariantsCatchBrokenStreams(t *testing.T) {
	toks, file := lex(t, "x = 1\n", false)

	broken := append([]token.Token(nil), toks...)
	broken[1].Index = 7
	if err := CheckTokenInvariants(broken, file); err == nil || !strings.Contains(err.Error(), "index") {
		t.Errorf("index gap not reported: %v", err)
	}

	broken = append([]token.Token(nil), toks...)
	broken[0].Text = "y"
	if err := CheckTokenInvariants(broken, file); err == nil || !strings.Contains(err.Error(), "source has") {
		t.Errorf("text mismatch not reported: %v", err)
	}

	broken = append([]token.Token(nil), toks...)
	broken[2].Column = 0
	if err := CheckTokenInvariants(broken, file); err == nil || !strings.Contains(err.Error(), "resolves to offset") {
		t.Errorf("position mismatch not reported: %v", err)
	}

	if err := CheckTokenInvariants(toks[:len(toks)-1], file); err == nil {
		t.Error("missing EOF not reported")
	}
}
