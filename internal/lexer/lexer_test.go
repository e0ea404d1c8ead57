package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"grun/internal/diag"
	"grun/internal/lexer"
	"grun/internal/source"
	"grun/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string, keepWS bool) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", input)
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter, KeepWhitespace: keepWS})
	return lx, reporter
}

// collectAllTokens собирает все токены до EOF включительно
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}

func defaultChannel(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Channel == token.DefaultChannel {
			out = append(out, t)
		}
	}
	return out
}

func tokensToString(tokens []token.Token) string {
	vocab := lexer.Vocabulary()
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%s(%q)", vocab.SymbolicName(tok.Type), tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTypes проверяет типы токенов DEFAULT канала, EOF включительно
func expectTypes(t *testing.T, input string, expected []token.Type) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input, false)
	tokens := defaultChannel(collectAllTokens(lx))

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Type != expected[i] {
			t.Errorf("Token %d: expected %s, got %s (text: %q)", i,
				lexer.Vocabulary().SymbolicName(expected[i]), lexer.Vocabulary().SymbolicName(tok.Type), tok.Text)
		}
	}
	return tokens
}

func TestSimpleAssignment(t *testing.T) {
	tokens := expectTypes(t, "x = 1\n", []token.Type{lexer.Name, lexer.Op, lexer.Number, lexer.Newline, token.EOF})
	want := []struct {
		start, stop, line, col int
		text                   string
	}{
		{0, 0, 1, 0, "x"},
		{2, 2, 1, 2, "="},
		{4, 4, 1, 4, "1"},
		{5, 5, 1, 5, "\n"},
		{6, 5, 2, 0, "<EOF>"},
	}
	for i, w := range want {
		got := tokens[i]
		if got.Start != w.start || got.Stop != w.stop || got.Line != w.line || got.Column != w.col || got.Text != w.text {
			t.Errorf("token %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	lx, reporter := makeTestLexer("", false)
	tokens := collectAllTokens(lx)
	if len(tokens) != 1 {
		t.Fatalf("expected only EOF, got %v", tokensToString(tokens))
	}
	eof := tokens[0]
	if eof.Start != 0 || eof.Stop != -1 || eof.Line != 1 || eof.Column != 0 || eof.Text != token.EOFText {
		t.Fatalf("unexpected EOF %+v", eof)
	}
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", reporter.ErrorMessages())
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x\n", false)
	collectAllTokens(lx)
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Type != token.EOF {
			t.Fatalf("expected EOF after end, got %v", tok)
		}
	}
}

func TestIndentDedent(t *testing.T) {
	tokens := expectTypes(t, "if x:\n    y\nz\n", []token.Type{
		lexer.Name, lexer.Name, lexer.Op, lexer.Newline,
		lexer.Indent, lexer.Name, lexer.Newline,
		lexer.Dedent, lexer.Name, lexer.Newline, token.EOF,
	})
	indent := tokens[4]
	if indent.Start != 10 || indent.Stop != 9 || indent.Text != "<INDENT>" || indent.Line != 2 || indent.Column != 4 {
		t.Errorf("unexpected INDENT %+v", indent)
	}
	dedent := tokens[7]
	if dedent.Start != 12 || dedent.Stop != 11 || dedent.Text != "<DEDENT>" || dedent.Line != 3 || dedent.Column != 0 {
		t.Errorf("unexpected DEDENT %+v", dedent)
	}
}

func TestNestedDedentsAtEOF(t *testing.T) {
	expectTypes(t, "if a:\n  if b:\n    c", []token.Type{
		lexer.Name, lexer.Name, lexer.Op, lexer.Newline,
		lexer.Indent, lexer.Name, lexer.Name, lexer.Op, lexer.Newline,
		lexer.Indent, lexer.Name, lexer.Newline,
		lexer.Dedent, lexer.Dedent, token.EOF,
	})
}

func TestMissingTrailingNewlineIsSynthesised(t *testing.T) {
	tokens := expectTypes(t, "x", []token.Type{lexer.Name, lexer.Newline, token.EOF})
	nl := tokens[1]
	if nl.Text != "<NEWLINE>" || nl.Start != 1 || nl.Stop != 0 || nl.Column != 1 {
		t.Errorf("unexpected trailing NEWLINE %+v", nl)
	}
}

func TestBlankLinesAndCommentsAreHidden(t *testing.T) {
	lx, _ := makeTestLexer("x\n\n# c\ny\n", false)
	all := collectAllTokens(lx)
	var hidden []string
	for _, tok := range all {
		if tok.Channel == token.HiddenChannel {
			hidden = append(hidden, lexer.Vocabulary().SymbolicName(tok.Type))
		}
	}
	if got := strings.Join(hidden, ","); got != "NEWLINE,NEWLINE,COMMENT" {
		t.Fatalf("hidden tokens = %s", got)
	}
	expectTypes(t, "x\n\n# c\ny\n", []token.Type{lexer.Name, lexer.Newline, lexer.Name, lexer.Newline, token.EOF})
}

func TestLeadingNewlinesHidden(t *testing.T) {
	expectTypes(t, "\n\nx\n", []token.Type{lexer.Name, lexer.Newline, token.EOF})
	expectTypes(t, "\n\n", []token.Type{token.EOF})
}

func TestNewlineInsideBracketsHidden(t *testing.T) {
	expectTypes(t, "f(1,\n  2)\n", []token.Type{
		lexer.Name, lexer.Op, lexer.Number, lexer.Op, lexer.Number, lexer.Op, lexer.Newline, token.EOF,
	})
}

func TestExplicitLineJoining(t *testing.T) {
	lx, _ := makeTestLexer("x = 1 + \\\n    2\n", false)
	all := collectAllTokens(lx)
	var join *token.Token
	for i := range all {
		if all[i].Type == lexer.ExplicitLineJoining {
			join = &all[i]
		}
	}
	if join == nil || join.Channel != token.HiddenChannel || join.Text != "\\\n" {
		t.Fatalf("expected hidden line join, got %v", tokensToString(all))
	}
	expectTypes(t, "x = 1 + \\\n    2\n", []token.Type{
		lexer.Name, lexer.Op, lexer.Number, lexer.Op, lexer.Number, lexer.Newline, token.EOF,
	})
}

func TestFirstStatementIndented(t *testing.T) {
	lx, reporter := makeTestLexer("  x\n", false)
	tokens := defaultChannel(collectAllTokens(lx))
	if len(tokens) != 4 || tokens[0].Type != lexer.Indent {
		t.Fatalf("unexpected tokens %v", tokensToString(tokens))
	}
	if tokens[0].Text != " ERROR: first statement indented" {
		t.Errorf("INDENT text = %q", tokens[0].Text)
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != diag.LexUnexpectedIndent {
		t.Fatalf("diagnostics = %v", reporter.ErrorMessages())
	}
	if reporter.diagnostics[0].Message != "LEXER ERROR: first statement indented" {
		t.Errorf("message = %q", reporter.diagnostics[0].Message)
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, reporter := makeTestLexer("$\n", false)
	tokens := collectAllTokens(lx)
	if tokens[0].Type != lexer.ErrorToken || tokens[0].Text != "$" {
		t.Fatalf("unexpected tokens %v", tokensToString(tokens))
	}
	if len(reporter.diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", reporter.ErrorMessages())
	}
	d := reporter.diagnostics[0]
	if d.Code != diag.LexUnknownChar || d.Message != "LEXER ERROR: token recognition error at: '$'" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestMixedTabsAndSpaces(t *testing.T) {
	lx, reporter := makeTestLexer("if x:\n\tif y:\n\t    z\n", false)
	tokens := defaultChannel(collectAllTokens(lx))
	var errTok *token.Token
	for i := range tokens {
		if tokens[i].Type == lexer.ErrorToken {
			errTok = &tokens[i]
		}
	}
	if errTok == nil || errTok.Text != " ERROR: inconsistent use of tabs and spaces in indentation" {
		t.Fatalf("expected indentation ERRORTOKEN, got %v", tokensToString(tokens))
	}
	if errTok.Stop != errTok.Start-1 {
		t.Errorf("ERRORTOKEN should be empty: %+v", errTok)
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != diag.LexInconsistentTabs {
		t.Fatalf("diagnostics = %v", reporter.ErrorMessages())
	}
}

func TestInconsistentDedent(t *testing.T) {
	lx, reporter := makeTestLexer("if x:\n    y\n  z\n", false)
	tokens := defaultChannel(collectAllTokens(lx))
	found := false
	for _, tok := range tokens {
		if tok.Type == lexer.ErrorToken && tok.Text == " ERROR: inconsistent dedent" {
			found = true
		}
		if tok.Type == lexer.Dedent {
			t.Errorf("no DEDENT expected, got %v", tokensToString(tokens))
		}
	}
	if !found {
		t.Fatalf("expected dedent ERRORTOKEN, got %v", tokensToString(tokens))
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != diag.LexInconsistentDedent {
		t.Fatalf("diagnostics = %v", reporter.ErrorMessages())
	}
}

func TestTabWidthAndFormFeed(t *testing.T) {
	// form feed сбрасывает ширину отступа
	expectTypes(t, "if x:\n\f    y\n    z\n", []token.Type{
		lexer.Name, lexer.Name, lexer.Op, lexer.Newline,
		lexer.Indent, lexer.Name, lexer.Newline,
		lexer.Name, lexer.Newline,
		lexer.Dedent, token.EOF,
	})
}

func TestKeepWhitespace(t *testing.T) {
	lx, _ := makeTestLexer("x = 1\n", true)
	tokens := collectAllTokens(lx)
	var types []string
	for _, tok := range tokens {
		types = append(types, lexer.Vocabulary().SymbolicName(tok.Type))
		if tok.Type == lexer.WS && tok.Channel != token.HiddenChannel {
			t.Errorf("WS must be hidden: %+v", tok)
		}
	}
	if got := strings.Join(types, " "); got != "NAME WS OP WS NUMBER NEWLINE EOF" {
		t.Fatalf("types = %s", got)
	}
}

func TestCRLFLinesAndColumns(t *testing.T) {
	tokens := expectTypes(t, "x\r\ny\r\n", []token.Type{lexer.Name, lexer.Newline, lexer.Name, lexer.Newline, token.EOF})
	if tokens[1].Text != "\r\n" {
		t.Errorf("NEWLINE text = %q", tokens[1].Text)
	}
	if y := tokens[2]; y.Start != 3 || y.Line != 2 || y.Column != 0 {
		t.Errorf("unexpected y %+v", y)
	}
}

func TestUnicodeOffsetsAreCodePoints(t *testing.T) {
	tokens := expectTypes(t, "é = 'ü'\n", []token.Type{lexer.Name, lexer.Op, lexer.String, lexer.Newline, token.EOF})
	if eq := tokens[1]; eq.Start != 2 || eq.Column != 2 {
		t.Errorf("unexpected '=' %+v", eq)
	}
	if s := tokens[2]; s.Start != 4 || s.Stop != 6 {
		t.Errorf("unexpected string %+v", s)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{`'a'`, `'a'`},
		{`"a\"b"`, `"a\"b"`},
		{`r'a\'b'`, `r'a\'b'`},
		{`b"bytes"`, `b"bytes"`},
		{`Rb'x'`, `Rb'x'`},
		{`f"{a}"`, `f"{a}"`},
		{"'''multi\nline'''", "'''multi\nline'''"},
		{`""""quoted" inside"""`, `""""quoted" inside"""`},
		{"'a\\\nb'", "'a\\\nb'"},
		{`''`, `''`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, reporter := makeTestLexer(tt.input, false)
			tok := lx.Next()
			if tok.Type != lexer.String || tok.Text != tt.text {
				t.Fatalf("got %s %q, want STRING %q", lexer.Vocabulary().SymbolicName(tok.Type), tok.Text, tt.text)
			}
			if len(reporter.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics %v", reporter.ErrorMessages())
			}
		})
	}
}

func TestStringPrefixFallsBackToName(t *testing.T) {
	expectTypes(t, "bar'x'\n", []token.Type{lexer.Name, lexer.String, lexer.Newline, token.EOF})
}

func TestUnterminatedString(t *testing.T) {
	lx, reporter := makeTestLexer("'abc\n", false)
	tokens := defaultChannel(collectAllTokens(lx))
	if got := tokensToString(tokens); got != `[ERRORTOKEN("'"), NAME("abc"), NEWLINE("\n"), EOF("<EOF>")]` {
		t.Fatalf("tokens = %s", got)
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("diagnostics = %v", reporter.ErrorMessages())
	}
}

func TestUnterminatedTripleQuoteFallsBack(t *testing.T) {
	lx, _ := makeTestLexer("'''abc", false)
	tokens := defaultChannel(collectAllTokens(lx))
	if got := tokensToString(tokens); got != `[STRING("''"), ERRORTOKEN("'"), NAME("abc"), NEWLINE("<NEWLINE>"), EOF("<EOF>")]` {
		t.Fatalf("tokens = %s", got)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", `[NUMBER("0")]`},
		{"1_000", `[NUMBER("1_000")]`},
		{"0x_ff", `[NUMBER("0x_ff")]`},
		{"0o17", `[NUMBER("0o17")]`},
		{"0b101", `[NUMBER("0b101")]`},
		{"3.14", `[NUMBER("3.14")]`},
		{".5", `[NUMBER(".5")]`},
		{"1.", `[NUMBER("1.")]`},
		{"1e10", `[NUMBER("1e10")]`},
		{"1.5E-3", `[NUMBER("1.5E-3")]`},
		{"2j", `[NUMBER("2j")]`},
		{"1e", `[NUMBER("1"), NAME("e")]`},
		{"0x", `[NUMBER("0"), NAME("x")]`},
		{"1_", `[NUMBER("1"), NAME("_")]`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input, false)
			tokens := defaultChannel(collectAllTokens(lx))
			// без синтетического NEWLINE и EOF
			tokens = tokens[:len(tokens)-2]
			if got := tokensToString(tokens); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOperatorsGreedy(t *testing.T) {
	lx, _ := makeTestLexer("a **= b // c -> d := e ... != f <<= g @ h ~i", false)
	var ops []string
	for _, tok := range collectAllTokens(lx) {
		if tok.Type == lexer.Op {
			ops = append(ops, tok.Text)
		}
	}
	if got := strings.Join(ops, " "); got != "**= // -> := ... != <<= @ ~" {
		t.Fatalf("ops = %q", got)
	}
}

func TestBangAloneIsErrorToken(t *testing.T) {
	expectTypes(t, "!x\n", []token.Type{lexer.ErrorToken, lexer.Name, lexer.Newline, token.EOF})
}

func TestTokenizeFillsStream(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.py", "pass\n"))
	stream := lexer.Tokenize(file, lexer.Options{})
	toks := stream.Tokens()
	for i, tok := range toks {
		if tok.Index != i {
			t.Fatalf("token %d has index %d", i, tok.Index)
		}
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("last token is not EOF")
	}
}
