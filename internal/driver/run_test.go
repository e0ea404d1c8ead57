package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"grun/internal/grammar"
	"grun/internal/parser"
	"grun/internal/source"
	"grun/internal/token"
	"grun/internal/trace"
)

type panicky struct{}

func (panicky) Name() string                 { return "panicky" }
func (panicky) Description() string          { return "always panics" }
func (panicky) Vocabulary() token.Vocabulary { return token.NewVocabulary(nil, nil) }
func (panicky) Tokenize(*source.File, grammar.Options) (*token.Stream, error) {
	panic("boom")
}
func (panicky) Parse(context.Context, *source.File, *token.Stream, grammar.Options) (*parser.Result, error) {
	return &parser.Result{}, nil
}

// touching counts every call that would need the input file.
type touching struct{ calls *atomic.Int32 }

var touchCalls atomic.Int32

func (touching) Name() string                 { return "touching" }
func (touching) Description() string          { return "counts file accesses" }
func (touching) Vocabulary() token.Vocabulary { return token.NewVocabulary(nil, nil) }
func (g touching) Tokenize(*source.File, grammar.Options) (*token.Stream, error) {
	g.calls.Add(1)
	return nil, os.ErrPermission
}
func (g touching) Parse(context.Context, *source.File, *token.Stream, grammar.Options) (*parser.Result, error) {
	g.calls.Add(1)
	return &parser.Result{}, nil
}

func init() {
	grammar.Register(panicky{})
	grammar.Register(touching{calls: &touchCalls})
}

type harness struct {
	stdout, stderr bytes.Buffer
	cfg            Config
}

func newHarness() *harness {
	h := &harness{}
	h.cfg = Config{Stdout: &h.stdout, Stderr: &h.stderr}
	return h
}

func (h *harness) run(t *testing.T, ctx context.Context, args ...string) int {
	t.Helper()
	return Run(ctx, args, h.cfg)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestUsage(t *testing.T) {
	locked := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	a := filepath.Join(locked, "a.py")
	b := filepath.Join(locked, "b.py")
	require.NoError(t, os.WriteFile(a, []byte("x = 1\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("y = 2\n"), 0o600))
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	for _, args := range [][]string{nil, {}, {a, b}, {a, b, a}} {
		before := touchCalls.Load()
		h := newHarness()
		h.cfg.Grammar = "touching"
		code := h.run(t, context.Background(), args...)
		require.Equal(t, 1, code)
		require.Equal(t, UsageMessage+"\n", h.stderr.String())
		require.Empty(t, h.stdout.String())
		require.Equal(t, before, touchCalls.Load(), "grammar reached with %d args", len(args))
	}
}

func TestMissingFile(t *testing.T) {
	h := newHarness()
	code := h.run(t, context.Background(), filepath.Join(t.TempDir(), "nope.py"))
	require.Equal(t, 1, code)
	require.True(t, strings.HasPrefix(h.stderr.String(), "Error: "), h.stderr.String())
	require.Empty(t, h.stdout.String())
}

func TestEmptyFile(t *testing.T) {
	h := newHarness()
	code := h.run(t, context.Background(), writeFile(t, "empty.py", ""))
	require.Equal(t, 0, code)
	require.Equal(t, "[@0,0:-1='<EOF>',<EOF>,1:0]\n", h.stdout.String())
	require.Empty(t, h.stderr.String())
}

func TestSimpleAssignment(t *testing.T) {
	h := newHarness()
	code := h.run(t, context.Background(), writeFile(t, "x.py", "x = 1\n"))
	require.Equal(t, 0, code)
	want := strings.Join([]string{
		"[@0,0:0='x',<NAME>,1:0]",
		"[@1,2:2='=',<OP>,1:2]",
		"[@2,4:4='1',<NUMBER>,1:4]",
		`[@3,5:5='\n',<NEWLINE>,1:5]`,
		"[@4,6:5='<EOF>',<EOF>,2:0]",
	}, "\n") + "\n"
	require.Equal(t, want, h.stdout.String())
}

func TestHiddenChannelClause(t *testing.T) {
	h := newHarness()
	code := h.run(t, context.Background(), writeFile(t, "c.py", "# hi\nx\n"))
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSuffix(h.stdout.String(), "\n"), "\n")
	require.Equal(t, "[@0,0:3='# hi',<COMMENT>,channel=HIDDEN,1:0]", lines[0])
	for _, line := range lines[1:] {
		if strings.Contains(line, "<NAME>") {
			require.NotContains(t, line, "channel=")
		}
	}
	require.True(t, strings.HasSuffix(lines[len(lines)-1], ",<EOF>,3:0]"), lines[len(lines)-1])
}

func TestExitCodeIsErrorCount(t *testing.T) {
	h := newHarness()
	code := h.run(t, context.Background(), writeFile(t, "bad.py", "x = = 1\ny = = 2\nz = = 3\n"))
	require.Equal(t, 3, code)
	errOut := h.stderr.String()
	require.Contains(t, errOut, "line 1:4 ")
	require.Contains(t, errOut, "line 2:4 ")
	require.Contains(t, errOut, "line 3:4 ")
	require.NotContains(t, errOut, "Error:")

	// дамп печатается целиком даже при ошибках
	require.Equal(t, 16, strings.Count(h.stdout.String(), "\n"))
}

func TestLexerErrorsAreReported(t *testing.T) {
	h := newHarness()
	code := h.run(t, context.Background(), writeFile(t, "lex.py", "x = $\n"))
	require.NotZero(t, code)
	require.Contains(t, h.stderr.String(), "LEXER ERROR: token recognition error at: '$'")
	require.Contains(t, h.stdout.String(), "<ERRORTOKEN>")
}

func TestDecodeFailure(t *testing.T) {
	h := newHarness()
	code := h.run(t, context.Background(), writeFile(t, "bin.py", "x = '\xff'\n"))
	require.Equal(t, 1, code)
	require.Contains(t, h.stderr.String(), "Error: ")
	require.Contains(t, h.stderr.String(), "can't decode byte 0xff")
	require.Empty(t, h.stdout.String())
}

func TestLatin1Encoding(t *testing.T) {
	h := newHarness()
	h.cfg.Encoding = "latin1"
	code := h.run(t, context.Background(), writeFile(t, "l1.py", "s = '\xe9'\n"))
	require.Equal(t, 0, code)
	require.Contains(t, h.stdout.String(), "[@2,4:6=''é'',<STRING>,1:4]")
}

func TestUnknownGrammar(t *testing.T) {
	h := newHarness()
	h.cfg.Grammar = "cobol"
	code := h.run(t, context.Background(), writeFile(t, "x.py", "x\n"))
	require.Equal(t, 1, code)
	require.Contains(t, h.stderr.String(), "Error: unknown grammar")
}

func TestPanicIsFailure(t *testing.T) {
	h := newHarness()
	h.cfg.Grammar = "panicky"
	ring := trace.NewRingTracer(16, trace.LevelError)
	ctx := trace.WithTracer(context.Background(), ring)
	code := h.run(t, ctx, writeFile(t, "x.py", "x\n"))
	require.Equal(t, 1, code)
	errOut := h.stderr.String()
	require.Contains(t, errOut, "Error: boom")
	require.Contains(t, errOut, "trace (most recent last):")
	require.Contains(t, errOut, "→ run")
}

func TestCancelledContext(t *testing.T) {
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := h.run(t, ctx, writeFile(t, "x.py", "x = 1\n"))
	require.Equal(t, 1, code)
	require.Contains(t, h.stderr.String(), "Error: context canceled")
}

func TestStarlarkGrammar(t *testing.T) {
	h := newHarness()
	h.cfg.Grammar = "starlark"
	path := writeFile(t, "s.star", "x = = 1\ny = = 2\n")
	require.Equal(t, 1, h.run(t, context.Background(), path))
	require.Contains(t, h.stderr.String(), "line 1:4 ")
}

func TestTimingsAndTrace(t *testing.T) {
	h := newHarness()
	h.cfg.Timings = true
	var traceOut bytes.Buffer
	tr := trace.NewStreamTracer(&traceOut, trace.LevelPhase, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	code := h.run(t, ctx, writeFile(t, "x.py", "x = 1\n"))
	require.Equal(t, 0, code)
	require.Contains(t, h.stderr.String(), "timings:")
	for _, phase := range []string{"tokenize", "dump", "parse"} {
		require.Contains(t, traceOut.String(), "← "+phase)
	}
	require.NotContains(t, h.stdout.String(), "tokenize")
}

func TestLexerDiagnosticsTraced(t *testing.T) {
	h := newHarness()
	var traceOut bytes.Buffer
	tr := trace.NewStreamTracer(&traceOut, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	code := h.run(t, ctx, writeFile(t, "x.py", "x = $\n"))
	require.NotZero(t, code)
	require.Contains(t, traceOut.String(), "LEX1001")
	require.Contains(t, traceOut.String(), "error 1:4 LEXER ERROR: token recognition error at: '$'")
}

func TestExecuteResult(t *testing.T) {
	h := newHarness()
	res, err := Execute(context.Background(), writeFile(t, "x.py", "x = 1\nif x:\n    y = 2\n"), h.cfg)
	require.NoError(t, err)
	require.Equal(t, 0, res.SyntaxErrors)
	require.Equal(t, 2, res.Statements)
	require.Len(t, res.Timings.Phases, 3)
}
