package driver

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"grun/internal/diagfmt"
	"grun/internal/grammar"
	"grun/internal/observ"
	"grun/internal/trace"
)

// UsageMessage is printed when the argument count is wrong.
const UsageMessage = "Error: Please provide an input file path"

// Result summarizes one harness pass.
type Result struct {
	Path         string
	Tokens       int
	LexerErrors  int // reported, not counted in the exit code
	SyntaxErrors int
	Statements   int
	Timings      observ.Report
}

// Run is the harness entry point. It returns 1 on usage, I/O, decoding or
// collaborator failures (including panics) after printing "Error: <msg>",
// and otherwise the exact number of syntax errors the parser reported.
func Run(ctx context.Context, args []string, cfg Config) (code int) {
	cfg = cfg.withDefaults()
	if len(args) != 1 {
		fmt.Fprintln(cfg.Stderr, UsageMessage)
		return 1
	}

	defer func() {
		if r := recover(); r != nil {
			dumpCrashTrace(ctx, cfg.Stderr)
			fmt.Fprintf(cfg.Stderr, "Error: %v\n", r)
			code = 1
		}
	}()

	res, err := Execute(ctx, args[0], cfg)
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "Error: %v\n", err)
		return 1
	}
	return res.SyntaxErrors
}

// Execute performs tokenize, dump and parse for path. Diagnostics of each
// phase go to cfg.Stderr as soon as the phase ends.
func Execute(ctx context.Context, path string, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "run")
	span.WithExtra("path", path).WithExtra("grammar", cfg.Grammar)

	res, err := execute(ctx, path, cfg)
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	span.End("exit=" + strconv.Itoa(res.SyntaxErrors))
	return res, nil
}

func execute(ctx context.Context, path string, cfg Config) (*Result, error) {
	g, err := grammar.Lookup(cfg.Grammar)
	if err != nil {
		return nil, err
	}
	timer := observ.NewTimer()
	pretty := diagfmt.PrettyOpts{Color: cfg.Color, ShowCodes: cfg.ShowCodes}

	idx := timer.Begin("tokenize")
	tr, err := Tokenize(ctx, g, path, cfg)
	if err != nil {
		return nil, err
	}
	timer.End(idx, strconv.Itoa(tr.Stream.Len())+" tokens")
	if err := diagfmt.Pretty(cfg.Stderr, tr.Bag, tr.FileSet, pretty); err != nil {
		return nil, err
	}

	idx = timer.Begin("dump")
	if err := dump(ctx, cfg.Stdout, g, tr); err != nil {
		return nil, err
	}
	timer.End(idx, "")

	idx = timer.Begin("parse")
	pr, err := Parse(ctx, g, tr, cfg)
	if err != nil {
		return nil, err
	}
	timer.End(idx, strconv.Itoa(pr.SyntaxErrors)+" errors")
	if err := diagfmt.Pretty(cfg.Stderr, pr.Bag, tr.FileSet, pretty); err != nil {
		return nil, err
	}

	res := &Result{
		Path:         path,
		Tokens:       tr.Stream.Len(),
		LexerErrors:  tr.LexerErrors,
		SyntaxErrors: pr.SyntaxErrors,
		Statements:   pr.Statements,
		Timings:      timer.Report(),
	}
	if cfg.Timings {
		io.WriteString(cfg.Stderr, timer.Summary()) //nolint:errcheck
	}
	return res, nil
}

func dump(ctx context.Context, w io.Writer, g grammar.Grammar, tr *TokenizeResult) error {
	_, span := trace.Start(ctx, trace.ScopePhase, "dump")
	err := diagfmt.WriteTokens(w, tr.Stream.Tokens(), g.Vocabulary())
	if err != nil {
		span.End(err.Error())
		return fmt.Errorf("write tokens: %w", err)
	}
	span.End("")
	return nil
}

// dumpCrashTrace prints the events kept in the ring tracer, if any, so a
// panic report shows what the run was doing.
func dumpCrashTrace(ctx context.Context, w io.Writer) {
	ring := trace.RingOf(trace.FromContext(ctx))
	if ring == nil {
		return
	}
	fmt.Fprintln(w, "trace (most recent last):")
	_ = ring.Dump(w, trace.FormatText) //nolint:errcheck
}
