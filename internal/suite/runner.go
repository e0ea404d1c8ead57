package suite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"grun/internal/driver"
	"grun/internal/trace"
)

// Options configure a suite run.
type Options struct {
	Dir            string
	Manifest       Manifest
	Jobs           int  // <= 0 means GOMAXPROCS
	Update         bool // rewrite golden files from actual output
	Cache          *Cache
	ToolVersion    string // part of every cache key
	MaxDiagnostics int
	Progress       ProgressSink
	Heartbeat      time.Duration // trace heartbeat interval, 0 disables
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Case     Case
	Status   Status
	Exit     int
	Detail   string // why it failed, empty on success
	Stderr   string // harness diagnostics, kept for failures
	Duration time.Duration
}

// Run executes every case of the suite. Cases run in parallel but the
// returned report lists them sorted by relative path. An error is returned
// only for problems with the suite itself (discovery, cancellation).
func Run(ctx context.Context, opts Options) (*Report, error) {
	cases, err := Discover(opts.Dir, opts.Manifest)
	if err != nil {
		return nil, fmt.Errorf("discover cases in %s: %w", opts.Dir, err)
	}
	sink := opts.Progress
	if sink == nil {
		sink = nopSink{}
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "suite")
	span.WithExtra("dir", opts.Dir).WithExtra("cases", strconv.Itoa(len(cases)))
	running := newInflight()
	hb := trace.StartHeartbeat(trace.FromContext(ctx), opts.Heartbeat, running.String)
	defer hb.Stop()

	for _, c := range cases {
		sink.OnEvent(Event{Case: c.Rel, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]CaseResult, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(cases))))
	for i, c := range cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runCase(gctx, c, opts, sink, running)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End(err.Error())
		return nil, err
	}

	report := &Report{Dir: opts.Dir, Manifest: opts.Manifest, Results: results}
	span.End(fmt.Sprintf("failed=%d", report.Failures()))
	return report, nil
}

func runCase(ctx context.Context, c Case, opts Options, sink ProgressSink, running *inflight) CaseResult {
	ctx, span := trace.Start(ctx, trace.ScopeCase, "case:"+c.Rel)
	running.add(c.Rel)
	defer running.remove(c.Rel)
	started := time.Now()
	sink.OnEvent(Event{Case: c.Rel, Status: StatusRunning})

	res := executeCase(ctx, c, opts)
	res.Case = c
	res.Duration = time.Since(started)

	span.WithExtra("exit", strconv.Itoa(res.Exit)).End(string(res.Status))
	sink.OnEvent(Event{Case: c.Rel, Status: res.Status, Detail: res.Detail, Elapsed: res.Duration})
	return res
}

func executeCase(ctx context.Context, c Case, opts Options) CaseResult {
	m := opts.Manifest
	input, err := os.ReadFile(c.Path)
	if err != nil {
		return CaseResult{Status: StatusError, Exit: 1, Detail: err.Error()}
	}
	golden, err := os.ReadFile(c.Golden)
	missingGolden := errors.Is(err, os.ErrNotExist)
	if err != nil && !missingGolden {
		return CaseResult{Status: StatusError, Exit: 1, Detail: err.Error()}
	}

	var key Digest
	useCache := opts.Cache != nil && !opts.Update && !missingGolden
	if useCache {
		key = CaseKey(m, opts.ToolVersion, input, golden, c.Expect)
		if entry, ok, err := opts.Cache.Get(key); err == nil && ok {
			trace.Point(trace.FromContext(ctx), trace.ScopeDetail, "cache-hit", c.Rel, trace.CurrentSpan(ctx).SpanID)
			return CaseResult{Status: StatusCached, Exit: entry.Exit}
		}
	}

	var stdout, stderr bytes.Buffer
	exit := driver.Run(ctx, []string{c.Path}, driver.Config{
		Stdout:         &stdout,
		Stderr:         &stderr,
		Grammar:        m.Grammar,
		Encoding:       m.Encoding,
		KeepWhitespace: m.KeepWS,
		MaxDiagnostics: opts.MaxDiagnostics,
	})
	res := CaseResult{Exit: exit, Stderr: stderr.String()}

	if opts.Update {
		if err := os.WriteFile(c.Golden, stdout.Bytes(), 0o644); err != nil {
			res.Status, res.Detail = StatusError, err.Error()
			return res
		}
		golden, missingGolden = stdout.Bytes(), false
	}

	switch {
	case exit != c.Expect:
		res.Status = StatusFail
		res.Detail = fmt.Sprintf("exit code %d, want %d", exit, c.Expect)
	case missingGolden:
		res.Status = StatusFail
		res.Detail = "missing golden file " + c.Rel + GoldenExt
	case !bytes.Equal(stdout.Bytes(), golden):
		res.Status = StatusFail
		res.Detail = FirstDiff(golden, stdout.Bytes())
	case opts.Update:
		res.Status = StatusUpdated
	default:
		res.Status = StatusPass
	}

	if res.Status == StatusPass && useCache {
		entry := &CacheEntry{Case: c.Rel, Exit: exit, Tokens: bytes.Count(stdout.Bytes(), []byte{'\n'})}
		if err := opts.Cache.Put(key, entry); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeDetail, "cache-put-failed", err.Error(), trace.CurrentSpan(ctx).SpanID)
		}
	}
	return res
}
