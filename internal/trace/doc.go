// Package trace records what the harness is doing while it runs.
//
// Spans mark the lifetime of a harness run, its phases (tokenize, dump,
// parse) and, under `grun suite`, every conformance case. Events go to a
// stream (stderr or a file, text or NDJSON) and optionally to an in-memory
// ring that is dumped when a run panics.
//
// # Usage
//
//	grun --trace=- --trace-level=phase testdata/ok.py
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: ring only, dumped on crash
//   - LevelPhase: driver and phase boundaries
//   - LevelDetail: plus suite cases
//   - LevelDebug: everything, including point events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "parse")
//	defer span.End("")
//
// Tracing never writes to stdout: the token dump owns it.
package trace
