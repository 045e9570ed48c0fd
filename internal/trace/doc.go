// Package trace records what the canonicalizer and its driver are doing.
//
// Enable it from the CLI:
//
//	canon check --trace=- --trace-level=detail src/
//
// Tracers: Nop (disabled), StreamTracer (writes every event as it happens),
// RingTracer (keeps the last N events for a post-mortem dump) and
// MultiTracer (fan-out).
//
// Levels gate scopes: phase shows driver and pass spans, detail adds one span
// per canonicalized block, debug shows everything.
//
// A tracer travels through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "canonicalize", trace.CurrentSpan(ctx))
//	defer span.End("")
package trace
