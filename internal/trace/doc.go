// Package trace is the structured event log of the inlinable toolchain.
//
// Sessions, passes and individual query requests emit begin/end spans;
// detected request cycles emit point events. Events go to a stream
// (text, NDJSON or chrome://tracing JSON), to an in-memory ring that is
// dumped on a crash, or to both.
//
// Enable it from the command line:
//
//	inlinable interface --trace=- --trace-level=detail lib.swift
//
// Levels: off, error (points only), phase (driver and passes), detail
// (plus every evaluated request), debug (everything).
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
