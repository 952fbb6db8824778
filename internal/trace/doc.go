// Package trace records phase events of a lintmap session.
//
// # Usage
//
//	lintmap lint --trace=- --trace-level=file Foo.outline.toml
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped on failure
//   - MultiTracer: combines multiple tracers
//
// # Levels and scopes
//
// Events are tagged with a scope (driver, phase, file, decl). The level
// decides which scopes are emitted: LevelPhase keeps driver and phase
// events, LevelFile adds per-file events, LevelDebug emits everything,
// per-declaration lint calculations included.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "attribute", trace.ParentFrom(ctx))
//	defer span.End(trace.Int("decls", n))
//
// Events carry ordered key/value attributes instead of free-form text, so
// the NDJSON output can be filtered by file or declaration.
package trace
