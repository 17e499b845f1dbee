// Package trace records match traces from an instrumented matcher.
//
// A matcher brackets every rule attempt with a span:
//
//	t := trace.FromContext(ctx)
//	span := trace.Begin(t, "expr", pos)
//	if end, ok := matchExpr(pos); ok {
//		span.Match(end)
//	} else {
//		span.Fail()
//	}
//
// The resulting Enter/Exit events are what package forensics reconstructs.
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when recording is disabled
//   - Buffer: keeps every event in memory
//   - Stream: writes each event to an io.Writer in a traceio format
//   - MultiTracer: fans out to several tracers
package trace
