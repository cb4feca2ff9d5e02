// Package query is a demand-driven, memoized evaluator for the questions
// the interface printer asks about declarations.
//
// Every question is a Request value from a closed set of kinds. The
// Evaluator caches answers per request key, keeps the stack of requests
// currently being computed, and returns a *CycleError instead of
// recursing forever when a request depends on itself. Failed evaluations
// are never cached.
//
// An Evaluator belongs to one session and is not safe for concurrent use.
package query
