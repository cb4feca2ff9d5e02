// Package diag defines the diagnostic model shared by the lexer, the parser
// and the query evaluator.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEX/SYN/SEM prefixes), a short message, the primary span and
// optional notes and fixes.
//
// Producers emit through a Reporter and never touch storage directly.
// BagReporter aggregates into a Bag, DedupReporter drops repeated reports of
// the same problem (the query engine re-reports cycles on every hit).
// Rendering lives in internal/diagfmt.
package diag
