// Package printer renders the textual interface of a parsed module.
//
// The interface lists public declarations with their attributes and
// signatures. Bodies appear only where clients are allowed to inline them:
// functions with Minimal resilience expansion, default argument values, and
// stored-property initial values of types whose layout is inlinable. Body
// text always comes from the query engine's InlinableText, so untaken #if
// branches and comments never leak into the interface.
package printer
