// Package token defines lexical token kinds and trivia.
// Invariants:
//   - Token.Text is exactly the source bytes of the token (no trivia).
//   - Token.Span matches Text exactly (Start..End).
//   - Leading trivia is everything between the previous token's trailing
//     trivia and this token; trailing trivia runs up to, but not including,
//     the next newline.
//   - Printing every token as Leading+Text+Trailing, in order, reproduces the
//     lexed buffer byte for byte (EOF carries the final leading trivia).
//   - Trivia and Token are values: editing returns a copy, slices handed in
//     are never mutated.
package token
