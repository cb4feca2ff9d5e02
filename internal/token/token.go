package token

import (
	"io"
	"slices"
	"strings"

	"inlinable/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, nil or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsOp reports whether the token is the operator spelled op.
func (t Token) IsOp(op string) bool { return t.Kind == Operator && t.Text == op }

// StartsLine reports whether a newline precedes the token in its leading trivia.
func (t Token) StartsLine() bool { return ContainsNewline(t.Leading) }

// WithLeading returns a copy of t with leading trivia replaced.
func (t Token) WithLeading(list []Trivia) Token {
	t.Leading = slices.Clone(list)
	return t
}

// WithTrailing returns a copy of t with trailing trivia replaced.
func (t Token) WithTrailing(list []Trivia) Token {
	t.Trailing = slices.Clone(list)
	return t
}

// FullText renders leading trivia, the token text and trailing trivia.
func (t Token) FullText() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t Token) writeTo(sb *strings.Builder) {
	for _, tv := range t.Leading {
		sb.WriteString(tv.Text)
	}
	sb.WriteString(t.Text)
	for _, tv := range t.Trailing {
		sb.WriteString(tv.Text)
	}
}

// Render prints tokens (with trivia) back to text.
func Render(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		t.writeTo(&sb)
	}
	return sb.String()
}

// Print writes Render(tokens) to w.
func Print(w io.Writer, tokens []Token) error {
	_, err := io.WriteString(w, Render(tokens))
	return err
}
