package inlinable

import (
	"slices"
	"testing"

	"inlinable/internal/source"
	"inlinable/internal/token"
)

func piece(kind token.TriviaKind, text string) token.Trivia {
	return token.Trivia{Kind: kind, Text: text, Span: source.Span{Start: 3, End: 3 + uint32(len(text))}}
}

func kinds(list []token.Trivia) []token.TriviaKind {
	out := make([]token.TriviaKind, 0, len(list))
	for _, tv := range list {
		out = append(out, tv.Kind)
	}
	return out
}

func TestStripLeadingComments(t *testing.T) {
	var (
		sp   = piece(token.TriviaSpace, "  ")
		nl   = piece(token.TriviaNewline, "\n")
		crlf = piece(token.TriviaCarriageReturnLineFeed, "\r\n")
		lc   = piece(token.TriviaLineComment, "// c")
		bc   = piece(token.TriviaBlockComment, "/* c */")
		doc  = piece(token.TriviaDocLineComment, "/// d")
	)
	tests := []struct {
		name string
		in   []token.Trivia
		want string
	}{
		{"empty", nil, ""},
		{"no newline drops comments only", []token.Trivia{sp, bc, sp}, "    "},
		{"keeps from last newline", []token.Trivia{nl, sp, lc, nl, sp}, "\n  "},
		{"comment after last newline", []token.Trivia{nl, doc, sp, bc}, "\n  "},
		{"crlf counts as newline", []token.Trivia{sp, lc, crlf, sp}, "\r\n  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := slices.Clone(tt.in)
			got := token.TriviaText(StripLeadingComments(in))
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			if !slices.Equal(in, tt.in) {
				t.Fatal("input slice was modified")
			}
		})
	}
}

func TestStripTrailingComments(t *testing.T) {
	in := []token.Trivia{
		piece(token.TriviaSpace, " "),
		piece(token.TriviaBlockComment, "/* a\n b */"),
		piece(token.TriviaTab, "\t"),
		piece(token.TriviaDocBlockComment, "/** d */"),
		piece(token.TriviaLineComment, "// tail"),
	}
	orig := slices.Clone(in)

	got := StripTrailingComments(in)
	if text := token.TriviaText(got); text != "  \t " {
		t.Fatalf("text = %q", text)
	}
	want := []token.TriviaKind{token.TriviaSpace, token.TriviaSpace, token.TriviaTab, token.TriviaSpace}
	if !slices.Equal(kinds(got), want) {
		t.Fatalf("kinds = %v, want %v", kinds(got), want)
	}
	if !got[1].Span.Empty() || got[1].Span.Start != in[1].Span.Start {
		t.Fatalf("synthesized space span = %s", got[1].Span)
	}
	if !slices.Equal(in, orig) {
		t.Fatal("input slice was modified")
	}
}

func TestStripLineCommentsIsNotUnified(t *testing.T) {
	line := []token.Trivia{piece(token.TriviaDocLineComment, "/// x")}
	if got := StripTrailingComments(line); len(got) != 0 {
		t.Fatalf("trailing line comment kept as %v", kinds(got))
	}
	block := []token.Trivia{piece(token.TriviaBlockComment, "/* x */")}
	if got := StripLeadingComments(block); len(got) != 0 {
		t.Fatalf("leading block comment kept as %v", kinds(got))
	}
}
