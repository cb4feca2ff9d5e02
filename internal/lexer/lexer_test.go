package lexer_test

import (
	"fmt"
	"testing"

	"inlinable/internal/diag"
	"inlinable/internal/lexer"
	"inlinable/internal/source"
	"inlinable/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func lexAll(t *testing.T, src string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.swift", []byte(src))
	rep := &testReporter{}
	return lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: rep}), rep
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func triviaKinds(list []token.Trivia) string {
	s := ""
	for i, tv := range list {
		if i > 0 {
			s += ","
		}
		s += tv.Kind.String()
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"let x = 1 // comment",
		"#if true\nfoo()\n#else\nbar()\n#endif",
		"a/*c*/b",
		"struct S {\r\n  init() {}\r\n}\r\n",
		"/** doc */\n/// line doc\n@inlinable public func f() -> Int { return 1...5 }\n",
		"let s = \"a \\(b(\"c\")) d\"\nlet m = \"\"\"\nmulti\n\"\"\"\n",
		"x\r\ry\t\t z\v",
		"/* outer /* inner */ still */ tail",
		"let 名前 = `class` + $0\n",
		"/* unterminated",
	}
	for _, src := range inputs {
		t.Run(fmt.Sprintf("%q", src), func(t *testing.T) {
			toks, _ := lexAll(t, src)
			if got := token.Render(toks); got != src {
				t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, src)
			}
			if toks[len(toks)-1].Kind != token.EOF {
				t.Fatalf("last token is %v, want EOF", toks[len(toks)-1].Kind)
			}
		})
	}
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []token.Kind
	}{
		{"let x = 1", []token.Kind{token.KwLet, token.Ident, token.Operator, token.IntLit, token.EOF}},
		{"1.5 1...5 0x1F 1e3", []token.Kind{
			token.FloatLit, token.IntLit, token.Operator, token.IntLit, token.IntLit, token.FloatLit, token.EOF,
		}},
		{"a.b", []token.Kind{token.Ident, token.Dot, token.Ident, token.EOF}},
		{"@frozen public struct", []token.Kind{token.At, token.Ident, token.Ident, token.KwStruct, token.EOF}},
		{"#if #elseif #else #endif #file", []token.Kind{
			token.PoundIf, token.PoundElseif, token.PoundElse, token.PoundEndif, token.PoundKeyword, token.EOF,
		}},
		{"f(a: [1, 2]);", []token.Kind{
			token.Ident, token.LParen, token.Ident, token.Colon, token.LBracket, token.IntLit,
			token.Comma, token.IntLit, token.RBracket, token.RParen, token.Semicolon, token.EOF,
		}},
		{"`init`", []token.Kind{token.Ident, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, rep := lexAll(t, tt.src)
			got := kinds(toks)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			if len(rep.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %v", rep.diagnostics)
			}
		})
	}
}

func TestOperatorDoesNotSwallowComments(t *testing.T) {
	toks, _ := lexAll(t, "a +// c\nb =/* x */c")
	if toks[1].Text != "+" || triviaKinds(toks[1].Trailing) != "LineComment" {
		t.Fatalf("got %q trailing %s", toks[1].Text, triviaKinds(toks[1].Trailing))
	}
	if toks[3].Text != "=" || triviaKinds(toks[3].Trailing) != "BlockComment" {
		t.Fatalf("got %q trailing %s", toks[3].Text, triviaKinds(toks[3].Trailing))
	}
}

func TestTriviaAttribution(t *testing.T) {
	src := "  // lead\n\n\tfoo /* a\n b */ // tail\nbar\n"
	toks, _ := lexAll(t, src)
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	foo, bar, eof := toks[0], toks[1], toks[2]
	if got := triviaKinds(foo.Leading); got != "Space,LineComment,Newline,Tab" {
		t.Fatalf("foo leading = %s", got)
	}
	if foo.Leading[2].Text != "\n\n" {
		t.Fatalf("newline run not coalesced: %q", foo.Leading[2].Text)
	}
	// multi-line block comment stays trailing; the newline does not
	if got := triviaKinds(foo.Trailing); got != "Space,BlockComment,Space,LineComment" {
		t.Fatalf("foo trailing = %s", got)
	}
	if got := triviaKinds(bar.Leading); got != "Newline" {
		t.Fatalf("bar leading = %s", got)
	}
	if len(bar.Trailing) != 0 {
		t.Fatalf("bar trailing = %s", triviaKinds(bar.Trailing))
	}
	if got := triviaKinds(eof.Leading); got != "Newline" {
		t.Fatalf("EOF leading = %s", got)
	}
}

func TestLineEndingsAndDocComments(t *testing.T) {
	toks, _ := lexAll(t, "/** d */\r\n/// l\r\n//// x\r\r\nf")
	want := "DocBlockComment,CarriageReturnLineFeed,DocLineComment,CarriageReturnLineFeed,LineComment,CarriageReturn,CarriageReturnLineFeed"
	if got := triviaKinds(toks[0].Leading); got != want {
		t.Fatalf("leading = %s\nwant      %s", got, want)
	}
	toks, _ = lexAll(t, "/**/f")
	if got := triviaKinds(toks[0].Leading); got != "BlockComment" {
		t.Fatalf("/**/ classified as %s", got)
	}
}

func TestStringInterpolation(t *testing.T) {
	toks, rep := lexAll(t, `"a \(f(")")) b" x`)
	if toks[0].Kind != token.StringLit || toks[0].Text != `"a \(f(")")) b"` {
		t.Fatalf("string token = %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Text != "x" || len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected tail %q / %v", toks[1].Text, rep.diagnostics)
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"/* open", diag.LexUnterminatedBlockComment},
		{"\"open\nx", diag.LexUnterminatedString},
		{"a ☃ b", diag.LexUnknownChar},
		{"0x", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.code.ID(), func(t *testing.T) {
			toks, rep := lexAll(t, tt.src)
			if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != tt.code {
				t.Fatalf("diagnostics = %v, want one %s", rep.diagnostics, tt.code)
			}
			if token.Render(toks) != tt.src {
				t.Fatalf("round trip failed for %q", tt.src)
			}
		})
	}
}

func TestTokenEnd(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.swift", []byte("let foo = bar // x")))
	tests := []struct{ off, want uint32 }{
		{0, 3},
		{4, 7},
		{3, 3},   // whitespace
		{14, 14}, // comment
		{10, 13},
		{18, 18}, // end of buffer
	}
	for _, tt := range tests {
		if got := lexer.TokenEnd(f, tt.off); got != tt.want {
			t.Errorf("TokenEnd(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.swift", []byte("a b")))
	lx := lexer.New(f, lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("Next = %q", n.Text)
	}
	for range 2 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("want EOF, got %v", n.Kind)
		}
	}
}
