package inlinable_test

import (
	"context"
	"strings"
	"testing"

	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/inlinable"
	"inlinable/internal/parser"
	"inlinable/internal/source"
)

type fixture struct {
	fs   *source.FileSet
	file *source.File
	b    *ast.Builder
	root *ast.File
	x    *inlinable.Extractor
}

func parse(t *testing.T, src string, defines ...string) fixture {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.swift", []byte(src)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(f, b, parser.Options{
		Reporter:   diag.NopReporter{},
		Conditions: parser.NewConditions(defines, "linux", "amd64"),
	})
	return fixture{
		fs:   fs,
		file: f,
		b:    b,
		root: b.Files.Get(res.File),
		x:    &inlinable.Extractor{Files: fs, AST: b},
	}
}

func (fx fixture) body(t *testing.T, name string) ast.NodeID {
	t.Helper()
	for i, d := range fx.b.Decls.Arena.Slice() {
		if fx.b.Name(ast.DeclID(i+1)) == name && d.Body.IsValid() {
			return d.Body
		}
	}
	t.Fatalf("no body for %q", name)
	return ast.NoNodeID
}

func (fx fixture) defaultArg(t *testing.T, name string) ast.NodeID {
	t.Helper()
	for i, d := range fx.b.Decls.Arena.Slice() {
		if fx.b.Name(ast.DeclID(i+1)) == name && len(d.Params) > 0 && d.Params[0].Default.IsValid() {
			return d.Params[0].Default
		}
	}
	t.Fatalf("no default argument for %q", name)
	return ast.NoNodeID
}

func TestExtractTrailingLineComment(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("one.swift", []byte("let x = 1 // comment")))
	b := ast.NewBuilder(ast.Hints{}, nil)
	node := b.NewNode(ast.NodeStmt, f.Span(), nil)

	x := &inlinable.Extractor{Files: fs, AST: b}
	if got := x.Extract(context.Background(), node); got != "let x = 1 " {
		t.Fatalf("got %q", got)
	}
}

func TestExtractTakenBranchOnly(t *testing.T) {
	fx := parse(t, "func f() {\n#if true\nfoo()\n#else\nbar()\n#endif\n}")
	body := fx.body(t, "f")
	cfgNode := fx.b.Nodes.Get(body).Children[0]

	if got := fx.x.Extract(context.Background(), cfgNode); got != "foo()\n" {
		t.Fatalf("ifconfig: got %q", got)
	}
	if got := fx.x.Extract(context.Background(), body); got != "{\nfoo()\n}" {
		t.Fatalf("body: got %q", got)
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		defines []string
		want    string
	}{
		{
			name: "no active clause",
			src:  "func f() {\nx()\n#if DEBUG\na()\n#endif\ny()\n}",
			want: "{\nx()\ny()\n}",
		},
		{
			name:    "elseif taken",
			src:     "func f() {\n#if A\na()\n#elseif B\nb()\n#else\nc()\n#endif\n}",
			defines: []string{"B"},
			want:    "{\nb()\n}",
		},
		{
			name: "nested inside else",
			src:  "func f() {\n#if DEBUG\na()\n#else\n#if os(Linux)\nb()\n#else\nc()\n#endif\n#endif\n}",
			want: "{\nb()\n}",
		},
		{
			name: "comment on directive line",
			src:  "func f() {\n#if DEBUG // only debug\na()\n#else /* release */\nb()\n#endif\n}",
			want: "{\nb()\n}",
		},
		{
			name: "comments stripped whitespace kept",
			src:  "func f() {\n  // note\n  foo() /* x */ + 1\n}",
			want: "{\n  foo()   + 1\n}",
		},
		{
			name: "crlf lines",
			src:  "func f() {\r\n#if DEBUG\r\na()\r\n#endif\r\nb()\r\n}",
			want: "{\r\nb()\r\n}",
		},
		{
			name: "unterminated if keeps taken tail",
			src:  "func f() {\n#if true\nfoo()\n}",
			want: "{\nfoo()\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := parse(t, tt.src, tt.defines...)
			got := fx.x.Extract(context.Background(), fx.body(t, "f"))
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	fx := parse(t, "func f() {\n  /* a */ let v = [1, /* two */ 2] // tail\n#if DEBUG\n  log(v)\n#endif\n  return v\n}")
	once := fx.x.Extract(context.Background(), fx.body(t, "f"))
	if strings.Contains(once, "/*") || strings.Contains(once, "//") || strings.Contains(once, "log") {
		t.Fatalf("leftovers in %q", once)
	}
	if twice := inlinable.StripComments(once); twice != once {
		t.Fatalf("second pass changed text:\n%q\n%q", once, twice)
	}
}

func TestStripCommentsKeepsTokensApart(t *testing.T) {
	if got := inlinable.StripComments("a/*c*/b"); got != "a b" {
		t.Fatalf("got %q, want %q", got, "a b")
	}
}

func TestInactiveRangesSortedAndDisjoint(t *testing.T) {
	src := "func f() {\n#if A\na()\n#endif\nx()\n#if B\nb()\n#elseif true\n#if C\nc()\n#endif\nd()\n#else\ne()\n#endif\n}"
	fx := parse(t, src)
	rs := inlinable.InactiveRanges(fx.b, fx.file, fx.body(t, "f"))
	rs.SortAndValidate()

	spans := rs.Spans()
	if len(spans) != 4 {
		var parts []string
		for _, sp := range spans {
			parts = append(parts, fx.file.Text(sp))
		}
		t.Fatalf("got %d ranges: %q", len(spans), parts)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i-1].End > spans[i].Start {
			t.Fatalf("ranges %s and %s overlap or are unsorted", spans[i-1], spans[i])
		}
	}
	if got := fx.x.Extract(context.Background(), fx.body(t, "f")); got != "{\nx()\nd()\n}" {
		t.Fatalf("extract = %q", got)
	}
}

func TestExtractBadActiveClausePanics(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("bad.swift", []byte("#if A\nx()\n#endif")))
	b := ast.NewBuilder(ast.Hints{}, nil)
	node := b.NewIfConfigNode(ast.IfConfig{
		Clauses: []ast.Clause{{Loc: source.Span{File: f.ID, Start: 0, End: 3}}},
		Active:  3,
		EndLoc:  source.Span{File: f.ID, Start: 10, End: 16},
	}, f.Span())

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range active clause")
		}
	}()
	(&inlinable.Extractor{Files: fs, AST: b}).Extract(context.Background(), node)
}

func TestExtractCommentsInInlinableBody(t *testing.T) {
	const want = "{\n  if true {\n    print (\"Hello, world\" ) \n  } \n}"
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "comments",
			src: "@inlinable public func hasComments() {\n" +
				"  // line comment on its own line\n" +
				"  /*test*/if true {// end line comment\n" +
				"    print/** doc comment\n" +
				"    */(\"Hello, world\"/**/) /// doc line comment\n" +
				"  } // end line comment\n" +
				"}\n",
		},
		{
			name: "comments and if config",
			src: "@inlinable public func hasComments() {\n" +
				"  #if true\n" +
				"  // line comment on its own line\n" +
				"  /*test*/if true {// end line comment\n" +
				"    print/** doc comment\n" +
				"    */(\"Hello, world\"/**/) /// doc line comment\n" +
				"  } // end line comment\n" +
				"  #endif\n" +
				"}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := parse(t, tt.src)
			if got := fx.x.Extract(context.Background(), fx.body(t, "hasComments")); got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		})
	}
}

func TestExtractClosureDefaultArguments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "plain closure",
			src:  "public func f(_ x: () -> Void = {\n}) {\n}\n",
			want: "{\n}",
		},
		{
			name: "single if",
			src: "public func f(_ x: () -> Void = {\n" +
				"  #if true\n" +
				"  print(\"true\")\n" +
				"  #else\n" +
				"  print(\"false\")\n" +
				"  #endif\n" +
				"}) {\n}\n",
			want: "{\n  print(\"true\")\n}",
		},
		{
			name: "nested ifs",
			src: "public func f(_ x: () -> Void = {\n" +
				"  #if NOT_PROVIDED\n" +
				"    print(\"should not exist\")\n" +
				"  #elseif !NOT_PROVIDED\n" +
				"    let innerClosure = {\n" +
				"      #if false\n" +
				"        print(\"should also not exist\")\n" +
				"      #else\n" +
				"        print(\"should exist\")\n" +
				"      #endif\n" +
				"    }\n" +
				"  #endif\n" +
				"}) {\n}\n",
			want: "{\n    let innerClosure = {\n        print(\"should exist\")\n    }\n}",
		},
		{
			name: "if inside else then sibling if",
			src: "public func f(_ x: () -> Void = {\n" +
				"  #if NOT_PROVIDED\n" +
				"    print(\"should not exist\")\n" +
				"    #else\n" +
				"      #if NOT_PROVIDED\n" +
				"        print(\"should also not exist\")\n" +
				"      #else\n" +
				"        print(\"should exist\")\n" +
				"      #endif\n" +
				"    #endif\n" +
				"\n" +
				"    #if !second\n" +
				"      print(\"should also exist\")\n" +
				"    #endif\n" +
				"}) {\n}\n",
			want: "{\n        print(\"should exist\")\n\n      print(\"should also exist\")\n}",
		},
		{
			name: "multiline conditions",
			src: "public func f(_ x: () -> Void = {\n" +
				"  #if (\n" +
				"    !false && true\n" +
				"  )\n" +
				"  print(\"should appear\")\n" +
				"  #endif\n" +
				"\n" +
				"  #if (\n" +
				"    !true\n" +
				"  )\n" +
				"  print(\"should not appear\")\n" +
				"  #else\n" +
				"  print(\"also should appear\")\n" +
				"  #endif\n" +
				"}) {\n}\n",
			want: "{\n  print(\"should appear\")\n\n  print(\"also should appear\")\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := parse(t, tt.src)
			if got := fx.x.Extract(context.Background(), fx.defaultArg(t, "f")); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
