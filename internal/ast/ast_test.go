package ast_test

import (
	"testing"

	"inlinable/internal/ast"
	"inlinable/internal/source"
)

func sp(start, end uint32) source.Span { return source.Span{Start: start, End: end} }

func TestArenaIDsAreOneBased(t *testing.T) {
	a := ast.NewArena[int](0)
	if got := a.Get(0); got != nil {
		t.Fatalf("Get(0) = %v, want nil", got)
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("unexpected arena state: id=%d len=%d", id, a.Len())
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Get past the end did not panic")
		}
	}()
	a.Get(2)
}

func TestWalkSkipsClausesAndEntersDecls(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)

	stmt := b.NewNode(ast.NodeStmt, sp(10, 15), nil)
	inner := b.NewNode(ast.NodeStmt, sp(20, 25), nil)
	cfg := b.NewIfConfigNode(ast.IfConfig{
		Clauses: []ast.Clause{{Loc: sp(16, 19), Elements: []ast.NodeID{inner}}},
		Active:  0,
	}, sp(16, 30))
	body := b.NewNode(ast.NodeBlock, sp(9, 31), []ast.NodeID{stmt, cfg})
	def := b.NewNode(ast.NodeExpr, sp(5, 6), nil)
	fn := b.NewDecl(ast.Decl{
		Kind:   ast.DeclFunc,
		Name:   b.Strings.Intern("f"),
		Span:   sp(0, 31),
		Params: []ast.Param{{Name: b.Strings.Intern("x"), Default: def}},
		Body:   body,
	})
	root := b.NewDeclNode(fn)

	var seen []ast.NodeID
	ast.Walk(b, root, func(id ast.NodeID, _ *ast.Node) bool {
		seen = append(seen, id)
		return true
	})
	want := []ast.NodeID{root, def, body, stmt, cfg}
	if len(seen) != len(want) {
		t.Fatalf("visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("visited %v, want %v", seen, want)
		}
	}

	var count int
	ast.Walk(b, root, func(ast.NodeID, *ast.Node) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("returning false should skip children, visited %d", count)
	}
}

func TestActiveClause(t *testing.T) {
	cfg := &ast.IfConfig{Clauses: []ast.Clause{{}, {}}, Active: ast.NoClause}
	if _, ok := cfg.ActiveClause(); ok {
		t.Fatal("NoClause reported as active")
	}
	cfg.Active = 1
	if c, ok := cfg.ActiveClause(); !ok || c != &cfg.Clauses[1] {
		t.Fatal("active clause 1 not returned")
	}
	cfg.Active = 2
	defer func() {
		if recover() == nil {
			t.Fatal("out-of-range clause index did not panic")
		}
	}()
	cfg.ActiveClause()
}

func TestNameIndexNormalizesAndFilters(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	// "Café" decomposed: e + U+0301
	s := b.NewDecl(ast.Decl{Kind: ast.DeclStruct, Name: b.Strings.Intern("Cafe\u0301")})
	a := b.NewDecl(ast.Decl{Kind: ast.DeclTypealias, Name: b.Strings.Intern("Alias")})
	b.NewDecl(ast.Decl{Kind: ast.DeclExtension, Name: b.Strings.Intern("Alias")})
	b.NewDecl(ast.Decl{Kind: ast.DeclFunc, Name: b.Strings.Intern("Alias")})

	ix := ast.NewNameIndex(b)
	if got := ix.Lookup("Caf\u00e9"); len(got) != 1 || got[0] != s {
		t.Fatalf("Lookup(Café) = %v, want [%d]", got, s)
	}
	if got := ix.Lookup("Alias"); len(got) != 1 || got[0] != a {
		t.Fatalf("Lookup(Alias) = %v, want [%d]", got, a)
	}
	if got := ix.Lookup("Missing"); got != nil {
		t.Fatalf("Lookup(Missing) = %v", got)
	}
}

func TestAttrAndModifierLookup(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	id := b.NewDecl(ast.Decl{
		Kind:      ast.DeclInit,
		Attrs:     []ast.Attr{{Name: b.Strings.Intern("inlinable")}},
		Modifiers: []source.StringID{b.Strings.Intern("public")},
	})
	if !b.HasAttr(id, "inlinable") || b.HasAttr(id, "frozen") {
		t.Fatal("HasAttr mismatch")
	}
	if !b.HasModifier(id, "public") || b.HasModifier(id, "private") {
		t.Fatal("HasModifier mismatch")
	}
}
