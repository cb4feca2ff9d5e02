package ast

import "inlinable/internal/source"

type DeclKind uint8

const (
	DeclStruct DeclKind = iota
	DeclClass
	DeclEnum
	DeclActor
	DeclProtocol
	DeclExtension
	DeclTypealias
	DeclInit
	DeclDeinit
	DeclFunc
	DeclVar
	DeclLet
	DeclImport
)

var declKindNames = [...]string{
	DeclStruct:    "struct",
	DeclClass:     "class",
	DeclEnum:      "enum",
	DeclActor:     "actor",
	DeclProtocol:  "protocol",
	DeclExtension: "extension",
	DeclTypealias: "typealias",
	DeclInit:      "init",
	DeclDeinit:    "deinit",
	DeclFunc:      "func",
	DeclVar:       "var",
	DeclLet:       "let",
	DeclImport:    "import",
}

func (k DeclKind) String() string {
	if int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return "decl(?)"
}

// IsNominal reports whether the kind declares a nominal type.
func (k DeclKind) IsNominal() bool {
	switch k {
	case DeclStruct, DeclClass, DeclEnum, DeclActor, DeclProtocol:
		return true
	default:
		return false
	}
}

// IsStorage reports whether the kind is a var or let.
func (k DeclKind) IsStorage() bool { return k == DeclVar || k == DeclLet }

// Attr описывает атрибут вида `@name` или `@name(args)`.
type Attr struct {
	Name source.StringID
	Span source.Span
}

// Param is one function or initializer parameter. Default is the default
// value expression, if any.
type Param struct {
	Name    source.StringID
	Span    source.Span
	Default NodeID
}

// Decl is any declaration. Which fields are meaningful depends on Kind:
//   - nominal types and extensions have Members and Layout;
//   - typealias stores the aliased name in TypeRef;
//   - extension stores the extended name in TypeRef;
//   - func/init have Params and Body;
//   - var/let may have Init and a Body (computed property or accessors).
type Decl struct {
	Kind      DeclKind
	Name      source.StringID
	Span      source.Span
	NameSpan  source.Span
	Attrs     []Attr
	Modifiers []source.StringID
	TypeRef   source.StringID
	TypeSpan  source.Span
	Params    []Param
	Init      NodeID
	Body      NodeID
	// Members: семантический список: члены активных #if-веток подняты сюда.
	Members []DeclID
	// Layout: синтаксический список членов: NodeDecl и NodeIfConfig в
	// исходном порядке.
	Layout []NodeID
	Parent DeclID
	// Inactive marks declarations parsed inside an untaken #if clause.
	Inactive bool
	// Header ends where the body, the initializer or the member list starts.
	HeaderEnd uint32
}

type Decls struct {
	Arena *Arena[Decl]
}

func NewDecls(capHint uint) *Decls {
	return &Decls{Arena: NewArena[Decl](capHint)}
}

func (d *Decls) New(decl Decl) DeclID {
	return DeclID(d.Arena.Allocate(decl))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}
