package ast

import (
	"slices"

	"inlinable/internal/source"
)

type Hints struct{ Files, Decls, Nodes uint }

// Builder owns every arena of one parsed session. Requests and printers
// refer into it by ID only.
type Builder struct {
	Strings   *source.Interner
	Files     *Files
	Decls     *Decls
	Nodes     *Nodes
	IfConfigs *IfConfigs
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 7
	}
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Strings:   strings,
		Files:     NewFiles(hints.Files),
		Decls:     NewDecls(hints.Decls),
		Nodes:     NewNodes(hints.Nodes),
		IfConfigs: NewIfConfigs(hints.Nodes / 8),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) NewDecl(decl Decl) DeclID {
	return b.Decls.New(decl)
}

func (b *Builder) NewNode(kind NodeKind, sp source.Span, children []NodeID) NodeID {
	return b.Nodes.New(kind, sp, children)
}

// NewDeclNode wraps decl into a NodeDecl spanning the declaration.
func (b *Builder) NewDeclNode(decl DeclID) NodeID {
	id := b.Nodes.New(NodeDecl, b.Decls.Get(decl).Span, nil)
	b.Nodes.Get(id).Decl = decl
	return id
}

// NewIfConfigNode stores cfg and returns the NodeIfConfig covering sp.
func (b *Builder) NewIfConfigNode(cfg IfConfig, sp source.Span) NodeID {
	cid := IfConfigID(b.IfConfigs.Arena.Allocate(cfg))
	id := b.Nodes.New(NodeIfConfig, sp, nil)
	b.Nodes.Get(id).IfConfig = cid
	return id
}

// IfConfigOf returns the conditional block behind a NodeIfConfig.
func (b *Builder) IfConfigOf(id NodeID) (*IfConfig, bool) {
	n := b.Nodes.Get(id)
	if n == nil || n.Kind != NodeIfConfig {
		return nil, false
	}
	return b.IfConfigs.Get(n.IfConfig), true
}

func (b *Builder) Name(id DeclID) string {
	d := b.Decls.Get(id)
	if d == nil {
		return ""
	}
	return b.Strings.MustLookup(d.Name)
}

// HasAttr reports whether the declaration carries @name.
func (b *Builder) HasAttr(id DeclID, name string) bool {
	d := b.Decls.Get(id)
	if d == nil {
		return false
	}
	return slices.ContainsFunc(d.Attrs, func(a Attr) bool {
		return b.Strings.MustLookup(a.Name) == name
	})
}

// HasModifier reports whether the declaration carries the given modifier
// (public, static, mutating...).
func (b *Builder) HasModifier(id DeclID, name string) bool {
	d := b.Decls.Get(id)
	if d == nil {
		return false
	}
	return slices.ContainsFunc(d.Modifiers, func(m source.StringID) bool {
		return b.Strings.MustLookup(m) == name
	})
}

// DeclChildren lists the nodes owned by a declaration in source order:
// default values, the initializer, the body, then the member layout.
func (b *Builder) DeclChildren(id DeclID) []NodeID {
	d := b.Decls.Get(id)
	if d == nil {
		return nil
	}
	out := make([]NodeID, 0, len(d.Params)+2+len(d.Layout))
	for _, p := range d.Params {
		if p.Default.IsValid() {
			out = append(out, p.Default)
		}
	}
	if d.Init.IsValid() {
		out = append(out, d.Init)
	}
	if d.Body.IsValid() {
		out = append(out, d.Body)
	}
	return append(out, d.Layout...)
}
