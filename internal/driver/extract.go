package driver

import (
	"context"
	"fmt"

	"inlinable/internal/ast"
	"inlinable/internal/source"
)

// Part names which subtree of a declaration was extracted.
type Part string

const (
	PartBody    Part = "body"
	PartInit    Part = "init"
	PartDefault Part = "default"
)

// Extracted is the inlinable text of one subtree.
type Extracted struct {
	Decl ast.DeclID
	Name string
	Kind ast.DeclKind
	Part Part
	// Param is set for PartDefault.
	Param string
	Span  source.Span
	Text  string
}

// Label renders a short heading such as "func f: default x".
func (e Extracted) Label() string {
	s := fmt.Sprintf("%s %s: %s", e.Kind, e.Name, e.Part)
	if e.Param != "" {
		s += " " + e.Param
	}
	return s
}

// Extract returns the inlinable text of every body, initial value and
// default argument of the declarations named name (all when name is empty),
// in source order.
func (s *Session) Extract(ctx context.Context, name string) ([]Extracted, error) {
	done := s.Timer.Track("query")
	defer done("")

	var out []Extracted
	for _, id := range s.Decls(name) {
		d := s.AST.Decls.Get(id)
		base := Extracted{Decl: id, Name: s.AST.Name(id), Kind: d.Kind}
		add := func(part Part, param string, node ast.NodeID) error {
			text, err := s.Eval.InlinableText(ctx, node)
			if err != nil {
				return err
			}
			e := base
			e.Part, e.Param, e.Span, e.Text = part, param, s.AST.Nodes.Get(node).Span, text
			out = append(out, e)
			return nil
		}
		for _, p := range d.Params {
			if !p.Default.IsValid() {
				continue
			}
			if err := add(PartDefault, s.AST.Strings.MustLookup(p.Name), p.Default); err != nil {
				return nil, err
			}
		}
		if d.Init.IsValid() {
			if err := add(PartInit, "", d.Init); err != nil {
				return nil, err
			}
		}
		if d.Body.IsValid() {
			if err := add(PartBody, "", d.Body); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
