package ast

import (
	"golang.org/x/text/unicode/norm"
)

// NameIndex maps type names to nominal and typealias declarations.
// Names are compared in NFC so that "é" typed either way resolves.
type NameIndex struct {
	byName map[string][]DeclID
}

// NewNameIndex indexes every active nominal type and typealias in b.
func NewNameIndex(b *Builder) *NameIndex {
	ix := &NameIndex{byName: make(map[string][]DeclID)}
	for i := range b.Decls.Arena.Slice() {
		id := DeclID(i + 1)
		d := b.Decls.Get(id)
		if d.Inactive || (!d.Kind.IsNominal() && d.Kind != DeclTypealias) {
			continue
		}
		key := norm.NFC.String(b.Strings.MustLookup(d.Name))
		ix.byName[key] = append(ix.byName[key], id)
	}
	return ix
}

// Lookup returns the declarations named name, in declaration order.
func (ix *NameIndex) Lookup(name string) []DeclID {
	return ix.byName[norm.NFC.String(name)]
}

// Len counts distinct names.
func (ix *NameIndex) Len() int { return len(ix.byName) }
