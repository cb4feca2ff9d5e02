package ast

// Visitor is called for every visited node. Returning false skips the
// node's children.
type Visitor func(id NodeID, n *Node) bool

// Walk visits root and its descendants depth-first in source order.
// Declarations are entered through DeclChildren. Clauses of a NodeIfConfig
// are not entered: callers decide which clause elements to walk.
func Walk(b *Builder, root NodeID, visit Visitor) {
	if !root.IsValid() {
		return
	}
	n := b.Nodes.Get(root)
	if !visit(root, n) {
		return
	}
	switch n.Kind {
	case NodeIfConfig:
		return
	case NodeDecl:
		for _, child := range b.DeclChildren(n.Decl) {
			Walk(b, child, visit)
		}
	default:
		for _, child := range n.Children {
			Walk(b, child, visit)
		}
	}
}

// WalkDecl walks every node owned by decl.
func WalkDecl(b *Builder, decl DeclID, visit Visitor) {
	for _, child := range b.DeclChildren(decl) {
		Walk(b, child, visit)
	}
}
