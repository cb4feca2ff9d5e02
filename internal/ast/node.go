package ast

import "inlinable/internal/source"

type NodeKind uint8

const (
	// NodeBlock is a braced region: a body, a closure, an accessor block.
	NodeBlock NodeKind = iota
	// NodeStmt is a statement inside a block or at top level.
	NodeStmt
	// NodeExpr is an expression: a default value, an initializer, a condition.
	NodeExpr
	// NodeIfConfig is a #if ... #endif block. Payload indexes IfConfigs.
	NodeIfConfig
	// NodeDecl wraps a declaration appearing in a body or member list.
	NodeDecl
)

func (k NodeKind) String() string {
	switch k {
	case NodeBlock:
		return "Block"
	case NodeStmt:
		return "Stmt"
	case NodeExpr:
		return "Expr"
	case NodeIfConfig:
		return "IfConfig"
	case NodeDecl:
		return "Decl"
	}
	return "Node(?)"
}

type Node struct {
	Kind     NodeKind
	Span     source.Span
	Children []NodeID
	Decl     DeclID
	IfConfig IfConfigID
}

type Nodes struct {
	Arena *Arena[Node]
}

func NewNodes(capHint uint) *Nodes {
	return &Nodes{Arena: NewArena[Node](capHint)}
}

func (n *Nodes) New(kind NodeKind, sp source.Span, children []NodeID) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind:     kind,
		Span:     sp,
		Children: children,
	}))
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}
