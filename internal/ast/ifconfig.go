package ast

import (
	"fmt"

	"inlinable/internal/source"
)

// NoClause marks an IfConfig in which no clause was taken.
const NoClause = -1

// Clause is one #if / #elseif / #else branch.
type Clause struct {
	// Loc is the span of the directive token (#if, #elseif, #else).
	Loc source.Span
	// Cond is the condition expression; NoNodeID for #else.
	Cond     NodeID
	Elements []NodeID
}

// IfConfig is a conditional compilation block.
type IfConfig struct {
	Clauses []Clause
	// Active is the index of the taken clause or NoClause.
	Active int
	// EndLoc is the span of the closing #endif. For an unterminated block it
	// is empty and sits at the block end.
	EndLoc source.Span
}

// ActiveClause returns the taken clause. The bool is false when no clause
// was taken. An Active index outside Clauses panics.
func (c *IfConfig) ActiveClause() (*Clause, bool) {
	if c.Active == NoClause {
		return nil, false
	}
	if c.Active < 0 || c.Active >= len(c.Clauses) {
		panic(fmt.Sprintf("ast: active clause %d out of range (%d clauses)", c.Active, len(c.Clauses)))
	}
	return &c.Clauses[c.Active], true
}

type IfConfigs struct {
	Arena *Arena[IfConfig]
}

func NewIfConfigs(capHint uint) *IfConfigs {
	return &IfConfigs{Arena: NewArena[IfConfig](capHint)}
}

func (c *IfConfigs) Get(id IfConfigID) *IfConfig {
	return c.Arena.Get(uint32(id))
}
