package inlinable

import (
	"inlinable/internal/ast"
	"inlinable/internal/source"
)

// InactiveRanges collects the line ranges of root that belong to untaken
// #if branches, including the directive lines of taken ones. Ranges are
// clipped to root's span. The set is not sorted yet.
func InactiveRanges(b *ast.Builder, file *source.File, root ast.NodeID) *source.RangeSet {
	w := inactiveWalker{
		b:      b,
		file:   file,
		full:   b.Nodes.Get(root).Span,
		ranges: source.NewRangeSet(file.ID),
	}
	ast.Walk(b, root, w.visit)
	return w.ranges
}

type inactiveWalker struct {
	b      *ast.Builder
	file   *source.File
	full   source.Span
	ranges *source.RangeSet
}

func (w *inactiveWalker) visit(_ ast.NodeID, n *ast.Node) bool {
	if n.Kind != ast.NodeIfConfig {
		return true
	}
	cfg := w.b.IfConfigs.Get(n.IfConfig)
	start := w.file.LineStart(n.Span.Start)
	end := w.file.LineEnd(n.Span.End)

	clause, ok := cfg.ActiveClause()
	if !ok {
		w.exclude(start, end)
		return false
	}

	// #if ... строка директивы взятой ветки
	w.exclude(start, w.file.LineEnd(w.directiveEnd(clause)))

	// от следующей директивы до конца блока
	next := cfg.EndLoc
	if cfg.Active+1 < len(cfg.Clauses) {
		next = cfg.Clauses[cfg.Active+1].Loc
	}
	if !next.Empty() {
		w.exclude(w.file.LineStart(next.Start), end)
	}

	for _, el := range clause.Elements {
		ast.Walk(w.b, el, w.visit)
	}
	return false
}

// directiveEnd returns an offset on the last line of the clause header.
func (w *inactiveWalker) directiveEnd(c *ast.Clause) uint32 {
	sp := c.Loc
	if c.Cond.IsValid() {
		sp = w.b.Nodes.Get(c.Cond).Span
	}
	if sp.End > sp.Start {
		return sp.End - 1
	}
	return sp.Start
}

func (w *inactiveWalker) exclude(start, end uint32) {
	sp := source.Span{File: w.file.ID, Start: start, End: end}.Clip(w.full)
	w.ranges.Add(sp)
}
