package inlinable

import (
	"context"
	"fmt"
	"strings"

	"inlinable/internal/ast"
	"inlinable/internal/lexer"
	"inlinable/internal/source"
	"inlinable/internal/token"
	"inlinable/internal/trace"
)

// Extractor produces the canonical inlinable text of AST subtrees.
// It only reads the file set and the arenas.
type Extractor struct {
	Files *source.FileSet
	AST   *ast.Builder
}

// Extract returns the text of node with untaken #if branches and all
// comments removed. Malformed input (overlapping ranges, a bad active
// clause index) panics.
func (x *Extractor) Extract(ctx context.Context, node ast.NodeID) string {
	_, span := trace.BeginCtx(ctx, trace.ScopeNode, "extract")
	defer span.End("")

	n := x.AST.Nodes.Get(node)
	if n == nil {
		panic(fmt.Sprintf("inlinable: extract of invalid node %d", node))
	}
	file := x.Files.Get(n.Span.File)

	ranges := InactiveRanges(x.AST, file, node)
	if ranges.Empty() {
		return StripComments(file.Text(n.Span))
	}
	ranges.SortAndValidate()
	span.WithExtra("excluded", fmt.Sprint(ranges.Len()))

	var sb strings.Builder
	sb.Grow(int(n.Span.Len()))
	for _, sp := range ranges.Complement(n.Span) {
		sb.WriteString(file.Text(sp))
	}
	return StripComments(sb.String())
}

// StripComments re-lexes text and drops its comments, keeping every other
// byte of whitespace.
func StripComments(text string) string {
	toks := lexer.TokenizeText(text)
	for i, tok := range toks {
		toks[i] = tok.
			WithLeading(StripLeadingComments(tok.Leading)).
			WithTrailing(StripTrailingComments(tok.Trailing))
	}
	var sb strings.Builder
	sb.Grow(len(text))
	if err := token.Print(&sb, toks); err != nil {
		panic(fmt.Errorf("inlinable: print: %w", err))
	}
	return sb.String()
}
