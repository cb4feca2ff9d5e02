package query

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/inlinable"
	"inlinable/internal/source"
	"inlinable/internal/trace"
)

type Options struct {
	// Reporter receives cycle and lookup diagnostics; duplicates are dropped.
	Reporter diag.Reporter
	// Stats observes evaluations; nil means no instrumentation.
	Stats Stats
}

// Evaluator answers requests over one parsed session.
type Evaluator struct {
	files    *source.FileSet
	ast      *ast.Builder
	extract  *inlinable.Extractor
	reporter diag.Reporter
	stats    Stats
	names    *ast.NameIndex

	cache  map[Key]any
	active []Request // requests being evaluated, outermost first
}

// New creates an evaluator over files and the arenas in b.
func New(files *source.FileSet, b *ast.Builder, opts Options) *Evaluator {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	stats := opts.Stats
	if stats == nil {
		stats = nopStats{}
	}
	return &Evaluator{
		files:    files,
		ast:      b,
		extract:  &inlinable.Extractor{Files: files, AST: b},
		reporter: diag.NewDedupReporter(reporter),
		stats:    stats,
		cache:    make(map[Key]any),
	}
}

// AST returns the arenas the evaluator reads.
func (e *Evaluator) AST() *ast.Builder { return e.ast }

// Reporter returns the deduplicating reporter used for query diagnostics.
func (e *Evaluator) Reporter() diag.Reporter { return e.reporter }

// Evaluate answers req.
//
// A cached answer is returned without running anything. Otherwise req is
// pushed on the active stack, computed and popped; a successful answer is
// stored when the kind is cacheable. Asking for a request that is already
// on the stack yields *CycleError. Errors are never cached.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (any, error) {
	key := req.Key()
	if v, ok := e.cache[key]; ok {
		e.stats.CacheHit(key.Kind)
		return v, nil
	}

	if i := slices.IndexFunc(e.active, func(r Request) bool { return r.Key() == key }); i >= 0 {
		chain := make([]Request, 0, len(e.active)+1)
		chain = append(chain, e.active...)
		chain = append(chain, req)
		err := &CycleError{Chain: chain, Start: i}
		trace.Point(trace.FromContext(ctx), trace.ScopeRequest, "cycle", err.Error(), trace.CurrentSpan(ctx).SpanID)
		return nil, err
	}

	e.active = append(e.active, req)
	defer func() { e.active = e.active[:len(e.active)-1] }()

	var name string
	if trace.FromContext(ctx).Enabled() {
		name = e.Describe(req)
	}
	ctx, span := trace.BeginCtx(ctx, trace.ScopeRequest, name)
	v, err := e.dispatch(ctx, req)
	if err != nil {
		span.End("error")
		return nil, err
	}
	span.End("")
	e.stats.RequestEvaluated(key.Kind)

	if req.Cached() {
		e.cache[key] = v
	}
	return v, nil
}

// dispatch runs the evaluation function of req's kind.
func (e *Evaluator) dispatch(ctx context.Context, req Request) (any, error) {
	switch r := req.(type) {
	case HasInlinableInitializerRequest:
		return e.hasInlinableInitializer(ctx, r.Type)
	case ResilienceExpansionRequest:
		return e.resilienceExpansion(ctx, r.Decl)
	case ResolveTypeRequest:
		return e.resolveType(ctx, r.Decl)
	case ExtendedNominalRequest:
		return e.extendedNominal(ctx, r.Extension)
	case ExtensionsOfRequest:
		return e.extensionsOf(ctx, r.Type)
	case InlinableTextRequest:
		return e.extract.Extract(ctx, r.Node), nil
	case IsInlinableRequest:
		return e.isInlinable(ctx, r.Decl)
	default:
		panic(fmt.Sprintf("query: unknown request type %T", req))
	}
}

func evaluate[V any](ctx context.Context, e *Evaluator, req Request) (V, error) {
	v, err := e.Evaluate(ctx, req)
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

func (e *Evaluator) HasInlinableInitializer(ctx context.Context, typ ast.DeclID) (bool, error) {
	return evaluate[bool](ctx, e, HasInlinableInitializerRequest{Type: typ})
}

func (e *Evaluator) ResilienceExpansion(ctx context.Context, decl ast.DeclID) (Expansion, error) {
	return evaluate[Expansion](ctx, e, ResilienceExpansionRequest{Decl: decl})
}

func (e *Evaluator) ResolveType(ctx context.Context, decl ast.DeclID) (ast.DeclID, error) {
	return evaluate[ast.DeclID](ctx, e, ResolveTypeRequest{Decl: decl})
}

func (e *Evaluator) ExtendedNominal(ctx context.Context, ext ast.DeclID) (ast.DeclID, error) {
	return evaluate[ast.DeclID](ctx, e, ExtendedNominalRequest{Extension: ext})
}

func (e *Evaluator) ExtensionsOf(ctx context.Context, typ ast.DeclID) ([]ast.DeclID, error) {
	return evaluate[[]ast.DeclID](ctx, e, ExtensionsOfRequest{Type: typ})
}

func (e *Evaluator) InlinableText(ctx context.Context, node ast.NodeID) (string, error) {
	return evaluate[string](ctx, e, InlinableTextRequest{Node: node})
}

func (e *Evaluator) IsInlinable(ctx context.Context, decl ast.DeclID) (bool, error) {
	return evaluate[bool](ctx, e, IsInlinableRequest{Decl: decl})
}

// LookupType returns the first active nominal type or typealias named name.
func (e *Evaluator) LookupType(name string) (ast.DeclID, bool) {
	if e.names == nil {
		e.names = ast.NewNameIndex(e.ast)
	}
	ids := e.names.Lookup(name)
	if len(ids) == 0 {
		return ast.NoDeclID, false
	}
	return ids[0], true
}

// DiagnoseCycle reports err through the evaluator's reporter when it is a
// cycle and reports whether it was one.
func (e *Evaluator) DiagnoseCycle(err error) bool {
	var cyc *CycleError
	if !errors.As(err, &cyc) {
		return false
	}
	cyc.Diagnose(e.reporter, e)
	return true
}

// Subject implements Describer.
func (e *Evaluator) Subject(req Request) (string, source.Span) {
	if r, ok := req.(InlinableTextRequest); ok {
		n := e.ast.Nodes.Get(r.Node)
		if n == nil {
			return "", source.Span{}
		}
		return n.Kind.String(), n.Span
	}
	id := subjectDecl(req)
	d := e.ast.Decls.Get(id)
	if d == nil {
		return "", source.Span{}
	}
	sp := d.NameSpan
	if sp.Empty() {
		sp = d.Span
	}
	return e.ast.Name(id), sp
}

// Describe renders req for traces, e.g. "ResolveType(Foo)".
func (e *Evaluator) Describe(req Request) string {
	name, _ := e.Subject(req)
	if name == "" {
		name = fmt.Sprint(req.Key().ID)
	}
	return req.Key().Kind.String() + "(" + name + ")"
}

func subjectDecl(req Request) ast.DeclID {
	switch r := req.(type) {
	case HasInlinableInitializerRequest:
		return r.Type
	case ResilienceExpansionRequest:
		return r.Decl
	case ResolveTypeRequest:
		return r.Decl
	case ExtendedNominalRequest:
		return r.Extension
	case ExtensionsOfRequest:
		return r.Type
	case IsInlinableRequest:
		return r.Decl
	}
	return ast.NoDeclID
}

// decl returns the declaration behind id; an unknown id is a caller bug.
func (e *Evaluator) decl(id ast.DeclID) *ast.Decl {
	d := e.ast.Decls.Get(id)
	if d == nil {
		panic(fmt.Sprintf("query: invalid declaration id %d", id))
	}
	return d
}
