package query

import (
	"context"
	"errors"
	"fmt"

	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/source"
)

// Attributes that put a declaration's body into the client's ABI.
var minimalAttrs = []string{"inlinable", "_alwaysEmitIntoClient", "_transparent"}

func (e *Evaluator) resilienceExpansion(ctx context.Context, id ast.DeclID) (Expansion, error) {
	d := e.decl(id)
	for _, attr := range minimalAttrs {
		if e.ast.HasAttr(id, attr) {
			return Minimal, nil
		}
	}
	// локальные объявления наследуют контекст функции
	if parent := e.ast.Decls.Get(d.Parent); parent != nil && !parent.Kind.IsNominal() && parent.Kind != ast.DeclExtension {
		return e.ResilienceExpansion(ctx, d.Parent)
	}
	return Maximal, nil
}

func (e *Evaluator) resolveType(ctx context.Context, id ast.DeclID) (ast.DeclID, error) {
	d := e.decl(id)
	switch {
	case d.Kind.IsNominal():
		return id, nil
	case d.Kind != ast.DeclTypealias || d.TypeRef == source.NoStringID:
		return ast.NoDeclID, nil
	}
	target, ok := e.LookupType(e.ast.Strings.MustLookup(d.TypeRef))
	if !ok {
		return ast.NoDeclID, nil
	}
	return e.ResolveType(ctx, target)
}

func (e *Evaluator) extendedNominal(ctx context.Context, id ast.DeclID) (ast.DeclID, error) {
	d := e.decl(id)
	if d.Kind != ast.DeclExtension || d.TypeRef == source.NoStringID {
		return ast.NoDeclID, nil
	}
	name := e.ast.Strings.MustLookup(d.TypeRef)
	found, ok := e.LookupType(name)
	if !ok {
		diag.ReportError(e.reporter, diag.SemaUnknownExtendedType, d.TypeSpan,
			fmt.Sprintf("cannot find type '%s' in scope", name)).Emit()
		return ast.NoDeclID, nil
	}
	nominal, err := e.ResolveType(ctx, found)
	if err != nil {
		return ast.NoDeclID, err
	}
	if !nominal.IsValid() {
		diag.ReportError(e.reporter, diag.SemaExtendsNonNominal, d.TypeSpan,
			fmt.Sprintf("'%s' is not a nominal type", name)).Emit()
	}
	return nominal, nil
}

// extensionsOf scans every active extension. An extension whose own
// resolution is cyclic is diagnosed and skipped; a cycle running through
// this request propagates to the caller.
func (e *Evaluator) extensionsOf(ctx context.Context, typ ast.DeclID) ([]ast.DeclID, error) {
	depth := len(e.active)
	var out []ast.DeclID
	for i, d := range e.ast.Decls.Arena.Slice() {
		if d.Kind != ast.DeclExtension || d.Inactive {
			continue
		}
		ext := ast.DeclID(i + 1)
		nominal, err := e.ExtendedNominal(ctx, ext)
		if err != nil {
			var cyc *CycleError
			if errors.As(err, &cyc) && cyc.Start >= depth {
				cyc.Diagnose(e.reporter, e)
				continue
			}
			return nil, err
		}
		if nominal == typ {
			out = append(out, ext)
		}
	}
	return out, nil
}

func (e *Evaluator) hasInlinableInitializer(ctx context.Context, typ ast.DeclID) (bool, error) {
	d := e.decl(typ)
	if !d.Kind.IsNominal() {
		return false, nil
	}
	if found, err := e.anyInlinableInit(ctx, d.Members); found || err != nil {
		return found, err
	}
	exts, err := e.ExtensionsOf(ctx, typ)
	if err != nil {
		return false, err
	}
	for _, ext := range exts {
		if found, err := e.anyInlinableInit(ctx, e.decl(ext).Members); found || err != nil {
			return found, err
		}
	}
	return false, nil
}

func (e *Evaluator) anyInlinableInit(ctx context.Context, members []ast.DeclID) (bool, error) {
	for _, m := range members {
		if e.decl(m).Kind != ast.DeclInit {
			continue
		}
		exp, err := e.ResilienceExpansion(ctx, m)
		if err != nil {
			return false, err
		}
		if exp == Minimal {
			return true, nil
		}
	}
	return false, nil
}

func (e *Evaluator) isInlinable(ctx context.Context, id ast.DeclID) (bool, error) {
	exp, err := e.ResilienceExpansion(ctx, id)
	if err != nil || exp == Minimal {
		return exp == Minimal, err
	}
	if !e.decl(id).Kind.IsNominal() {
		return false, nil
	}
	if e.ast.HasAttr(id, "frozen") {
		return true, nil
	}
	return e.HasInlinableInitializer(ctx, id)
}
