package query

import (
	"fmt"

	"inlinable/internal/ast"
)

// Kind enumerates request kinds.
type Kind uint8

const (
	KindHasInlinableInitializer Kind = iota
	KindResilienceExpansion
	KindResolveType
	KindExtendedNominal
	KindExtensionsOf
	KindInlinableText
	KindIsInlinable

	kindCount
)

var kindNames = [...]string{
	KindHasInlinableInitializer: "HasInlinableInitializer",
	KindResilienceExpansion:     "ResilienceExpansion",
	KindResolveType:             "ResolveType",
	KindExtendedNominal:         "ExtendedNominal",
	KindExtensionsOf:            "ExtensionsOf",
	KindInlinableText:           "InlinableText",
	KindIsInlinable:             "IsInlinable",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns every request kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := range kindCount {
		out = append(out, k)
	}
	return out
}

// Key identifies a request: its kind and the ID of its single input.
// Two requests with equal keys always produce the same answer.
type Key struct {
	Kind Kind
	ID   uint32
}

func (k Key) String() string { return fmt.Sprintf("%s#%d", k.Kind, k.ID) }

// Request is implemented only by the request types of this package.
type Request interface {
	Key() Key
	// Cached reports whether results of this kind are memoized.
	Cached() bool
	isRequest()
}

// HasInlinableInitializerRequest asks whether a nominal type, or any of its
// extensions, declares an initializer with Minimal resilience expansion.
type HasInlinableInitializerRequest struct{ Type ast.DeclID }

// ResilienceExpansionRequest asks how much of a declaration's body is
// visible to clients. Cheap, so it is recomputed every time.
type ResilienceExpansionRequest struct{ Decl ast.DeclID }

// ResolveTypeRequest follows typealiases down to a nominal type.
type ResolveTypeRequest struct{ Decl ast.DeclID }

// ExtendedNominalRequest resolves the type an extension extends.
type ExtendedNominalRequest struct{ Extension ast.DeclID }

// ExtensionsOfRequest lists the extensions of a nominal type.
type ExtensionsOfRequest struct{ Type ast.DeclID }

// InlinableTextRequest computes the canonical text of a subtree.
type InlinableTextRequest struct{ Node ast.NodeID }

// IsInlinableRequest asks whether a declaration exposes its implementation
// to clients.
type IsInlinableRequest struct{ Decl ast.DeclID }

func (r HasInlinableInitializerRequest) Key() Key {
	return Key{Kind: KindHasInlinableInitializer, ID: uint32(r.Type)}
}
func (r ResilienceExpansionRequest) Key() Key {
	return Key{Kind: KindResilienceExpansion, ID: uint32(r.Decl)}
}
func (r ResolveTypeRequest) Key() Key { return Key{Kind: KindResolveType, ID: uint32(r.Decl)} }
func (r ExtendedNominalRequest) Key() Key {
	return Key{Kind: KindExtendedNominal, ID: uint32(r.Extension)}
}
func (r ExtensionsOfRequest) Key() Key { return Key{Kind: KindExtensionsOf, ID: uint32(r.Type)} }
func (r InlinableTextRequest) Key() Key { return Key{Kind: KindInlinableText, ID: uint32(r.Node)} }
func (r IsInlinableRequest) Key() Key { return Key{Kind: KindIsInlinable, ID: uint32(r.Decl)} }

func (HasInlinableInitializerRequest) Cached() bool { return true }
func (ResilienceExpansionRequest) Cached() bool { return false }
func (ResolveTypeRequest) Cached() bool { return true }
func (ExtendedNominalRequest) Cached() bool { return true }
func (ExtensionsOfRequest) Cached() bool { return true }
func (InlinableTextRequest) Cached() bool { return true }
func (IsInlinableRequest) Cached() bool { return true }

func (HasInlinableInitializerRequest) isRequest() {}
func (ResilienceExpansionRequest) isRequest() {}
func (ResolveTypeRequest) isRequest() {}
func (ExtendedNominalRequest) isRequest() {}
func (ExtensionsOfRequest) isRequest() {}
func (InlinableTextRequest) isRequest() {}
func (IsInlinableRequest) isRequest() {}

// Expansion says whether a declaration's body is part of its ABI.
type Expansion uint8

const (
	// Maximal: the body is private to the defining module.
	Maximal Expansion = iota
	// Minimal: the body is emitted into clients and must be stable text.
	Minimal
)

func (e Expansion) String() string {
	if e == Minimal {
		return "minimal"
	}
	return "maximal"
}
