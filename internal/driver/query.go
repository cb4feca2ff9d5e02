package driver

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a type name does not resolve.
var ErrUnknownType = errors.New("unknown type")

// HasInlinableInitializer answers the request for the type named name.
// Typealiases are followed; a cycle is diagnosed into the session bag and
// returned as the error.
func (s *Session) HasInlinableInitializer(ctx context.Context, name string) (bool, error) {
	done := s.Timer.Track("query")
	defer done("has-init " + name)

	id, ok := s.Eval.LookupType(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	nominal, err := s.Eval.ResolveType(ctx, id)
	if err != nil {
		s.Eval.DiagnoseCycle(err)
		return false, err
	}
	if !nominal.IsValid() {
		return false, fmt.Errorf("%w: %s is not a nominal type", ErrUnknownType, name)
	}
	has, err := s.Eval.HasInlinableInitializer(ctx, nominal)
	if err != nil {
		s.Eval.DiagnoseCycle(err)
		return false, err
	}
	return has, nil
}
