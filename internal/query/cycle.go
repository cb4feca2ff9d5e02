package query

import (
	"fmt"
	"strings"

	"inlinable/internal/diag"
	"inlinable/internal/source"
)

// CycleError reports that a request was asked for while it was already
// being evaluated. Chain holds every in-flight request in call order
// followed by the repeated one; Chain[Start] is its first occurrence.
type CycleError struct {
	Chain []Request
	Start int
}

func (e *CycleError) Error() string {
	parts := make([]string, 0, len(e.Chain)-e.Start)
	for _, r := range e.Chain[e.Start:] {
		parts = append(parts, r.Key().String())
	}
	return "request cycle: " + strings.Join(parts, " -> ")
}

// Cycle returns the requests that form the loop, repeated request included.
func (e *CycleError) Cycle() []Request {
	return e.Chain[e.Start:]
}

// Describer names and locates the subject of a request.
type Describer interface {
	Subject(req Request) (name string, sp source.Span)
}

// Diagnose reports the cycle: an error at the first request of the loop
// and a note for every further step.
func (e *CycleError) Diagnose(r diag.Reporter, d Describer) {
	loop := e.Cycle()
	if len(loop) == 0 {
		return
	}
	_, primary := d.Subject(loop[0])
	b := diag.ReportError(r, diag.SemaCircularReference, primary, "circular reference")
	for _, req := range loop[1 : len(loop)-1] {
		name, sp := d.Subject(req)
		b.WithNote(sp, fmt.Sprintf("circular reference through '%s'", name))
	}
	b.Emit()
}
