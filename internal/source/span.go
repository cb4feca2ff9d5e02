package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside exactly one file.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both spans.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Overlaps reports whether the spans share at least one byte.
// Adjacent spans (a.End == b.Start) do not overlap.
func (s Span) Overlaps(other Span) bool {
	if s.File != other.File {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// Clip narrows s to the bounds of outer. The result may be empty.
func (s Span) Clip(outer Span) Span {
	if s.Start < outer.Start {
		s.Start = outer.Start
	}
	if s.End > outer.End {
		s.End = outer.End
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	return s
}
