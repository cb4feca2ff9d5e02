package source

import (
	"fmt"
	"slices"
)

// RangeSet collects non-overlapping spans of a single file.
// It is transient working data: build it, sort it, consume it.
type RangeSet struct {
	file   FileID
	spans  []Span
	sorted bool
}

// NewRangeSet creates an empty set bound to file.
func NewRangeSet(file FileID) *RangeSet {
	return &RangeSet{file: file, sorted: true}
}

// Add inserts sp. Empty spans are ignored. A span from another file or with
// Start > End is a programming error.
func (rs *RangeSet) Add(sp Span) {
	if sp.File != rs.file {
		panic(fmt.Sprintf("source: range %s added to set of file %d", sp, rs.file))
	}
	if sp.End < sp.Start {
		panic(fmt.Sprintf("source: inverted range %s", sp))
	}
	if sp.Empty() {
		return
	}
	rs.spans = append(rs.spans, sp)
	rs.sorted = false
}

// Len returns the number of stored spans.
func (rs *RangeSet) Len() int { return len(rs.spans) }

// Empty reports whether the set holds no spans.
func (rs *RangeSet) Empty() bool { return len(rs.spans) == 0 }

// Spans returns the stored spans. Callers must not modify the slice.
func (rs *RangeSet) Spans() []Span { return rs.spans }

// SortAndValidate orders the spans by start offset and panics if any two
// overlap. Sharing a boundary is allowed.
func (rs *RangeSet) SortAndValidate() {
	if !rs.sorted {
		slices.SortFunc(rs.spans, func(a, b Span) int {
			switch {
			case a.Start < b.Start:
				return -1
			case a.Start > b.Start:
				return 1
			}
			return 0
		})
		rs.sorted = true
	}
	for i := 1; i < len(rs.spans); i++ {
		if rs.spans[i-1].Overlaps(rs.spans[i]) {
			panic(fmt.Sprintf("source: overlapping ranges %s and %s", rs.spans[i-1], rs.spans[i]))
		}
	}
}

// Complement returns the parts of full not covered by the set, in order.
// Stored spans are clipped to full; empty pieces are dropped.
func (rs *RangeSet) Complement(full Span) []Span {
	if full.File != rs.file {
		panic(fmt.Sprintf("source: complement over %s in set of file %d", full, rs.file))
	}
	rs.SortAndValidate()

	out := make([]Span, 0, len(rs.spans)+1)
	cursor := full.Start
	for _, sp := range rs.spans {
		sp = sp.Clip(full)
		if sp.Empty() {
			continue
		}
		if sp.Start > cursor {
			out = append(out, Span{File: rs.file, Start: cursor, End: sp.Start})
		}
		if sp.End > cursor {
			cursor = sp.End
		}
	}
	if cursor < full.End {
		out = append(out, Span{File: rs.file, Start: cursor, End: full.End})
	}
	return out
}
