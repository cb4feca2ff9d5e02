package source

import (
	"fmt"

	"fortio.org/safecast"
)

// LineStart returns the offset of the first byte of the line containing off.
// '\n', '\r' and "\r\n" all terminate a line.
func (f *File) LineStart(off uint32) uint32 {
	f.checkOffset(off)
	for off > 0 {
		b := f.Content[off-1]
		if b == '\n' || b == '\r' {
			break
		}
		off--
	}
	return off
}

// LineEnd returns the offset just past the newline terminating the line that
// contains off, or the end of the file for the last line.
func (f *File) LineEnd(off uint32) uint32 {
	f.checkOffset(off)
	n := f.Span().End
	for off < n {
		switch f.Content[off] {
		case '\n':
			return off + 1
		case '\r':
			if off+1 < n && f.Content[off+1] == '\n' {
				return off + 2
			}
			return off + 1
		}
		off++
	}
	return n
}

// LineSpan returns the span [LineStart(off), LineEnd(off)).
func (f *File) LineSpan(off uint32) Span {
	return Span{File: f.ID, Start: f.LineStart(off), End: f.LineEnd(off)}
}

func (f *File) checkOffset(off uint32) {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if off > n {
		panic(fmt.Sprintf("source: offset %d out of bounds in %s (len %d)", off, f.Path, n))
	}
}
