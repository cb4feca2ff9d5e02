package printer

import (
	"strings"
)

// Writer accumulates interface text and tracks indentation.
type Writer struct {
	opt         Options
	buf         strings.Builder
	indentLevel int
}

func newWriter(opt Options) *Writer {
	return &Writer{opt: opt}
}

func (w *Writer) String() string { return w.buf.String() }

func (w *Writer) indent() { w.indentLevel++ }

func (w *Writer) dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

func (w *Writer) writeIndent() {
	if w.opt.UseTabs {
		w.buf.WriteString(strings.Repeat("\t", w.indentLevel))
		return
	}
	w.buf.WriteString(strings.Repeat(" ", w.indentLevel*w.opt.IndentWidth))
}

// Line writes s on its own line at the current indentation. Embedded
// newlines are kept as they are: extracted bodies carry their own layout.
func (w *Writer) Line(s string) {
	w.writeIndent()
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

// Comment writes a // line.
func (w *Writer) Comment(s string) {
	w.Line("// " + s)
}
