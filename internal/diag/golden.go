package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"inlinable/internal/source"
)

// shortLine is one rendered entry of FormatShortDiagnostics.
type shortLine struct {
	label string
	code  string
	path  string
	pos   source.LineCol
	msg   string
}

// FormatShortDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set) as "severity CODE path:line:col message", ordered by
// location. Entries whose span does not resolve in fs are skipped. Tests
// compare against it.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var lines []shortLine
	add := func(label string, code Code, sp source.Span, msg string) {
		path, pos, ok := locate(fs, sp)
		if !ok {
			return
		}
		lines = append(lines, shortLine{label: label, code: code.ID(), path: path, pos: pos, msg: oneLine(msg)})
	}
	for _, d := range diags {
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			strings.Compare(a.code, b.code),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
	}
	return strings.Join(out, "\n")
}

// locate резолвит span; неизвестный файл или смещение дают ok=false.
func locate(fs *source.FileSet, sp source.Span) (path string, pos source.LineCol, ok bool) {
	if int(sp.File) >= fs.Len() {
		return "", pos, false
	}
	file := fs.Get(sp.File)
	if int(sp.End) > len(file.Content) {
		return "", pos, false
	}
	pos, _ = fs.Resolve(sp)
	path = filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return path, pos, true
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
