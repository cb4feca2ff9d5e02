package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"inlinable/internal/diag"
	"inlinable/internal/source"
)

type palette struct {
	err, warn, info, note, loc, gutter, caret, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.loc, p.gutter, p.caret, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: error[SEM3001]: message
//	   3 | typealias A = B
//	     |           ^
//	   note: <path>:<line>:<col>: circular reference through 'B'
//
// Ожидается bag.Sort() заранее. Колонка каретки учитывает ширину
// символов (CJK, эмодзи) и табы.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := d.Severity.Label()
	head := p.severity(d.Severity).Sprintf("%s[%s]", sev, d.Code.ID())
	if d.Code == diag.ObsTimings || !validSpan(fs, d.Primary) {
		fmt.Fprintf(w, "%s: %s\n", head, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s: %s\n", p.loc.Sprint(location(fs, d.Primary, opts.PathMode)), head, d.Message)
		writeSnippet(w, fs, d.Primary, opts, p)
	}

	if opts.ShowNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			if d.Code != diag.ObsTimings && validSpan(fs, n.Span) {
				fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
			} else {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			}
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.fix.Sprint("fix:"), fix.Title)
			for _, e := range fix.Edits {
				fmt.Fprintf(w, "    %s -> %q\n", location(fs, e.Span, opts.PathMode), e.NewText)
			}
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

// writeSnippet prints the first line of sp with a caret underline.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	lineStart := f.LineStart(sp.Start)

	prefix := expandTabs(string(f.Content[lineStart:sp.Start]))
	line = expandTabs(line)

	// подчёркиваем только до конца первой строки
	underEnd := sp.End
	if end.Line != start.Line {
		underEnd = min(f.LineEnd(sp.Start), sp.End)
	}
	marked := expandTabs(strings.TrimRight(string(f.Content[sp.Start:underEnd]), "\r\n"))

	col := runewidth.StringWidth(prefix)
	width := max(runewidth.StringWidth(marked), 1)
	if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
		line = runewidth.Truncate(line, opts.Width, "…")
	}

	num := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), line)
	fmt.Fprintf(w, " %s %s %s%s\n", pad, p.gutter.Sprint("|"),
		strings.Repeat(" ", col), p.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
