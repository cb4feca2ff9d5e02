package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"inlinable/internal/diag"
	"inlinable/internal/diagfmt"
	"inlinable/internal/lexer"
	"inlinable/internal/source"
)

func span(fid source.FileID, start, end uint32) source.Span {
	return source.Span{File: fid, Start: start, End: end}
}

func cycleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("a.sw", []byte("typealias A = B\ntypealias B = A\n"))
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SemaCircularReference, span(fid, 10, 11), "circular reference").
		WithNote(span(fid, 14, 15), "circular reference through 'B'")
	bag.Add(d)
	return bag, fs
}

func TestPrettyCaretAndNotes(t *testing.T) {
	bag, fs := cycleBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})

	want := "a.sw:1:11: error[SEM3001]: circular reference\n" +
		" 1 | typealias A = B\n" +
		"   |           ^\n" +
		"  note: a.sw:1:15: circular reference through 'B'\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyHidesNotesByDefault(t *testing.T) {
	bag, fs := cycleBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden:\n%s", buf.String())
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	content := "let 名前 = x\n"
	fid := fs.AddVirtual("w.sw", []byte(content))
	off := uint32(strings.Index(content, "x"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(fid, off, off+1), "unexpected"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output: %q", buf.String())
	}
	// "let " = 4, два широких символа = 4, " = " = 3
	if want := "   | " + strings.Repeat(" ", 11) + "^"; lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyTimingsWithoutLocation(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  "timings",
		Notes:    []diag.Note{{Msg: "parse: 1.00ms"}},
	})
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	want := "info[OBS6001]: timings\n  note: parse: 1.00ms\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := cycleBag(t)
	var buf bytes.Buffer
	err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM3001" || d.Severity != "ERROR" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location == nil || d.Location.StartLine != 1 || d.Location.StartCol != 11 {
		t.Fatalf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "circular reference through 'B'" {
		t.Fatalf("unexpected notes %+v", d.Notes)
	}
}

func TestJSONMaxAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("f.sw", []byte("extension Q {}\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaUnknownExtendedType, span(fid, 10, 11), "cannot find type 'Q' in scope").
		WithFix("rename to P", diag.FixEdit{Span: span(fid, 10, 11), NewText: "P"}))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(fid, 0, 9), "second"))

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 1, IncludeFixes: true})
	if out.Count != 1 {
		t.Fatalf("count = %d, want 1", out.Count)
	}
	fixes := out.Diagnostics[0].Fixes
	if len(fixes) != 1 || len(fixes[0].Edits) != 1 {
		t.Fatalf("unexpected fixes %+v", fixes)
	}
	if e := fixes[0].Edits[0]; e.OldText != "Q" || e.NewText != "P" {
		t.Fatalf("unexpected edit %+v", e)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("t.sw", []byte("x // c\n"))
	toks := lexer.Tokenize(fs.Get(fid), lexer.Options{})

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"x"`, "trailing: Space, LineComment", "EOF", "leading: Newline"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := diagfmt.FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var decoded []diagfmt.TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 || decoded[0].Kind != "Ident" || decoded[1].Kind != "EOF" {
		t.Fatalf("unexpected tokens %+v", decoded)
	}
}

func TestParsePathMode(t *testing.T) {
	for _, m := range []diagfmt.PathMode{diagfmt.PathModeAuto, diagfmt.PathModeAbsolute, diagfmt.PathModeRelative, diagfmt.PathModeBasename} {
		got, ok := diagfmt.ParsePathMode(m.String())
		if !ok || got != m {
			t.Errorf("round trip %v -> %v", m, got)
		}
	}
	if _, ok := diagfmt.ParsePathMode("weird"); ok {
		t.Error("expected failure")
	}
}
