package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.AddVirtual("a.swift", []byte("one"))
	id2 := fs.AddVirtual("a.swift", []byte("two"))
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("a.swift")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "one" {
		t.Fatalf("old version content = %q", got)
	}
}

func TestLoadKeepsCRLFAndStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.swift")
	content := []byte("\xEF\xBB\xBFlet a = 1\r\nlet b = 2\r\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "let a = 1\r\nlet b = 2\r\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileHasCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF", f.Flags)
	}
	if got := f.GetLine(2); got != "let b = 2" {
		t.Fatalf("GetLine(2) = %q", got)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.swift", []byte("ab\ncd\n\nef"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.swift", []byte("hello world"))
	if got := fs.Text(Span{File: id, Start: 6, End: 11}); got != "world" {
		t.Fatalf("Text = %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-bounds span")
		}
	}()
	fs.Text(Span{File: id, Start: 6, End: 40})
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.swift")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}
