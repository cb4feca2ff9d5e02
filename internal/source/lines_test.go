package source

import "testing"

func TestLineStartEnd(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.swift", []byte("#if A\r\nfoo()\rbar()\n#endif")))

	tests := []struct {
		name       string
		off        uint32
		start, end uint32
	}{
		{"first line start", 0, 0, 7},
		{"first line middle", 4, 0, 7},
		{"on carriage return", 5, 0, 7},
		{"lone cr line", 9, 7, 13},
		{"lf line", 15, 13, 19},
		{"last line without newline", 22, 19, 25},
		{"end of file", 25, 19, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.LineStart(tt.off); got != tt.start {
				t.Errorf("LineStart(%d) = %d, want %d", tt.off, got, tt.start)
			}
			if got := f.LineEnd(tt.off); got != tt.end {
				t.Errorf("LineEnd(%d) = %d, want %d", tt.off, got, tt.end)
			}
		})
	}
}

func TestLineOffsetOutOfBoundsPanics(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("p.swift", []byte("x")))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	f.LineEnd(2)
}
