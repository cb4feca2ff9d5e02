package printer_test

import (
	"context"
	"strings"
	"testing"

	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/parser"
	"inlinable/internal/printer"
	"inlinable/internal/query"
	"inlinable/internal/source"
)

func printSource(t *testing.T, src string) (string, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("geometry.swift", []byte(src)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	parseBag := diag.NewBag(100)
	res := parser.ParseFile(f, b, parser.Options{
		Reporter:   diag.BagReporter{Bag: parseBag},
		Conditions: parser.NewConditions(nil, "linux", "x86_64"),
	})
	if parseBag.Len() != 0 {
		t.Fatalf("parse diagnostics: %s", diag.FormatShortDiagnostics(parseBag.Items(), fs, false))
	}
	bag := diag.NewBag(100)
	ev := query.New(fs, b, query.Options{Reporter: diag.BagReporter{Bag: bag}})
	out, err := printer.PrintFile(context.Background(), ev, fs, res.File, printer.Options{})
	if err != nil {
		t.Fatalf("PrintFile: %v", err)
	}
	return out, bag
}

const header = "// inlinable-interface-format-version: 1\n// module-name: geometry\n"

func TestPrintFile(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "frozen struct exposes layout and inlinable bodies",
			src: `import Foundation

@frozen
public struct Point {
    public var x: Int = 0 // origin
    var y: Int = 1
    @inlinable public init(x: Int = /* d */ 2) {
        self.x = x
        #if DEBUG
        log()
        #endif
    }
    public func norm() -> Int {
        return x * x
    }
    private func hidden() {}
}
`,
			want: "import Foundation\n" +
				"@frozen public struct Point {\n" +
				"    public var x: Int = 0\n" +
				"    var y: Int = 1\n" +
				"    @inlinable public init(x: Int = 2) {\n" +
				"        self.x = x\n" +
				"    }\n" +
				"    public func norm() -> Int\n" +
				"}\n",
		},
		{
			name: "resilient struct hides initial values",
			src: `public struct Box {
    public var v: Int = 3
    var hidden: Int = 4
    public init() {}
}
`,
			want: "public struct Box {\n" +
				"    public var v: Int\n" +
				"    public init()\n" +
				"}\n",
		},
		{
			name: "inlinable initializer in extension",
			src: `public struct Size {
    public var w: Int = 5
}
extension Size {
    @inlinable public init(w: Int) { self.w = w }
}
internal struct Secret {}
`,
			want: "public struct Size {\n" +
				"    public var w: Int = 5\n" +
				"}\n" +
				"extension Size {\n" +
				"    @inlinable public init(w: Int) { self.w = w }\n" +
				"}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bag := printSource(t, tt.src)
			if got != header+tt.want {
				t.Fatalf("interface mismatch:\n%s\nwant:\n%s", got, header+tt.want)
			}
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %d", bag.Len())
			}
			if ok, rb := printer.CheckReparse(got, parser.NewConditions(nil, "linux", "x86_64"), 10); !ok {
				t.Fatalf("interface does not reparse: %d diagnostics", rb.Len())
			}
		})
	}
}

func TestPrintFileCycleIsNotInlinable(t *testing.T) {
	src := `public typealias A = B
public typealias B = A
extension A {
    public var z: Int = 1
}
`
	got, bag := printSource(t, src)
	want := header +
		"public typealias A = B\n" +
		"public typealias B = A\n" +
		"extension A {\n" +
		"    public var z: Int\n" +
		"}\n"
	if got != want {
		t.Fatalf("interface mismatch:\n%s\nwant:\n%s", got, want)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaCircularReference {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a circular reference diagnostic, got %d diagnostics", bag.Len())
	}
}

func TestPrintFileOptions(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("x.swift", []byte("public struct S {\n    public let a: Int\n}\n")))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(f, b, parser.Options{})
	ev := query.New(fs, b, query.Options{})
	out, err := printer.PrintFile(context.Background(), ev, fs, res.File, printer.Options{UseTabs: true, ModuleName: "M"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "// module-name: M\n") || !strings.Contains(out, "\tpublic let a: Int\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPrintFileRejectsMissingFile(t *testing.T) {
	fs := source.NewFileSet()
	b := ast.NewBuilder(ast.Hints{}, nil)
	ev := query.New(fs, b, query.Options{})
	if _, err := printer.PrintFile(context.Background(), ev, fs, ast.NoFileID, printer.Options{}); err == nil {
		t.Fatal("expected error for unknown file")
	}
}
