package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inlinable/internal/buildpipeline"
	"inlinable/internal/config"
	"inlinable/internal/diag"
	"inlinable/internal/observ"
	"inlinable/internal/parser"
	"inlinable/internal/query"
	"inlinable/internal/source"
)

const libSource = `public struct Point {
    public var x: Int = 0
    @inlinable public init(x: Int = 1) {
        #if DEBUG
        trace()
        #endif
        self.x = x // store
    }
}
public typealias Loop = Loop
`

func testOptions() Options {
	return Options{Conditions: parser.NewConditions(nil, "linux", "x86_64")}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSessionExtract(t *testing.T) {
	s := OpenSource(context.Background(), "lib.swift", []byte(libSource), testOptions())
	if s.Bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %d", s.Bag.Len())
	}
	got, err := s.Extract(context.Background(), "init")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("extracted %d parts, want 2", len(got))
	}
	if got[0].Part != PartDefault || got[0].Param != "x" || got[0].Text != "1" {
		t.Fatalf("unexpected default %+v", got[0])
	}
	if got[0].Label() != "init init: default x" {
		t.Fatalf("label = %q", got[0].Label())
	}
	wantBody := "{\n        self.x = x \n    }"
	if got[1].Part != PartBody || got[1].Text != wantBody {
		t.Fatalf("body = %q, want %q", got[1].Text, wantBody)
	}

	all, err := s.Extract(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	// x = 0, default, body
	if len(all) != 3 {
		t.Fatalf("extracted %d parts for all decls, want 3", len(all))
	}
}

func TestSessionHasInlinableInitializer(t *testing.T) {
	s := OpenSource(context.Background(), "lib.swift", []byte(libSource), testOptions())
	ctx := context.Background()

	has, err := s.HasInlinableInitializer(ctx, "Point")
	if err != nil || !has {
		t.Fatalf("Point: has=%v err=%v", has, err)
	}

	if _, err := s.HasInlinableInitializer(ctx, "Missing"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Missing: err = %v", err)
	}

	_, err = s.HasInlinableInitializer(ctx, "Loop")
	var cyc *query.CycleError
	if !errors.As(err, &cyc) {
		t.Fatalf("Loop: err = %v, want cycle", err)
	}
	if !s.Bag.HasErrors() {
		t.Fatal("cycle must be diagnosed")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Build.Defines = []string{"DEBUG"}
	opts := OptionsFromConfig(&cfg)
	if !opts.Conditions.Defines["DEBUG"] || opts.MaxDiagnostics != 100 {
		t.Fatalf("unexpected options %+v", opts)
	}

	s := OpenSource(context.Background(), "lib.swift", []byte(libSource), opts)
	got, err := s.Extract(context.Background(), "init")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got[1].Text, "trace()") {
		t.Fatalf("DEBUG branch must be kept: %q", got[1].Text)
	}
}

func TestCacheKey(t *testing.T) {
	var content Digest
	content[0] = 1
	base := cacheKey(content, parser.NewConditions([]string{"A", "B"}, "linux", "arm64"))
	same := cacheKey(content, parser.NewConditions([]string{"B", "A"}, "linux", "arm64"))
	if base != same {
		t.Fatal("define order must not change the key")
	}
	for name, conds := range map[string]parser.Conditions{
		"defines": parser.NewConditions([]string{"A"}, "linux", "arm64"),
		"os":      parser.NewConditions([]string{"A", "B"}, "darwin", "arm64"),
		"arch":    parser.NewConditions([]string{"A", "B"}, "linux", "x86_64"),
	} {
		if cacheKey(content, conds) == base {
			t.Errorf("%s: key did not change", name)
		}
	}
	if base.IsZero() || len(base.String()) != 64 {
		t.Fatalf("bad digest %s", base)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var key Digest
	key[3] = 7

	var out DiskPayload
	if hit, err := c.Get(key, &out); hit || err != nil {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}
	if err := c.Put(key, &DiskPayload{Path: "a.swift", Interface: "public struct S {}\n"}); err != nil {
		t.Fatal(err)
	}
	hit, err := c.Get(key, &out)
	if !hit || err != nil || out.Interface != "public struct S {}\n" {
		t.Fatalf("hit=%v err=%v payload=%+v", hit, err, out)
	}
	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, _ := c.Get(key, &out); hit {
		t.Fatal("DropAll must invalidate entries")
	}

	var nilCache *DiskCache
	if hit, err := nilCache.Get(key, &out); hit || err != nil {
		t.Fatal("nil cache must miss")
	}
}

func TestInterfaceFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.swift", libSource)
	b := writeFile(t, dir, "b.swift", "public func f() {}\n")
	missing := filepath.Join(dir, "missing.swift")

	cache, err := OpenDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	var sink buildpipeline.RecordingSink
	opts := InterfaceOptions{Options: testOptions(), Jobs: 2, Cache: cache, Sink: &sink, Timings: true}

	results, stats, err := InterfaceFiles(context.Background(), []string{a, b, missing}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	if !strings.Contains(results[0].Text, "public var x: Int = 0") {
		t.Fatalf("a.swift interface:\n%s", results[0].Text)
	}
	if !strings.Contains(results[1].Text, "public func f()\n") {
		t.Fatalf("b.swift interface:\n%s", results[1].Text)
	}
	if results[2].Text != "" || !results[2].Bag.HasErrors() {
		t.Fatal("missing file must produce an I/O error")
	}
	if ev, _ := stats.Total(); ev == 0 {
		t.Fatal("expected evaluated requests")
	}
	for _, r := range results {
		if !hasCode(r.Bag, diag.ObsTimings) {
			t.Errorf("%s: missing timings diagnostic", r.Path)
		}
	}

	finished := 0
	for _, ev := range sink.Events() {
		if ev.Status.Finished() {
			finished++
		}
	}
	if finished != 3 {
		t.Fatalf("finished events = %d, want 3", finished)
	}

	again, _, err := InterfaceFiles(context.Background(), []string{a, b}, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range again {
		if !r.Cached || r.Text != results[i].Text {
			t.Errorf("%s: cached=%v, text changed=%v", r.Path, r.Cached, r.Text != results[i].Text)
		}
	}
}

func TestAppendTimingsOverflow(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{}, "x"))
	report := observ.Report{TotalMS: 1.5, Phases: []observ.PhaseReport{{Name: "parse", DurationMS: 1.5}}}

	got := AppendTimings(bag, "", "a.swift", report)
	if got.Len() != 2 || !hasCode(got, diag.ObsTimings) {
		t.Fatalf("timings not appended: %d", got.Len())
	}
	d := got.Items()[1]
	if d.Message != "timings (pipeline): total 1.50 ms: a.swift" {
		t.Fatalf("message = %q", d.Message)
	}
	if !strings.Contains(d.Notes[0].Msg, `"name":"parse"`) {
		t.Fatalf("note = %q", d.Notes[0].Msg)
	}
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.swift", "let a = 1 /* c */\n")
	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 || len(res.Tokens) != 5 {
		t.Fatalf("tokens = %d, diagnostics = %d", len(res.Tokens), res.Bag.Len())
	}
	if _, err := Tokenize(filepath.Join(t.TempDir(), "nope.swift"), 0); err == nil {
		t.Fatal("expected load error")
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
