package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeRequest, false},
		{LevelDetail, ScopeRequest, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String()+"/"+tt.scope.String(), func(t *testing.T) {
			if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
				t.Fatalf("ShouldEmit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	sp := Begin(tr, ScopeRequest, "ResolveType(Foo)", 0)
	sp.WithExtra("cached", "true").End("ok")
	Begin(tr, ScopeNode, "walk", sp.ID()).End("")

	out := buf.String()
	if !strings.Contains(out, "→ ResolveType(Foo)") {
		t.Fatalf("missing begin line:\n%s", out)
	}
	if !strings.Contains(out, "← ResolveType(Foo) (ok) {cached=true}") {
		t.Fatalf("missing end line:\n%s", out)
	}
	if strings.Contains(out, "walk") {
		t.Fatalf("node scope leaked at detail level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Point(tr, ScopeRequest, "cycle", "A -> B -> A", 0)

	var ev map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("bad json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["name"] != "cycle" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestStreamTracerChromeIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatChrome)
	Begin(tr, ScopePass, "parse", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("bad chrome trace %q: %v", buf.String(), err)
	}
	if len(doc.TraceEvents) != 2 {
		t.Fatalf("events = %d, want 2", len(doc.TraceEvents))
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "b,c,d" {
		t.Fatalf("order = %s, want b,c,d", got)
	}
}

func TestBeginCtxPropagatesParent(t *testing.T) {
	r := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), r)

	ctx, outer := BeginCtx(ctx, ScopePass, "outer")
	_, inner := BeginCtx(ctx, ScopeRequest, "inner")
	inner.End("")
	outer.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("events = %d, want 4", len(snap))
	}
	if snap[1].Name != "inner" || snap[1].ParentID != outer.ID() {
		t.Fatalf("inner parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
	if RingOf(tr) != nil {
		t.Fatal("nop tracer has no ring")
	}
}
