package ui

import (
	"errors"
	"strings"
	"testing"

	"inlinable/internal/buildpipeline"
	"inlinable/internal/query"
)

func TestApplyEventProgress(t *testing.T) {
	m := NewProgressModel("interface", []string{"a.swift", "b.swift"}, nil).(*progressModel)

	m.applyEvent(buildpipeline.Event{File: "a.swift", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	if got := m.percent(); got != 0.15 {
		t.Fatalf("percent = %v, want 0.15", got)
	}

	m.applyEvent(buildpipeline.Event{File: "a.swift", Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusCached})
	m.applyEvent(buildpipeline.Event{File: "b.swift", Stage: buildpipeline.StagePrint, Status: buildpipeline.StatusError, Err: errors.New("x")})
	m.applyEvent(buildpipeline.Event{File: "unknown.swift", Status: buildpipeline.StatusDone})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}

	view := m.View()
	for _, want := range []string{"interface", "cached", "error", "a.swift", "b.swift"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"abcdef", 3, "abc"},
		{"名前名前名前", 7, "名前..."},
		{"x", 0, "x"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestStatsTable(t *testing.T) {
	c := query.NewCounters()
	c.RequestEvaluated(query.KindHasInlinableInitializer)
	c.RequestEvaluated(query.KindHasInlinableInitializer)
	c.CacheHit(query.KindHasInlinableInitializer)

	out := StatsTable(c)
	for _, want := range []string{"request", "HasInlinableInitializer", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ResolveType") {
		t.Errorf("unused kinds must be omitted:\n%s", out)
	}
}

func TestStatsTableHeaderAndTotals(t *testing.T) {
	c := query.NewCounters()
	c.RequestEvaluated(query.KindResolveType)
	c.RequestEvaluated(query.KindResolveType)
	c.RequestEvaluated(query.KindResolveType)
	c.CacheHit(query.KindExtensionsOf)

	lines := strings.Split(StatsTable(c), "\n")
	find := func(sub string) int {
		for i, l := range lines {
			if strings.Contains(l, sub) {
				return i
			}
		}
		t.Fatalf("no line with %q:\n%s", sub, strings.Join(lines, "\n"))
		return -1
	}
	header := find("cache hits")
	if !strings.Contains(lines[header], "request") || !strings.Contains(lines[header], "evaluated") {
		t.Fatalf("header = %q", lines[header])
	}
	resolve := find("ResolveType")
	ext := find("ExtensionsOf")
	total := find("total")
	if !(header < resolve && resolve < ext && ext < total) {
		t.Fatalf("row order: header %d, ResolveType %d, ExtensionsOf %d, total %d", header, resolve, ext, total)
	}
	fields := strings.FieldsFunc(lines[total], func(r rune) bool { return r == ' ' || r == '│' || r == '|' })
	if len(fields) != 3 || fields[1] != "3" || fields[2] != "1" {
		t.Fatalf("total row = %q", lines[total])
	}
}
