package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"inlinable/internal/ast"
	"inlinable/internal/config"
	"inlinable/internal/diag"
	"inlinable/internal/observ"
	"inlinable/internal/parser"
	"inlinable/internal/query"
	"inlinable/internal/source"
	"inlinable/internal/trace"
)

// Options configure one session.
type Options struct {
	Conditions parser.Conditions
	// MaxDiagnostics ограничивает Bag; 0: без ограничения.
	MaxDiagnostics int
	// Stats observes the evaluator; nil means a fresh query.Counters.
	Stats query.Stats
	// Timer records phase timings; nil disables them.
	Timer *observ.Timer
}

// OptionsFromConfig maps the project settings onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Conditions:     parser.NewConditions(cfg.Build.Defines, cfg.Build.Platform.OS, cfg.Build.Platform.Arch),
		MaxDiagnostics: cfg.Output.MaxDiagnostics,
	}
}

// Session is one parsed file together with the evaluator answering
// requests about it. A session is confined to a single goroutine.
type Session struct {
	Files *source.FileSet
	File  *source.File
	AST   *ast.Builder
	Root  ast.FileID
	Bag   *diag.Bag
	Eval  *query.Evaluator
	Stats query.Stats
	Timer *observ.Timer
}

func bagLimit(n int) int {
	if n <= 0 {
		return int(^uint16(0))
	}
	return n
}

// Open loads path from disk and parses it.
func Open(ctx context.Context, path string, opts Options) (*Session, error) {
	fs := source.NewFileSet()
	done := opts.Timer.Track("load")
	fid, err := fs.Load(path)
	done("")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return openFile(ctx, fs, fid, opts), nil
}

// OpenSource parses content registered under name. Used by tests and stdin.
func OpenSource(ctx context.Context, name string, content []byte, opts Options) *Session {
	fs := source.NewFileSet()
	return openFile(ctx, fs, fs.AddVirtual(name, content), opts)
}

func openFile(ctx context.Context, fs *source.FileSet, fid source.FileID, opts Options) *Session {
	file := fs.Get(fid)
	bag := diag.NewBag(bagLimit(opts.MaxDiagnostics))
	b := ast.NewBuilder(ast.Hints{Decls: declHint(file)}, nil)

	_, span := trace.BeginCtx(ctx, trace.ScopePass, "parse")
	done := opts.Timer.Track("parse")
	res := parser.ParseFile(file, b, parser.Options{
		Reporter:   diag.BagReporter{Bag: bag},
		MaxErrors:  uint(bag.Cap()),
		Conditions: opts.Conditions,
	})
	done(fmt.Sprintf("%d tokens", res.Tokens))
	span.WithExtra("tokens", fmt.Sprint(res.Tokens)).End("")

	stats := opts.Stats
	if stats == nil {
		stats = query.NewCounters()
	}
	eval := query.New(fs, b, query.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Stats:    stats,
	})
	return &Session{
		Files: fs,
		File:  file,
		AST:   b,
		Root:  res.File,
		Bag:   bag,
		Eval:  eval,
		Stats: stats,
		Timer: opts.Timer,
	}
}

// грубая оценка: одно объявление на ~64 байта
func declHint(f *source.File) uint {
	n, err := safecast.Conv[uint](len(f.Content) / 64)
	if err != nil {
		return 0
	}
	return n
}

// Decls returns the active declarations named name in source order; an
// empty name selects every active declaration.
func (s *Session) Decls(name string) []ast.DeclID {
	var out []ast.DeclID
	for i, d := range s.AST.Decls.Arena.Slice() {
		id := ast.DeclID(i + 1)
		if d.Inactive {
			continue
		}
		if name == "" || s.AST.Name(id) == name {
			out = append(out, id)
		}
	}
	return out
}
