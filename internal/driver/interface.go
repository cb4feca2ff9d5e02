package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"inlinable/internal/buildpipeline"
	"inlinable/internal/diag"
	"inlinable/internal/observ"
	"inlinable/internal/printer"
	"inlinable/internal/query"
	"inlinable/internal/source"
	"inlinable/internal/trace"
)

// InterfaceOptions configure InterfaceFiles. Options.Stats and
// Options.Timer are ignored: every file gets its own.
type InterfaceOptions struct {
	Options
	// Jobs limits parallel files; <= 0 means GOMAXPROCS.
	Jobs    int
	Cache   *DiskCache
	Sink    buildpipeline.ProgressSink
	Printer printer.Options
	// Timings appends an ObsTimings diagnostic to every result bag.
	Timings bool
}

// InterfaceResult содержит результат обработки одного файла.
type InterfaceResult struct {
	Path   string
	Text   string
	Files  *source.FileSet
	Bag    *diag.Bag
	Cached bool
	Timing observ.Report
	Stats  *query.Counters
}

// Interface renders the module interface of the session's file.
func (s *Session) Interface(ctx context.Context, opt printer.Options) (string, error) {
	done := s.Timer.Track("print")
	text, err := printer.PrintFile(ctx, s.Eval, s.Files, s.Root, opt)
	done("")
	return text, err
}

// InterfaceFiles renders the interface of every path in parallel. Each
// file gets its own session and evaluator, so nothing is shared between
// goroutines except the disk cache and the progress sink. Results keep the
// order of paths; the returned counters sum every session.
//
// A file that cannot be loaded yields a result with an I/O diagnostic. An
// evaluation error aborts the whole run.
func InterfaceFiles(ctx context.Context, paths []string, opts InterfaceOptions) ([]InterfaceResult, *query.Counters, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "interface")
	defer span.End(fmt.Sprintf("%d files", len(paths)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for _, path := range paths {
		buildpipeline.Emit(opts.Sink, buildpipeline.Event{File: path, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]InterfaceResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := interfaceOne(gctx, path, opts)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, nil, err
	}

	total := query.NewCounters()
	for _, r := range results {
		total.Merge(r.Stats)
	}
	return results, total, nil
}

func interfaceOne(ctx context.Context, path string, opts InterfaceOptions) (InterfaceResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, path)
	defer span.End("")

	start := time.Now()
	emit := func(stage buildpipeline.Stage, status buildpipeline.Status, err error) {
		buildpipeline.Emit(opts.Sink, buildpipeline.Event{
			File:    path,
			Stage:   stage,
			Status:  status,
			Err:     err,
			Elapsed: time.Since(start),
		})
	}

	res := InterfaceResult{Path: path, Stats: query.NewCounters()}
	timer := observ.NewTimer()
	finish := func() InterfaceResult {
		res.Timing = timer.Report()
		if opts.Timings {
			res.Bag = AppendTimings(res.Bag, "interface", path, res.Timing)
		}
		return res
	}

	emit(buildpipeline.StageLoad, buildpipeline.StatusWorking, nil)
	fs := source.NewFileSet()
	res.Files = fs
	done := timer.Track("load")
	fid, err := fs.Load(path)
	done("")
	if err != nil {
		res.Bag = diag.NewBag(1)
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
		emit(buildpipeline.StageLoad, buildpipeline.StatusError, err)
		return finish(), nil
	}
	file := fs.Get(fid)
	hash := Digest(file.Hash)
	key := cacheKey(hash, opts.Conditions)

	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err == nil && hit && payload.ContentHash == hash {
			res.Text = payload.Interface
			res.Cached = true
			res.Bag = diag.NewBag(bagLimit(opts.MaxDiagnostics))
			span.WithExtra("cache", "hit")
			emit(buildpipeline.StageLoad, buildpipeline.StatusCached, nil)
			return finish(), nil
		}
		// повреждённая запись: просто пересчитываем
	}

	emit(buildpipeline.StageParse, buildpipeline.StatusWorking, nil)
	sopts := opts.Options
	sopts.Stats = res.Stats
	sopts.Timer = timer
	s := openFile(ctx, fs, fid, sopts)
	res.Bag = s.Bag

	emit(buildpipeline.StageQuery, buildpipeline.StatusWorking, nil)
	text, err := s.Interface(ctx, opts.Printer)
	if err != nil {
		emit(buildpipeline.StagePrint, buildpipeline.StatusError, err)
		return finish(), fmt.Errorf("%s: %w", path, err)
	}
	res.Text = text

	if opts.Cache != nil && !s.Bag.HasErrors() {
		err := opts.Cache.Put(key, &DiskPayload{
			Path:        path,
			ContentHash: hash,
			Interface:   text,
			Decls:       len(s.AST.Files.Get(s.Root).Decls),
		})
		if err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: fid},
				"cannot write interface cache: "+err.Error()).Emit()
		}
	}
	emit(buildpipeline.StagePrint, buildpipeline.StatusDone, nil)
	return finish(), nil
}
