package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"inlinable/internal/buildpipeline"
	"inlinable/internal/driver"
	"inlinable/internal/observ"
	"inlinable/internal/printer"
	"inlinable/internal/query"
	"inlinable/internal/ui"
)

// interfaceExt is appended to the input's base name under --out.
const interfaceExt = ".interface"

var interfaceCmd = &cobra.Command{
	Use:   "interface [flags] file...",
	Short: "Print the module interface of source files",
	Long: `Interface prints the client-visible declarations of each file. Bodies of
inlinable functions and stored properties of inlinable types are kept;
everything else is reduced to its header.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInterface,
}

func init() {
	interfaceCmd.Flags().StringP("out", "o", "", "write <name>"+interfaceExt+" files into this directory instead of stdout")
	interfaceCmd.Flags().IntP("jobs", "j", 0, "files processed in parallel (0 = GOMAXPROCS)")
	interfaceCmd.Flags().Bool("cache", false, "reuse interfaces from the disk cache (overrides [cache].enabled)")
	interfaceCmd.Flags().Bool("clean-cache", false, "drop the disk cache before running")
	interfaceCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	interfaceCmd.Flags().String("module-name", "", "module name recorded in the interface header")
	interfaceCmd.Flags().Int("indent", 4, "indent width")
	interfaceCmd.Flags().Bool("tabs", false, "indent with tabs")
	interfaceCmd.Flags().Bool("check", false, "reparse each printed interface and report its diagnostics")
}

func runInterface(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	outDir, err := flags.GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	moduleName, err := flags.GetString("module-name")
	if err != nil {
		return fmt.Errorf("failed to get module-name flag: %w", err)
	}
	indent, err := flags.GetInt("indent")
	if err != nil {
		return fmt.Errorf("failed to get indent flag: %w", err)
	}
	useTabs, err := flags.GetBool("tabs")
	if err != nil {
		return fmt.Errorf("failed to get tabs flag: %w", err)
	}
	check, err := flags.GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	cleanCache, err := flags.GetBool("clean-cache")
	if err != nil {
		return fmt.Errorf("failed to get clean-cache flag: %w", err)
	}

	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	if flags.Changed("cache") {
		if s.cfg.Cache.Enabled, err = flags.GetBool("cache"); err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
	}

	opts := driver.InterfaceOptions{
		Options: s.driverOptions(),
		Jobs:    jobs,
		Printer: printer.Options{IndentWidth: indent, UseTabs: useTabs, ModuleName: moduleName},
		Timings: s.timings,
	}
	if s.cfg.Cache.Enabled || cleanCache {
		dir, err := s.cfg.CacheDir()
		if err != nil {
			return err
		}
		cache, err := driver.OpenDiskCache(dir)
		if err != nil {
			return err
		}
		if cleanCache {
			if err := cache.DropAll(); err != nil {
				return err
			}
		}
		if s.cfg.Cache.Enabled {
			opts.Cache = cache
		}
	}

	var (
		results []driver.InterfaceResult
		total   *query.Counters
		runErr  error
	)
	run := func(sink buildpipeline.ProgressSink) error {
		opts.Sink = sink
		results, total, runErr = driver.InterfaceFiles(cmd.Context(), args, opts)
		return runErr
	}
	if !s.quiet && shouldUseTUI(mode, os.Stderr, len(args)) {
		if err := ui.RunProgress(cmd.ErrOrStderr(), "interface", args, run); err != nil && !errors.Is(err, runErr) {
			return err
		}
	} else {
		_ = run(nil)
	}
	if runErr != nil {
		return runErr
	}

	var failed bool
	out := cmd.OutOrStdout()
	for i, res := range results {
		if res.Bag != nil && res.Bag.HasErrors() {
			failed = true
		}
		if rerr := s.report(cmd.ErrOrStderr(), res.Bag, res.Files); rerr != nil && !errors.Is(rerr, errDiagnostics) {
			return rerr
		}
		if res.Text == "" {
			continue
		}
		if check {
			if ok, bag := printer.CheckReparse(res.Text, s.driverOptions().Conditions, s.cfg.Output.MaxDiagnostics); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: printed interface does not reparse cleanly\n", res.Path)
				_ = s.report(cmd.ErrOrStderr(), bag, nil)
				failed = true
			}
		}
		if outDir != "" {
			if err := writeInterface(outDir, res.Path, res.Text); err != nil {
				return err
			}
			continue
		}
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "// file: %s\n", res.Path)
		}
		fmt.Fprint(out, res.Text)
	}

	if s.timings && len(results) > 1 {
		reports := make([]observ.Report, 0, len(results))
		for _, res := range results {
			reports = append(reports, res.Timing)
		}
		fmt.Fprint(cmd.ErrOrStderr(), "all files ", observ.Merge(reports...).Summary())
	}
	printStats(cmd, s, total)
	if failed {
		return errDiagnostics
	}
	return nil
}

func writeInterface(dir, path, text string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	target := filepath.Join(dir, base+interfaceExt)
	if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
