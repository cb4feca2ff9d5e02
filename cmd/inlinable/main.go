package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"inlinable/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "inlinable",
	Short: "Inlinable text extraction and module interface printer",
	Long: `inlinable answers demand-driven queries about a source file and
prints the parts of it that clients may inline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runTraceCleanup()
	},
}

// errDiagnostics is returned after error diagnostics were already printed.
var errDiagnostics = errors.New("errors reported")

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(interfaceCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress warnings and notes")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Bool("stats", false, "print per-request evaluation counters")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to keep (0 = unlimited)")
	rootCmd.PersistentFlags().String("config", "", "path to "+configFileHint+" (default: discovered from the input directory)")
	rootCmd.PersistentFlags().StringArrayP("define", "D", nil, "compilation condition treated as true (repeatable)")
	rootCmd.PersistentFlags().String("diag-format", "pretty", "diagnostics format (pretty|json)")
	rootCmd.PersistentFlags().String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")

	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for ring mode")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval (0 = disabled)")

	err := rootCmd.Execute()
	if err != nil {
		// кольцо трассировки полезно именно при сбое
		dumpTraceRing(os.Stderr)
		runTraceCleanup()
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
