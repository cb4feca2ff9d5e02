package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"inlinable/internal/driver"
	"inlinable/internal/observ"
	"inlinable/internal/query"
	"inlinable/internal/ui"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Evaluate a single request against a file",
}

var hasInitCmd = &cobra.Command{
	Use:   "has-init [flags] file type",
	Short: "Report whether a type has an initializer visible to clients",
	Long: `has-init evaluates HasInlinableInitializer for the named type: true when
the type or one of its extensions declares an @inlinable,
@_alwaysEmitIntoClient or @_transparent initializer.`,
	Args: cobra.ExactArgs(2),
	RunE: runHasInit,
}

func init() {
	queryCmd.AddCommand(hasInitCmd)
}

func runHasInit(cmd *cobra.Command, args []string) error {
	filePath, typeName := args[0], args[1]
	s, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	opts := s.driverOptions()
	stats := query.NewCounters()
	opts.Stats = stats
	if s.timings {
		opts.Timer = observ.NewTimer()
	}
	sess, err := driver.Open(cmd.Context(), filePath, opts)
	if err != nil {
		return err
	}

	found, err := sess.HasInlinableInitializer(cmd.Context(), typeName)
	var cyc *query.CycleError
	switch {
	case errors.As(err, &cyc):
		// уже в Bag как диагностика
	case err != nil:
		return err
	default:
		fmt.Fprintln(cmd.OutOrStdout(), found)
	}

	bag := sess.Bag
	if s.timings {
		bag = driver.AppendTimings(bag, "query", filePath, opts.Timer.Report())
	}
	printStats(cmd, s, stats)
	if rerr := s.report(cmd.ErrOrStderr(), bag, sess.Files); rerr != nil {
		return rerr
	}
	if cyc != nil {
		return errDiagnostics
	}
	return nil
}

func printStats(cmd *cobra.Command, s *settings, stats *query.Counters) {
	if !s.stats || stats == nil {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.StatsTable(stats))
}
