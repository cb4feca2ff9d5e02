package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"inlinable/internal/driver"
	"inlinable/internal/observ"
	"inlinable/internal/query"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] file",
	Short: "Print the inlinable text of bodies, initial values and default arguments",
	Long: `Extract prints each function body, initial value and default argument
of the selected declarations as a client would see it: comments removed
and inactive #if branches dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("decl", "", "only declarations with this name")
	extractCmd.Flags().String("format", "text", "output format (text|json)")
}

type extractJSON struct {
	Decl  string `json:"decl"`
	Kind  string `json:"kind"`
	Part  string `json:"part"`
	Param string `json:"param,omitempty"`
	Line  uint32 `json:"line"`
	Text  string `json:"text"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	declName, err := cmd.Flags().GetString("decl")
	if err != nil {
		return fmt.Errorf("failed to get decl flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}
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
	if declName != "" && len(sess.Decls(declName)) == 0 {
		return fmt.Errorf("no declaration named %q in %s", declName, filePath)
	}
	parts, err := sess.Extract(cmd.Context(), declName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = writeExtractJSON(out, sess, parts)
	} else {
		for i, p := range parts {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n%s\n", p.Label(), p.Text)
		}
	}
	if err != nil {
		return err
	}

	bag := sess.Bag
	if s.timings {
		bag = driver.AppendTimings(bag, "extract", filePath, opts.Timer.Report())
	}
	printStats(cmd, s, stats)
	return s.report(cmd.ErrOrStderr(), bag, sess.Files)
}

func writeExtractJSON(w io.Writer, sess *driver.Session, parts []driver.Extracted) error {
	items := make([]extractJSON, 0, len(parts))
	for _, p := range parts {
		start, _ := sess.Files.Resolve(p.Span)
		items = append(items, extractJSON{
			Decl:  p.Name,
			Kind:  p.Kind.String(),
			Part:  string(p.Part),
			Param: p.Param,
			Line:  start.Line,
			Text:  p.Text,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
