package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"inlinable/internal/config"
	"inlinable/internal/diag"
	"inlinable/internal/diagfmt"
	"inlinable/internal/driver"
	"inlinable/internal/source"
)

const configFileHint = config.FileName

// settings merge the project config with global flags. Flags win when set.
type settings struct {
	cfg        config.Config
	color      bool
	quiet      bool
	timings    bool
	stats      bool
	diagFormat string
	pathMode   diagfmt.PathMode
}

func loadSettings(cmd *cobra.Command, input string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(filepath.Dir(input))
	}
	if err != nil {
		return nil, err
	}

	defines, err := flags.GetStringArray("define")
	if err != nil {
		return nil, fmt.Errorf("failed to get define flag: %w", err)
	}
	if err := cfg.AddDefines(defines...); err != nil {
		return nil, err
	}
	if flags.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("color") {
		if cfg.Output.Color, err = flags.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
		cfg.Output.Color = strings.ToLower(cfg.Output.Color)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}
	s.color = resolveColor(cfg.Output.Color, os.Stderr)
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.stats, err = flags.GetBool("stats"); err != nil {
		return nil, fmt.Errorf("failed to get stats flag: %w", err)
	}
	if s.diagFormat, err = flags.GetString("diag-format"); err != nil {
		return nil, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch s.diagFormat = strings.ToLower(s.diagFormat); s.diagFormat {
	case "pretty", "json":
	default:
		return nil, fmt.Errorf("unsupported diagnostics format %q (must be pretty or json)", s.diagFormat)
	}
	modeStr, err := flags.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(modeStr)
	if !ok {
		return nil, fmt.Errorf("invalid --path-mode %q (expected auto|absolute|relative|basename)", modeStr)
	}
	s.pathMode = mode
	return s, nil
}

func resolveColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func (s *settings) driverOptions() driver.Options {
	return driver.OptionsFromConfig(&s.cfg)
}

// report prints bag and returns errDiagnostics when it holds errors.
// --quiet hides everything but errors; timings survive it.
func (s *settings) report(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	shown := bag
	if s.quiet {
		shown = diag.NewBag(int(bag.Cap()))
		for _, d := range bag.Items() {
			if d.Severity == diag.SevError || d.Code == diag.ObsTimings {
				shown.Add(d)
			}
		}
	}
	if s.diagFormat == "json" {
		if err := diagfmt.JSON(w, shown, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}); err != nil {
			return err
		}
	} else {
		diagfmt.Pretty(w, shown, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			PathMode:  s.pathMode,
			ShowNotes: !s.quiet,
			ShowFixes: !s.quiet,
		})
	}
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
