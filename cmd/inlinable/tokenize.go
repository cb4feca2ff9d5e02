package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inlinable/internal/diagfmt"
	"inlinable/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Tokenize a source file",
	Long:  `Tokenize prints every token of a file with its leading and trailing trivia`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, s.cfg.Output.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	if err != nil {
		return err
	}
	return s.report(cmd.ErrOrStderr(), result.Bag, result.FileSet)
}
