// Command xmlrecover parses, canonicalizes, and validates documents in the
// restricted markup language internal/tokenizer and internal/builder
// implement, from files or stdin.
//
// Grounded on dhamidi-sai's cmd/sai/main.go: a cobra root command with
// subcommands built inline in main(), flags bound with cobra's *VarP
// helpers, and RunE returning a wrapped error rather than calling
// os.Exit directly.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	xmlrecover "github.com/shapestone/xmlrecover/pkg/xml"
)

var log = logrus.New()

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "xmlrecover",
		Short: "A recovering parser for a restricted markup language",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "set the log level to debug")

	var showDiagnostics bool
	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a document and print its tree as indented markup",
		Long: `Parse a document and print its tree as indented markup.

Reads from the named file, or from stdin if no file is given. Malformed
markup is recovered, never rejected; pass --diagnostics to also print
what was recovered from.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readInput(args)
			if err != nil {
				return err
			}
			result, err := xmlrecover.Parse(string(source), xmlrecover.WithPositions())
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			if showDiagnostics {
				printDiagnostics(result.Diagnostics)
			}
			if result.Root == nil {
				return fmt.Errorf("parse: %s", xmlrecover.EmptyDocument.Message())
			}
			os.Stdout.Write(xmlrecover.RenderIndent(result.Root, "", "  "))
			return nil
		},
	}
	parseCmd.Flags().BoolVar(&showDiagnostics, "diagnostics", false, "print recovered diagnostics to stderr")

	canonCmd := &cobra.Command{
		Use:   "canon [file]",
		Short: "Parse a document and print its canonical form",
		Long:  `Parse a document and print it back out with attributes sorted by name, for byte-for-byte comparison across equivalent documents.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readInput(args)
			if err != nil {
				return err
			}
			result, err := xmlrecover.Parse(string(source))
			if err != nil {
				return fmt.Errorf("canon: %w", err)
			}
			if result.Root == nil {
				return fmt.Errorf("canon: %s", xmlrecover.EmptyDocument.Message())
			}
			os.Stdout.Write(xmlrecover.Canonicalize(result.Root))
			fmt.Println()
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Exit non-zero and print diagnostics if a document is not well-formed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readInput(args)
			if err != nil {
				return err
			}
			result, parseErr := xmlrecover.Parse(string(source), xmlrecover.WithPositions())
			if parseErr != nil {
				return fmt.Errorf("validate: %w", parseErr)
			}
			if !result.Diagnostics.HasErrors() {
				log.Info("document is well-formed")
				return nil
			}
			printDiagnostics(result.Diagnostics)
			return fmt.Errorf("validate: %d diagnostic(s)", len(result.Diagnostics))
		},
	}

	rootCmd.AddCommand(parseCmd, canonCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func printDiagnostics(diags xmlrecover.Diagnostics) {
	for _, d := range diags {
		log.WithFields(logrus.Fields{
			"kind": d.Kind.String(),
			"line": d.Line,
			"col":  d.Column,
		}).Warn(d.Message)
	}
}
