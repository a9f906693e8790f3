package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/rehno-lindeque/chomp/pkg/chomp"
)

var errorHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "chomp [flags] SOURCE OUTPUT",
		Short: "Chomp scope-tree query evaluator",
		Long: `Chomp evaluates a declarative query language of nested scope trees:
atomic symbols, the universal wildcard, and arrow declarations queried
by selectors. It reads SOURCE, evaluates every top-level expression,
and writes the serialized result set to OUTPUT.`,
		Example: `  # Evaluate a source file
  chomp tree.chomp out.chomp

  # With debug logging and a parse-tree dump
  chomp --debug tree.chomp out.chomp`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], debug)
		},
	}

	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(printDiagnostic),
	); err != nil {
		os.Exit(1)
	}
}

func run(srcPath, outPath string, debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	if err := chomp.RunFile(srcPath, outPath, debug); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", outPath)
	return nil
}

// printDiagnostic renders a single diagnostic line, with a source excerpt
// when the error is anchored to one.
func printDiagnostic(w io.Writer, styles fang.Styles, err error) {
	_, _ = fmt.Fprintf(w, "%s %s\n", errorHeader.Render("chomp:"), err.Error())

	var sourceErr *chomp.SourceError
	if errors.As(err, &sourceErr) {
		if excerpt := sourceErr.Excerpt(); excerpt != "" {
			_, _ = fmt.Fprintln(w, excerpt)
		}
	}
}
