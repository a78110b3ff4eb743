// Package cli provides the command-line interface for acro.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/acro/internal/cli/config"
	"github.com/leapstack-labs/acro/internal/cli/output"
	"github.com/leapstack-labs/acro/internal/lookup"
	"github.com/leapstack-labs/acro/internal/source"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "acro [flags] <acronym>",
		Short: "Helps query csv files of acronyms",
		Long: `acro looks up an acronym in a delimited file of acronyms and definitions.

Entries whose acronym equals the query, ignoring case, are printed. If there
are none, entries whose acronym contains the query are printed instead.

Flags take precedence over environment variables, which take precedence over
an optional YAML config file and the built-in defaults.`,
		Example: `  acro NATO -f acronyms.csv
  ACRO_FILE=acronyms.csv acro nat
  acro -a 2 -d 3 -H -f glossary.csv API
  cat acronyms.csv | acro -f - --color USA`,
		Version: Version,
		Args:    requireAcronym,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(config.WithLogger(ctx, newLogger(cmd.ErrOrStderr(), verbose)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}}\ncommit %s, built %s\n", GitCommit, BuildDate))

	config.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.Flags().BoolP("version", "V", false, "Print version")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.ArgumentError{Message: err.Error()}
	})

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(output.Formats))
		for i, f := range output.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func requireAcronym(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return &config.ArgumentError{Message: "the required argument <ACRONYM> was not provided"}
	case len(args) > 1:
		return &config.ArgumentError{Message: fmt.Sprintf("expected one acronym, got %d arguments", len(args))}
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// run resolves the configuration, reads every entry, then prints the matches.
func run(cmd *cobra.Command, acronym string) error {
	ctx := cmd.Context()
	logger := config.GetLogger(ctx)

	cfg, err := config.Load(ctx, acronym, cmd.Flags(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	entries := readEntries(cfg, cmd.InOrStdin(), cmd.ErrOrStderr(), logger)
	matches := lookup.Match(entries, cfg.Acronym)
	logger.Debug("matched entries",
		slog.String("query", cfg.Acronym),
		slog.Int("entries", len(entries)),
		slog.Int("matches", len(matches)))

	return output.NewRenderer(cmd.OutOrStdout(), cfg.Output, cfg.Color).Entries(matches)
}

// readEntries loads every entry from the configured input. Problems with the
// input are reported as warnings and leave fewer or no entries.
func readEntries(cfg *config.Config, stdin io.Reader, stderr io.Writer, logger *slog.Logger) []lookup.Entry {
	if cfg.File == source.Stdin && isTerminal(stdin) {
		logger.Debug("reading acronyms from the terminal, end input with Ctrl-D")
	}

	opts := cfg.SourceOptions()
	opts.Logger = logger
	src, err := source.Open(cfg.File, stdin, opts)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
		return nil
	}
	defer func() { _ = src.Close() }()

	entries := lookup.Collect(lookup.Entries(src.Records(), cfg.Columns()))
	if err := src.Err(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
	}

	logger.Debug("read entries",
		slog.String("path", src.Path()),
		slog.Int("entries", len(entries)),
		slog.Int("malformed", src.Skipped()))
	return entries
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
