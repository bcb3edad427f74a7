// Package cli provides the command-line interface of datagrid.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	datagrid "github.com/domonda/go-datagrid"
	"github.com/domonda/go-datagrid/internal/config"
)

// Version information (set at build time).
var Version = "0.1.0"

type configKey struct{}

type loggerKey struct{}

// NewRootCmd creates the root command with all subcommands.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "datagrid",
		Short: "Sort, filter, paginate and export tabular data",
		Long: `datagrid loads rows from a JSON array of objects, a CSV or Excel file
or a SQLite query and runs them through the data grid pipeline
of normalizing, sorting, filtering and paginating.

The resulting page is rendered as terminal table, HTML, CSV or JSON,
or browsed interactively.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger := NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if cfg.FileUsed != "" {
				logger.Debug("using config file", slog.String("file", cfg.FileUsed))
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./datagrid.yaml)")
	config.RegisterFlags(rootCmd.PersistentFlags())

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.Outputs, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("selection-mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"checkbox", "row"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewBrowseCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewLogger returns a text logger writing to w,
// at debug level if verbose, else at warn level.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return nil
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// BuildGrid loads the configured rows and returns a grid
// in the configured state.
// Without configured columns every field of the rows becomes a column.
func BuildGrid(ctx context.Context, cfg *config.Config, logger *slog.Logger, actions ...datagrid.Action) (*datagrid.Grid, error) {
	rows, err := LoadRows(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded rows", slog.String("file", cfg.Rows), slog.Int("numRows", len(rows)))

	columns := cfg.GridColumns()
	if columns == nil {
		columns = InferColumns(rows, cfg.IDField)
	}
	opts, err := cfg.GridOptions(logger)
	if err != nil {
		return nil, err
	}
	opts = append(opts, datagrid.WithActions(actions...))
	grid, err := datagrid.New(rows, columns, opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(grid); err != nil {
		return nil, err
	}
	return grid, nil
}
