package cli

import (
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	datagrid "github.com/domonda/go-datagrid"
	"github.com/domonda/go-datagrid/internal/tui"
)

// pickAction returns the "Output" selection action
// that collects the identifiers of the rows it is invoked with.
func pickAction(picked *[]any) datagrid.Action {
	return datagrid.Action{
		Name: "Output",
		Fn: func(ids []any) error {
			*picked = append(*picked, ids...)
			return nil
		},
	}
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the grid interactively",
		Long: `Browse shows the grid in the terminal.

Press the digit of a column to sort by it, / to search,
n and p to page and s to switch the page size.
Rows selected with space or a are written as JSON array
to stdout after quitting, once x was pressed to output them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)
			logger := GetLogger(ctx)

			var picked []any
			grid, err := BuildGrid(ctx, cfg, logger, pickAction(&picked))
			if err != nil {
				return err
			}
			model := tui.New(grid)
			if plain {
				model = model.WithStyles(tui.PlainStyles())
			}
			program := tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()),
			)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return writePicked(cmd.OutOrStdout(), grid, picked)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "render without colors")

	return cmd
}

// writePicked writes the normalized rows with the picked identifiers
// in picking order as JSON array, nothing if none were picked.
func writePicked(w io.Writer, grid *datagrid.Grid, picked []any) error {
	if len(picked) == 0 {
		return nil
	}
	byID := make(map[any]datagrid.Row)
	for _, row := range grid.NormalizedRows() {
		if id, ok := row.ID(grid.IDField()); ok {
			byID[id] = row
		}
	}
	rows := make([]datagrid.Row, 0, len(picked))
	for _, id := range picked {
		if row, ok := byID[id]; ok {
			rows = append(rows, row)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
