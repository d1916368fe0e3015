package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quicktiles/pkg/container"
	"github.com/matzehuels/quicktiles/pkg/grid"
)

// textsizeCommand prints the tile label size for a column count.
func (c *CLI) textsizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "textsize [columns]",
		Short: "Print the tile label text size",
		Long: `Print the tile label text size in pixels.

Narrower tiles get smaller labels: 5 columns use 7px, 4 columns 10px, and
anything else 12px. Without an argument the column count is read from the
settings store.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("columns must be a positive integer, got %q", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), grid.TileTextSizeFor(n))
				return nil
			}

			ctx := cmd.Context()
			store, theme, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ct, err := container.New(ctx, nil, container.Options{Store: store, Theme: theme, Logger: c.Logger})
			if err != nil {
				return err
			}
			size, err := ct.UpdateTileTextSize(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), size)
			return nil
		},
	}
}
