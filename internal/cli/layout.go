package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tile placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   gridFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tiles.json|tiles.toml]",
		Short: "Compute tile placements for a tile document",
		Long: `Compute tile placements for a tile document.

The layout command measures the grid and positions every visible tile. The
column count and landscape duplication come from the settings store unless
overridden with flags. The result is printed as a table; use -o to write it
as JSON (the same geometry 'render -f json' embeds).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd, args[0], &flags, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file ('-' for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// runLayout loads the tiles, computes the layout, and prints or writes it.
func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, input string, flags *gridFlags, output string, noCache bool) error {
	opts, err := c.loadOptions(ctx, cmd, input, flags)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, cacheHit, err := runner.LayoutWithCacheInfo(ctx, opts.Tiles, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("computed layout", "tiles", len(res.Placements), "columns", res.Columns, "cached", cacheHit)

	if output != "" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		if output == "-" {
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(output, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess("Layout complete")
		printFile(output)
		printStats(res, cacheHit)
		return nil
	}

	printSuccess("Layout complete")
	printStats(res, cacheHit)
	printNewline()
	fmt.Fprintln(out, placementTable(res))
	warnOversized(res, opts.Tiles)
	printNewline()
	printNextStep("Render", "quicktiles render "+input)
	return nil
}

// placementTable renders placements as a lipgloss table.
func placementTable(res grid.Result) string {
	rows := make([][]string, 0, len(res.Placements))
	for _, p := range res.Placements {
		rows = append(rows, []string{
			p.ID,
			strconv.Itoa(p.Row),
			strconv.Itoa(p.Column),
			strconv.Itoa(p.Span),
			fmt.Sprintf("%d,%d", p.X, p.Y),
			fmt.Sprintf("%dx%d", p.Width, p.Height),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Tile", "Row", "Col", "Span", "Pos", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle.Foreground(colorWhite)
		}).
		Render()
}

// warnOversized prints a warning for tiles wider than the grid.
func warnOversized(res grid.Result, tiles []grid.Tile) {
	if len(res.Oversized) == 0 {
		return
	}
	ids := make([]string, len(res.Oversized))
	for i, idx := range res.Oversized {
		ids[i] = tiles[idx].ID
	}
	printWarning("%d tile(s) span more than %d columns: %s", len(ids), res.Columns, strings.Join(ids, ", "))
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
