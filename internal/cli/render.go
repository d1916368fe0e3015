package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quicktiles/pkg/pipeline"
)

// renderCommand creates the render command for generating tile grid images.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		flags      gridFlags
	)
	opts := pipeline.Options{}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [tiles.json|tiles.toml]",
		Short: "Render a tile document to SVG, PNG, JSON or text",
		Long: `Render a tile document to SVG, PNG, JSON or text.

The render command lays out the tiles and writes one file per format next to
the input (or at the -o base path). Layouts and artifacts are cached locally,
so re-rendering an unchanged document is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd, args[0], renderParams{
				flags:   &flags,
				render:  opts,
				formats: formats,
				output:  output,
				noCache: noCache,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, txt (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: simple (default), handdrawn")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed for the handdrawn style")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.HideLabels, "no-labels", false, "do not draw tile labels")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "add hover highlighting to SVG output")
	flags.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("style", completeStyles)

	return cmd
}

type renderParams struct {
	flags   *gridFlags
	render  pipeline.Options
	formats []string
	output  string
	noCache bool
}

// runRender lays out and renders the document, then writes each artifact.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, p renderParams) error {
	opts, err := c.loadOptions(ctx, cmd, input, p.flags)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	opts.Formats = p.formats
	opts.Style = p.render.Style
	opts.Seed = p.render.Seed
	opts.Scale = p.render.Scale
	opts.HideLabels = p.render.HideLabels
	opts.Interactive = p.render.Interactive

	runner, err := c.newRunner(p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %d tiles as %s", len(opts.Tiles), strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}

	paths := outputPaths(input, p.output, opts.Formats)
	for _, format := range opts.Formats {
		spinner.Update("Writing " + paths[format])
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0644); err != nil {
			spinner.StopWithError("Write failed")
			return fmt.Errorf("write output %s: %w", paths[format], err)
		}
	}
	spinner.Stop()

	printSuccess("Rendered %d tiles", result.Stats.VisibleCount)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Layout, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	warnOversized(result.Layout, result.Tiles)
	return nil
}

// outputPaths picks one file per format. A single format with an explicit
// output writes exactly there.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
