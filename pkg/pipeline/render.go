package pipeline

import (
	"fmt"

	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/render/sink"
	"github.com/matzehuels/quicktiles/pkg/render/styles"
	"github.com/matzehuels/quicktiles/pkg/render/styles/handdrawn"
)

// Render generates output artifacts in the requested formats.
func Render(res grid.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	style := ResolveStyle(opts.Style, opts.Seed)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(res, buildSVGOptions(style, opts)...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale), sink.WithPNGStyle(style)}
			if opts.HideLabels {
				pngOpts = append(pngOpts, sink.WithoutPNGLabels())
			}
			data, err = sink.RenderPNG(res, pngOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(res,
				sink.WithJSONStyle(opts.Style),
				sink.WithJSONTextSize(opts.LabelSize()))
		case FormatText:
			data = []byte(sink.RenderTerminal(res, sink.WithTerminalStyle(style)) + "\n")
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// ResolveStyle returns the style for a validated style name.
func ResolveStyle(name string, seed uint64) styles.Style {
	if name == StyleHanddrawn {
		if seed == 0 {
			seed = DefaultSeed
		}
		return handdrawn.New(seed)
	}
	return styles.Simple{}
}

func buildSVGOptions(style styles.Style, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithTextSize(opts.LabelSize()),
	}
	if opts.HideLabels {
		svgOpts = append(svgOpts, sink.WithoutLabels())
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}
