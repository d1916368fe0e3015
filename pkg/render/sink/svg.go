package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/render/styles"
)

const tileInteractionCSS = `
    .tile { transition: stroke-width 0.2s ease; }
    .tile.highlight { stroke-width: 3; }
    .tile-text { pointer-events: none; }`

const tileInteractionJS = `
    document.querySelectorAll('.tile').forEach(el => {
      el.addEventListener('mouseenter', () => el.classList.add('highlight'));
      el.addEventListener('mouseleave', () => el.classList.remove('highlight'));
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	textSize    int
	labels      bool
	interactive bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithTextSize(size int) SVGOption    { return func(r *svgRenderer) { r.textSize = size } }
func WithoutLabels() SVGOption           { return func(r *svgRenderer) { r.labels = false } }

// WithInteraction adds hover highlighting for browser viewing.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG draws the frame and every placed tile.
func RenderSVG(res grid.Result, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	tiles := styles.FromResult(res, r.textSize)
	w, h := float64(res.FrameWidth), float64(res.MeasuredHeight)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	r.style.RenderDefs(&buf)
	r.style.RenderBackground(&buf, w, h)
	for _, t := range tiles {
		r.style.RenderTile(&buf, t)
	}
	if r.labels {
		for _, t := range tiles {
			r.style.RenderText(&buf, t)
		}
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", tileInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	return r
}
