// Package handdrawn provides a sketch-style look for rendered grids: wobbly
// tile outlines, a slight per-tile tilt, and a grey fill derived from each
// tile's ID. The same seed always produces the same drawing.
package handdrawn

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/quicktiles/pkg/render/styles"
)

const (
	paper   = "#f7f4ec"
	ink     = "#2a2a2a"
	warnInk = "#b3261e"
	greyMin = 0xc8
	greyMax = 0xea
)

// Style is the hand-drawn style.
type Style struct {
	seed uint64
}

// New returns a hand-drawn style. seed varies the wobble.
func New(seed uint64) Style {
	return Style{seed: seed}
}

func (Style) Name() string { return "handdrawn" }

func (Style) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="pencil" x="-2%" y="-2%" width="104%" height="104%">
      <feTurbulence type="fractalNoise" baseFrequency="0.03" numOctaves="2" result="noise"/>
      <feDisplacementMap in="SourceGraphic" in2="noise" scale="1.5"/>
    </filter>
  </defs>
`)
}

func (Style) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect class="frame" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, height, paper)
}

func (s Style) RenderTile(buf *bytes.Buffer, t styles.Tile) {
	c := s.Colors(t)
	fmt.Fprintf(buf, `  <path id="tile-%s" class="tile" d="%s" fill="%s" stroke="%s" stroke-width="1.6" filter="url(#pencil)"/>`+"\n",
		styles.EscapeXML(t.ID), wobbledRect(t.X, t.Y, t.W, t.H, s.seed, t.ID), c.Fill, c.Stroke)
}

func (s Style) RenderText(buf *bytes.Buffer, t styles.Tile) {
	rot := rotationFor(t.ID, t.W, t.H)
	fmt.Fprintf(buf, `  <text class="tile-text" data-tile="%s" x="%.1f" y="%.1f" transform="rotate(%.2f %.1f %.1f)" font-family="'Comic Neue', 'Comic Sans MS', cursive" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		styles.EscapeXML(t.ID), t.CX, t.CY, rot, t.CX, t.CY, styles.FontSize(t), ink, styles.EscapeXML(styles.TruncateLabel(t)))
}

func (Style) Colors(t styles.Tile) styles.Colors {
	c := styles.Colors{Background: paper, Fill: greyForID(t.ID), Stroke: ink, Text: ink}
	if t.Oversized {
		c.Stroke = warnInk
	}
	return c
}

var _ styles.Style = Style{}
