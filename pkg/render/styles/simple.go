package styles

import (
	"bytes"
	"fmt"
)

const (
	simpleBackground = "#1f1f1f"
	simpleFill       = "#3a3a3a"
	simpleStroke     = "#5c5c5c"
	simpleText       = "#f2f2f2"
	simpleWarn       = "#e0564b"
	simpleRadius     = 6.0
)

// Simple draws flat rounded tiles on a dark frame.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect class="frame" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		width, height, simpleBackground)
}

func (s Simple) RenderTile(buf *bytes.Buffer, t Tile) {
	c := s.Colors(t)
	dash := ""
	if t.Oversized {
		dash = ` stroke-dasharray="4 3"`
	}
	fmt.Fprintf(buf, `  <rect id="tile-%s" class="tile" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="1"%s/>`+"\n",
		EscapeXML(t.ID), t.X, t.Y, t.W, t.H, simpleRadius, c.Fill, c.Stroke, dash)
}

func (s Simple) RenderText(buf *bytes.Buffer, t Tile) {
	size := FontSize(t)
	fmt.Fprintf(buf, `  <text class="tile-text" data-tile="%s" x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		EscapeXML(t.ID), t.CX, t.CY, size, s.Colors(t).Text, EscapeXML(TruncateLabel(t)))
}

func (Simple) Colors(t Tile) Colors {
	c := Colors{Background: simpleBackground, Fill: simpleFill, Stroke: simpleStroke, Text: simpleText}
	if t.Oversized {
		c.Stroke = simpleWarn
	}
	return c
}

var _ Style = Simple{}
