package styles

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio = 0.35
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 24.0
)

// FontSize returns t.TextSize when set, otherwise the largest size that fits
// the label inside the tile.
func FontSize(t Tile) float64 {
	if t.TextSize > 0 {
		return t.TextSize
	}
	return fontSizeFor(t.W, t.H, len(t.Label))
}

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens the label with ".." when it would overflow the tile
// at its font size.
func TruncateLabel(t Tile) string {
	label := t.Label
	charWidth := FontSize(t) * fontCharWidth
	maxChars := max(3, int(t.W*fontWidthRatio/charWidth))

	r := []rune(label)
	if len(r) <= maxChars {
		return label
	}
	return string(r[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
