package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/quicktiles/pkg/grid"
)

func TestFontSize(t *testing.T) {
	tests := []struct {
		name string
		tile Tile
		want float64
	}{
		{"explicit size wins", Tile{Label: "wifi", W: 100, H: 100, TextSize: 10}, 10},
		{"capped at max", Tile{Label: "a", W: 1000, H: 1000}, fontSizeMax},
		{"floored at min", Tile{Label: "a very long label indeed", W: 10, H: 10}, fontSizeMin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FontSize(tt.tile); got != tt.want {
				t.Errorf("FontSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncateLabel(t *testing.T) {
	short := Tile{Label: "wifi", W: 100, H: 100, TextSize: 12}
	if got := TruncateLabel(short); got != "wifi" {
		t.Errorf("TruncateLabel() = %q, want unchanged", got)
	}

	long := Tile{Label: "bluetooth-tethering-hotspot", W: 60, H: 60, TextSize: 12}
	got := TruncateLabel(long)
	if !strings.HasSuffix(got, "..") || len(got) >= len(long.Label) {
		t.Errorf("TruncateLabel() = %q, want shortened with ..", got)
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`a<b>&"c"`); got != "a&lt;b&gt;&amp;&#34;c&#34;" {
		t.Errorf("EscapeXML() = %q", got)
	}
}

func TestFromResult(t *testing.T) {
	r := grid.Result{
		Placements: []grid.Placement{
			{Index: 0, ID: "a", Label: "A", X: 10, Y: 20, Width: 40, Height: 30, Span: 1},
			{Index: 2, ID: "c", Label: "C", X: 0, Y: 54, Width: 200, Height: 30, Span: 5, Row: 1},
		},
		Oversized: []int{2},
	}
	tiles := FromResult(r, 10)
	if len(tiles) != 2 {
		t.Fatalf("len = %d, want 2", len(tiles))
	}
	if tiles[0].CX != 30 || tiles[0].CY != 35 || tiles[0].TextSize != 10 {
		t.Errorf("tiles[0] = %+v", tiles[0])
	}
	if tiles[0].Oversized || !tiles[1].Oversized {
		t.Errorf("oversized flags = %v, %v; want false, true", tiles[0].Oversized, tiles[1].Oversized)
	}
}

func TestSimpleStyle(t *testing.T) {
	var buf bytes.Buffer
	s := Simple{}
	tile := Tile{ID: "wifi", Label: "Wi-Fi & more", X: 0, Y: 0, W: 100, H: 80, CX: 50, CY: 40, TextSize: 12}

	s.RenderTile(&buf, tile)
	s.RenderText(&buf, tile)
	out := buf.String()

	if !strings.Contains(out, `id="tile-wifi"`) {
		t.Errorf("missing tile rect: %s", out)
	}
	if !strings.Contains(out, "Wi-Fi &amp; more") {
		t.Errorf("label not escaped: %s", out)
	}
	if strings.Contains(out, "stroke-dasharray") {
		t.Error("regular tile drawn dashed")
	}

	tile.Oversized = true
	buf.Reset()
	s.RenderTile(&buf, tile)
	if !strings.Contains(buf.String(), "stroke-dasharray") {
		t.Error("oversized tile not dashed")
	}
	if s.Colors(tile).Stroke != simpleWarn {
		t.Error("oversized tile should use the warning stroke")
	}
}

func TestByName(t *testing.T) {
	if s, ok := ByName(""); !ok || s.Name() != "simple" {
		t.Error(`ByName("") should return Simple`)
	}
	if _, ok := ByName("neon"); ok {
		t.Error(`ByName("neon") should fail`)
	}
}
