package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/render/styles/handdrawn"
)

func testResult(t *testing.T) grid.Result {
	t.Helper()
	tiles := []grid.Tile{
		grid.NewTile("wifi"),
		grid.NewTile("bluetooth"),
		{ID: "hidden", Label: "hidden", ColumnSpan: 1, Visible: false},
		{ID: "brightness", Label: "Brightness", ColumnSpan: 2, Visible: true},
		grid.NewTile("cast"),
	}
	cfg := grid.Config{
		Columns:        3,
		CellGap:        4,
		AvailableWidth: 300,
		Padding:        grid.Padding{Left: 8, Top: 8, Right: 8, Bottom: 8},
	}
	res, err := grid.Compute(tiles, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return res
}

func TestRenderSVG(t *testing.T) {
	res := testResult(t)
	svg := string(RenderSVG(res, WithTextSize(12)))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if n := strings.Count(svg, `class="tile"`); n != len(res.Placements) {
		t.Errorf("tile elements = %d, want %d", n, len(res.Placements))
	}
	if n := strings.Count(svg, `class="tile-text"`); n != len(res.Placements) {
		t.Errorf("label elements = %d, want %d", n, len(res.Placements))
	}
	if strings.Contains(svg, "tile-hidden") {
		t.Error("invisible tile rendered")
	}
	if !strings.Contains(svg, `width="316"`) {
		t.Errorf("svg width should be the frame width 316:\n%s", svg[:120])
	}
	if strings.Contains(svg, "<script") {
		t.Error("script emitted without WithInteraction")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	res := testResult(t)

	svg := string(RenderSVG(res, WithoutLabels(), WithInteraction(), WithStyle(handdrawn.New(1))))
	if strings.Contains(svg, `class="tile-text"`) {
		t.Error("labels drawn with WithoutLabels")
	}
	if !strings.Contains(svg, "<script") {
		t.Error("WithInteraction should add the hover script")
	}
	if !strings.Contains(svg, `id="pencil"`) {
		t.Error("handdrawn defs missing")
	}

	if string(RenderSVG(res, WithStyle(nil))) != string(RenderSVG(res)) {
		t.Error("nil style should fall back to the default")
	}
}

func TestRenderJSON(t *testing.T) {
	res := testResult(t)
	data, err := RenderJSON(res, WithJSONID("req-1"), WithJSONStyle("simple"), WithJSONTextSize(12))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.ID != "req-1" || out.Style != "simple" || out.TextSize != 12 {
		t.Errorf("options not recorded: %+v", out)
	}
	if out.Width != 300 || out.FrameWidth != 316 || out.Height != res.MeasuredHeight {
		t.Errorf("geometry = %dx%d (frame %d)", out.Width, out.Height, out.FrameWidth)
	}
	if len(out.Tiles) != 4 {
		t.Fatalf("len(Tiles) = %d, want 4", len(out.Tiles))
	}
	ids := []string{"wifi", "bluetooth", "brightness", "cast"}
	for i, tile := range out.Tiles {
		if tile.ID != ids[i] {
			t.Errorf("Tiles[%d].ID = %s, want %s", i, tile.ID, ids[i])
		}
	}
	if out.Tiles[2].Index != 3 || out.Tiles[2].Span != 2 {
		t.Errorf("brightness = %+v", out.Tiles[2])
	}
}

func TestRenderJSONMarksOversized(t *testing.T) {
	cfg := grid.Config{Columns: 2, CellGap: 4, AvailableWidth: 204}
	res, err := grid.Compute([]grid.Tile{{ID: "wide", Label: "wide", ColumnSpan: 3, Visible: true}}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := RenderJSON(res)
	var out jsonOutput
	json.Unmarshal(data, &out)
	if !out.Tiles[0].Oversized {
		t.Error("oversized tile not marked")
	}
}

func TestRenderPNG(t *testing.T) {
	res := testResult(t)
	data, err := RenderPNG(res, WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 316 || b.Dy() != res.MeasuredHeight {
		t.Errorf("size = %dx%d, want 316x%d", b.Dx(), b.Dy(), res.MeasuredHeight)
	}

	data, err = RenderPNG(res, WithScale(2), WithPNGStyle(handdrawn.New(3)))
	if err != nil {
		t.Fatalf("RenderPNG(2x) error: %v", err)
	}
	img, _ = png.Decode(bytes.NewReader(data))
	if img.Bounds().Dx() != 632 {
		t.Errorf("2x width = %d, want 632", img.Bounds().Dx())
	}

	data, err = RenderPNG(res, WithMaxWidth(100), WithoutPNGLabels())
	if err != nil {
		t.Fatalf("RenderPNG(thumbnail) error: %v", err)
	}
	img, _ = png.Decode(bytes.NewReader(data))
	if img.Bounds().Dx() != 100 {
		t.Errorf("thumbnail width = %d, want 100", img.Bounds().Dx())
	}
}

func TestRenderPNGRejects(t *testing.T) {
	if _, err := RenderPNG(grid.Result{}); err == nil {
		t.Error("empty frame should fail")
	}
	if _, err := RenderPNG(testResult(t), WithScale(0)); err == nil {
		t.Error("zero scale should fail")
	}
}

func TestRenderTerminal(t *testing.T) {
	res := testResult(t)
	out := RenderTerminal(res, WithSelected("cast"))

	for _, label := range []string{"wifi", "bluetooth", "Brightness", "cast"} {
		if !strings.Contains(out, label) {
			t.Errorf("output missing %q:\n%s", label, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("invisible tile rendered")
	}
	if lipgloss.Height(out) < 2 {
		t.Errorf("expected at least two rows of boxes:\n%s", out)
	}
}

func TestRenderTerminalEmpty(t *testing.T) {
	out := RenderTerminal(grid.Result{})
	if !strings.Contains(out, "no visible tiles") {
		t.Errorf("empty output = %q", out)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"wifi", 10, "wifi"},
		{"brightness", 5, "brig…"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
