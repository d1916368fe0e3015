package sink

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/render/styles"
)

// maxPNGPixels bounds the output size.
const maxPNGPixels = 8192 * 8192

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style    styles.Style
	scale    float64
	maxWidth int
	labels   bool
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGStyle sets the style whose colors fill the tiles.
func WithPNGStyle(s styles.Style) PNGOption {
	return func(r *pngRenderer) { r.style = s }
}

// WithMaxWidth fits the image into a thumbnail no wider than px.
func WithMaxWidth(px int) PNGOption {
	return func(r *pngRenderer) { r.maxWidth = px }
}

// WithoutPNGLabels draws tile shapes only.
func WithoutPNGLabels() PNGOption {
	return func(r *pngRenderer) { r.labels = false }
}

// RenderPNG rasterizes the grid. Tiles are drawn at 1x with gg and the image
// is then resampled to the requested scale.
func RenderPNG(res grid.Result, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: styles.Simple{}, scale: 2.0, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, qterrors.New(qterrors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
	}
	w, h := res.FrameWidth, res.MeasuredHeight
	if w <= 0 || h <= 0 {
		return nil, qterrors.New(qterrors.ErrCodeInvalidInput, "nothing to rasterize: frame is %dx%d", w, h)
	}
	if float64(w)*float64(h)*r.scale*r.scale > maxPNGPixels {
		return nil, qterrors.New(qterrors.ErrCodeInvalidInput, "png too large: %dx%d at %vx", w, h, r.scale)
	}

	img := r.draw(res, w, h)

	if r.scale != 1 {
		img = imaging.Resize(img, int(float64(w)*r.scale), int(float64(h)*r.scale), imaging.Lanczos)
	}
	if r.maxWidth > 0 && img.Bounds().Dx() > r.maxWidth {
		img = imaging.Resize(img, r.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) draw(res grid.Result, w, h int) image.Image {
	dc := gg.NewContext(w, h)
	tiles := styles.FromResult(res, 0)

	bg := r.style.Colors(styles.Tile{}).Background
	dc.SetHexColor(bg)
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)
	for _, t := range tiles {
		c := r.style.Colors(t)
		radius := min(6, t.W/4, t.H/4)

		dc.DrawRoundedRectangle(t.X, t.Y, t.W, t.H, radius)
		dc.SetHexColor(c.Fill)
		dc.FillPreserve()
		dc.SetHexColor(c.Stroke)
		if t.Oversized {
			dc.SetDash(4, 3)
		}
		dc.SetLineWidth(1)
		dc.Stroke()
		dc.SetDash()

		if r.labels {
			dc.SetHexColor(c.Text)
			dc.DrawStringAnchored(fitLabel(dc, t.Label, t.W-6), t.CX, t.CY, 0.5, 0.35)
		}
	}
	return dc.Image()
}

// fitLabel shortens label with ".." until it measures no wider than maxW.
func fitLabel(dc *gg.Context, label string, maxW float64) string {
	if w, _ := dc.MeasureString(label); w <= maxW {
		return label
	}
	r := []rune(label)
	for n := len(r) - 1; n > 0; n-- {
		s := string(r[:n]) + ".."
		if w, _ := dc.MeasureString(s); w <= maxW {
			return s
		}
	}
	return ""
}
