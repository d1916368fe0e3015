package sink

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/render/styles"
)

// Default pixel size of one terminal cell.
const (
	defaultCellPxX = 8.0
	defaultCellPxY = 16.0
)

// TerminalOption configures terminal rendering.
type TerminalOption func(*terminalRenderer)

type terminalRenderer struct {
	pxX, pxY float64
	style    styles.Style
	selected string
}

// WithCellPixels sets how many grid pixels one terminal column and line cover.
func WithCellPixels(x, y float64) TerminalOption {
	return func(r *terminalRenderer) {
		if x > 0 {
			r.pxX = x
		}
		if y > 0 {
			r.pxY = y
		}
	}
}

// WithTerminalStyle takes tile colors from s.
func WithTerminalStyle(s styles.Style) TerminalOption {
	return func(r *terminalRenderer) { r.style = s }
}

// WithSelected highlights the tile with the given ID.
func WithSelected(id string) TerminalOption {
	return func(r *terminalRenderer) { r.selected = id }
}

// RenderTerminal draws the grid as bordered boxes, one per placement,
// grouped by visual row. Sizes are scaled from pixels to character cells.
func RenderTerminal(res grid.Result, opts ...TerminalOption) string {
	r := terminalRenderer{pxX: defaultCellPxX, pxY: defaultCellPxY, style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	tiles := styles.FromResult(res, 0)
	if len(tiles) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("(no visible tiles)")
	}

	rows := make(map[int][]styles.Tile)
	var rowIDs []int
	for _, t := range tiles {
		if _, ok := rows[t.Row]; !ok {
			rowIDs = append(rowIDs, t.Row)
		}
		rows[t.Row] = append(rows[t.Row], t)
	}
	slices.Sort(rowIDs)

	lines := make([]string, 0, len(rowIDs))
	for _, id := range rowIDs {
		row := rows[id]
		slices.SortFunc(row, func(a, b styles.Tile) int { return cmp.Compare(a.X, b.X) })
		lines = append(lines, r.renderRow(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r terminalRenderer) renderRow(row []styles.Tile) string {
	boxes := make([]string, 0, 2*len(row))
	cursor := 0
	for _, t := range row {
		left := int(t.X / r.pxX)
		if gap := left - cursor; gap > 0 {
			boxes = append(boxes, strings.Repeat(" ", gap))
			cursor += gap
		}
		box := r.renderTile(t)
		boxes = append(boxes, box)
		cursor += lipgloss.Width(box)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (r terminalRenderer) renderTile(t styles.Tile) string {
	// Border takes two cells in each direction.
	w := max(1, int(t.W/r.pxX)-2)
	h := max(1, int(t.H/r.pxY)-2)
	c := r.style.Colors(t)

	border := lipgloss.RoundedBorder()
	if t.ID == r.selected {
		border = lipgloss.ThickBorder()
	}
	label := t.Label
	if lipgloss.Width(label) > w {
		label = truncateRunes(label, w)
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(c.Stroke)).
		Foreground(lipgloss.Color(c.Text)).
		Width(w).
		Height(h).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
