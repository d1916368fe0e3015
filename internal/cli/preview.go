package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quicktiles/pkg/container"
	"github.com/matzehuels/quicktiles/pkg/grid"
	qtio "github.com/matzehuels/quicktiles/pkg/io"
	"github.com/matzehuels/quicktiles/pkg/render/sink"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

// Pixel size of one terminal cell in the preview.
const (
	previewPxX = 8
	previewPxY = 16
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var landscape bool

	cmd := &cobra.Command{
		Use:   "preview <tiles>",
		Short: "Preview the grid interactively in the terminal",
		Long: `Preview the grid interactively in the terminal.

The grid is sized to the terminal and laid out again whenever the settings
store changes, including writes from another "quicktiles settings set".

Keys:
  + / -          change the column count (writes quick_tiles_per_row)
  d              toggle landscape duplication
  r              rotate
  ←/→ or h/l     select a tile
  space          show or hide the selected tile
  q              quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], landscape)
		},
	}

	cmd.Flags().BoolVar(&landscape, "landscape", false, "start in landscape")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path string, landscape bool) error {
	doc, err := qtio.ImportTiles(path)
	if err != nil {
		return err
	}

	store, theme, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	var padding grid.Padding
	if doc.Frame != nil {
		padding = doc.Frame.Padding
		landscape = landscape || doc.Frame.Landscape
	}

	logger := loggerFromContext(ctx)
	changes := make(chan grid.Result, 1)
	ct, err := container.New(ctx, doc.Tiles, container.Options{
		Store:     store,
		Theme:     theme,
		Padding:   padding,
		Landscape: landscape,
		Logger:    logger,
		OnChange: func(r grid.Result) {
			select {
			case changes <- r:
			default:
			}
		},
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := ct.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("settings watch stopped", "error", err)
		}
	}()

	m := newPreviewModel(ctx, ct, store, changes)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// =============================================================================
// Model
// =============================================================================

type previewModel struct {
	ctx     context.Context
	ct      *container.Container
	store   settings.Store
	changes <-chan grid.Result

	res      grid.Result
	selected int
	status   string
}

// relayoutMsg carries a pass triggered by a settings change.
type relayoutMsg grid.Result

func newPreviewModel(ctx context.Context, ct *container.Container, store settings.Store, changes <-chan grid.Result) previewModel {
	return previewModel{ctx: ctx, ct: ct, store: store, changes: changes}
}

func (m previewModel) Init() tea.Cmd {
	return m.waitForChange()
}

func (m previewModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case r := <-m.changes:
			return relayoutMsg(r)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil
	case relayoutMsg:
		m.res = grid.Result(msg)
		m.status = "settings changed"
		return m, m.waitForChange()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m previewModel) resize(cols, lines int) previewModel {
	// Leave room for the header and the help line.
	if _, _, err := m.ct.OnMeasure(cols*previewPxX, max(0, lines-3)*previewPxY); err != nil {
		m.status = err.Error()
		return m
	}
	if _, err := m.ct.OnLayout(); err != nil {
		m.status = err.Error()
		return m
	}
	if r, ok := m.ct.Result(); ok {
		m.res = r
	}
	return m
}

func (m previewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tiles := m.ct.Tiles()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "+", "=":
		return m.putSetting(settings.KeyTilesPerRow, strconv.Itoa(m.ct.Snapshot().Columns+1)), nil
	case "-", "_":
		cols := m.ct.Snapshot().Columns
		if cols <= 1 {
			m.status = "already at one column"
			return m, nil
		}
		return m.putSetting(settings.KeyTilesPerRow, strconv.Itoa(cols-1)), nil
	case "d":
		v := "1"
		if m.ct.Snapshot().DuplicateColumnsInLandscape {
			v = "0"
		}
		return m.putSetting(settings.KeyDuplicateLandscape, v), nil
	case "r":
		m.ct.SetLandscape(!m.ct.Landscape())
		return m.relayout(), nil
	case "left", "h":
		if len(tiles) > 0 {
			m.selected = (m.selected + len(tiles) - 1) % len(tiles)
		}
	case "right", "l":
		if len(tiles) > 0 {
			m.selected = (m.selected + 1) % len(tiles)
		}
	case " ", "space":
		if m.selected < len(tiles) {
			t := tiles[m.selected]
			if err := m.ct.SetTileVisible(t.ID, !t.Visible); err != nil {
				m.status = err.Error()
				return m, nil
			}
			return m.relayout(), nil
		}
	}
	return m, nil
}

// putSetting writes a setting and lays out again right away. The store's
// watch delivers the same change to Run, which repeats the pass harmlessly.
func (m previewModel) putSetting(key, value string) previewModel {
	if err := m.store.Put(m.ctx, key, value); err != nil {
		m.status = err.Error()
		return m
	}
	if err := m.ct.UpdateResources(m.ctx); err != nil {
		m.status = err.Error()
		return m
	}
	m = m.relayout()
	m.status = fmt.Sprintf("%s = %s", key, value)
	return m
}

func (m previewModel) relayout() previewModel {
	r, err := m.ct.Relayout(m.ctx)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.res = r
	m.status = ""
	return m
}

func (m previewModel) View() string {
	var b strings.Builder

	snap := m.ct.Snapshot()
	orientation := "portrait"
	if m.ct.Landscape() {
		orientation = "landscape"
	}
	fmt.Fprintf(&b, "%s  %s columns (%d base)  %s  text %dpx\n\n",
		StyleTitle.Render(appName),
		StyleNumber.Render(strconv.Itoa(m.res.Columns)),
		snap.Columns,
		StyleDim.Render(orientation),
		grid.TileTextSizeFor(snap.Columns))

	tiles := m.ct.Tiles()
	var selectedID string
	if m.selected < len(tiles) {
		selectedID = tiles[m.selected].ID
	}
	b.WriteString(sink.RenderTerminal(m.res,
		sink.WithCellPixels(previewPxX, previewPxY),
		sink.WithSelected(selectedID)))
	b.WriteString("\n\n")

	if selectedID != "" {
		t := tiles[m.selected]
		state := "visible"
		if !t.Visible {
			state = "hidden"
		}
		fmt.Fprintf(&b, "%s %s ", StyleHighlight.Render(t.ID), StyleDim.Render(state))
	}
	if m.status != "" {
		b.WriteString(StyleWarning.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("+/- columns · d duplicate · r rotate · ←/→ select · space show/hide · q quit"))
	return b.String()
}
