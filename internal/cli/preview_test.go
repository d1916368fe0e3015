package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/quicktiles/pkg/container"
	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

func newTestPreview(t *testing.T) (previewModel, settings.Store) {
	t.Helper()
	ctx := context.Background()
	store := settings.NewMemoryStore(nil)
	t.Cleanup(func() { store.Close() })

	media := grid.NewTile("media")
	media.ColumnSpan = 2
	tiles := []grid.Tile{grid.NewTile("wifi"), grid.NewTile("bt"), grid.NewTile("dnd"), media}

	ct, err := container.New(ctx, tiles, container.Options{Store: store})
	if err != nil {
		t.Fatal(err)
	}
	m := newPreviewModel(ctx, ct, store, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 30})
	return updated.(previewModel), store
}

func press(t *testing.T, m previewModel, key tea.KeyMsg) previewModel {
	t.Helper()
	updated, _ := m.Update(key)
	return updated.(previewModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewResize(t *testing.T) {
	m, _ := newTestPreview(t)
	if m.res.Columns != 3 || m.res.Rows != 2 {
		t.Fatalf("columns=%d rows=%d, want 3 and 2", m.res.Columns, m.res.Rows)
	}
	// 40 cells at 8px each.
	if m.res.Width != 320 {
		t.Errorf("Width = %d, want 320", m.res.Width)
	}
	if len(m.res.Placements) != 4 {
		t.Errorf("placements = %d, want 4", len(m.res.Placements))
	}
}

func TestPreviewColumns(t *testing.T) {
	m, store := newTestPreview(t)
	ctx := context.Background()

	m = press(t, m, runes("+"))
	if m.res.Columns != 4 {
		t.Errorf("after + columns = %d, want 4", m.res.Columns)
	}
	if v, _, _ := store.Get(ctx, settings.KeyTilesPerRow); v != "4" {
		t.Errorf("stored columns = %q, want 4", v)
	}

	m = press(t, m, runes("-"))
	m = press(t, m, runes("-"))
	m = press(t, m, runes("-"))
	if m.res.Columns != 1 {
		t.Errorf("columns = %d, want 1", m.res.Columns)
	}
	m = press(t, m, runes("-"))
	if m.res.Columns != 1 {
		t.Errorf("columns below one: %d", m.res.Columns)
	}
	if m.status == "" {
		t.Error("expected a status message at one column")
	}
}

func TestPreviewRotateAndDuplicate(t *testing.T) {
	m, store := newTestPreview(t)

	m = press(t, m, runes("r"))
	if m.res.Columns != 6 {
		t.Errorf("landscape columns = %d, want 6", m.res.Columns)
	}

	m = press(t, m, runes("d"))
	if m.res.Columns != 3 {
		t.Errorf("landscape without duplication = %d, want 3", m.res.Columns)
	}
	if v, _, _ := store.Get(context.Background(), settings.KeyDuplicateLandscape); v != "0" {
		t.Errorf("stored duplicate = %q, want 0", v)
	}

	m = press(t, m, runes("r"))
	if m.ct.Landscape() {
		t.Error("second r should rotate back to portrait")
	}
}

func TestPreviewToggleVisibility(t *testing.T) {
	m, _ := newTestPreview(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if len(m.res.Placements) != 3 {
		t.Errorf("placements after hiding bt = %d, want 3", len(m.res.Placements))
	}
	if !strings.Contains(m.View(), "hidden") {
		t.Error("view should mark the selected tile hidden")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.selected != 3 {
		t.Errorf("selection should wrap, got %d", m.selected)
	}
}

func TestPreviewRelayoutMsg(t *testing.T) {
	m, _ := newTestPreview(t)
	updated, _ := m.Update(relayoutMsg(grid.Result{Columns: 5}))
	if got := updated.(previewModel).res.Columns; got != 5 {
		t.Errorf("Columns = %d, want 5", got)
	}
}

func TestPreviewQuit(t *testing.T) {
	m, _ := newTestPreview(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewView(t *testing.T) {
	m, _ := newTestPreview(t)
	v := m.View()
	for _, want := range []string{appName, "wifi", "media", "q quit"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
