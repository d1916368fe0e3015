package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/quicktiles/pkg/observability"
	"github.com/matzehuels/quicktiles/pkg/pipeline"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

const tilesBody = `{
	"tiles": [
		{"id": "wifi", "label": "Wi-Fi"},
		{"id": "bluetooth"},
		{"id": "dnd"},
		{"id": "brightness", "span": 2},
		{"id": "hotspot", "visible": false}
	],
	"frame": {"width": 300}
}`

func newTestServer(t *testing.T, store settings.Store) *httptest.Server {
	t.Helper()
	var opts []Option
	if store != nil {
		opts = append(opts, WithStore(store, settings.DefaultTheme()))
	}
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, nil), opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := decode[healthResponse](t, resp); got.Status != "ok" {
		t.Errorf("status = %q", got.Status)
	}
}

func TestTextSize(t *testing.T) {
	srv := newTestServer(t, nil)
	tests := []struct {
		path   string
		status int
		want   int
	}{
		{"/v1/textsize/3", http.StatusOK, 12},
		{"/v1/textsize/4", http.StatusOK, 10},
		{"/v1/textsize/5", http.StatusOK, 7},
		{"/v1/textsize/0", http.StatusBadRequest, 0},
		{"/v1/textsize/four", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status == http.StatusOK {
				if got := decode[textSizeResponse](t, resp); got.TextSize != tt.want {
					t.Errorf("text_size = %d, want %d", got.TextSize, tt.want)
				}
			}
		})
	}
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := post(t, srv.URL+"/v1/layout", tilesBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[layoutResponse](t, resp)

	if got.ID == "" || got.TilesHash == "" {
		t.Error("response should carry an id and tiles hash")
	}
	l := got.Layout
	if l.Columns != 3 || l.CellWidth != 98 || l.Rows != 2 || l.MeasuredHeight != 200 {
		t.Errorf("layout = %d cols, cell %d, %d rows, height %d", l.Columns, l.CellWidth, l.Rows, l.MeasuredHeight)
	}
	if len(l.Placements) != 4 {
		t.Fatalf("len(placements) = %d, want 4", len(l.Placements))
	}
	b := l.Placements[3]
	if b.ID != "brightness" || b.Row != 1 || b.Column != 0 || b.Width != 2*98+4 {
		t.Errorf("brightness = %+v", b)
	}
}

func TestLayoutUsesStoreSettings(t *testing.T) {
	store := settings.NewMemoryStore(map[string]string{settings.KeyTilesPerRow: "4"})
	srv := newTestServer(t, store)

	got := decode[layoutResponse](t, post(t, srv.URL+"/v1/layout", tilesBody))
	if got.Layout.Columns != 4 {
		t.Errorf("columns = %d, want 4 from the store", got.Layout.Columns)
	}
	if got.TextSize != 10 {
		t.Errorf("text_size = %d, want 10", got.TextSize)
	}

	// Request fields win over stored settings.
	body := strings.Replace(tilesBody, `"frame"`, `"columns": 2, "frame"`, 1)
	got = decode[layoutResponse](t, post(t, srv.URL+"/v1/layout", body))
	if got.Layout.Columns != 2 {
		t.Errorf("columns = %d, want 2 from the request", got.Layout.Columns)
	}
}

func TestLayoutFollowsThemeChanges(t *testing.T) {
	store, err := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.toml"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	srv := newTestServer(t, store)

	got := decode[layoutResponse](t, post(t, srv.URL+"/v1/layout", tilesBody))
	if got.Layout.CellWidth != 98 {
		t.Fatalf("cell width = %d, want 98 with the stock gap", got.Layout.CellWidth)
	}

	if err := store.SetTheme(context.Background(), settings.Theme{CellGap: settings.Gap(0)}); err != nil {
		t.Fatal(err)
	}
	got = decode[layoutResponse](t, post(t, srv.URL+"/v1/layout", tilesBody))
	if got.Layout.CellWidth != 100 {
		t.Errorf("cell width = %d, want 100 once the theme drops the gap", got.Layout.CellWidth)
	}
}

func TestLayoutErrors(t *testing.T) {
	srv := newTestServer(t, nil)
	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{"tiles": [`, "INVALID_INPUT"},
		{"zero span", `{"tiles": [{"id": "a", "span": 0}]}`, "INVALID_TILE"},
		{"duplicate id", `{"tiles": [{"id": "a"}, {"id": "a"}]}`, "INVALID_TILE"},
		{"negative columns", `{"columns": -2, "tiles": [{"id": "a"}]}`, "INVALID_CONFIG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/layout", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if got := decode[errorResponse](t, resp); got.Error != tt.code {
				t.Errorf("error = %q (%s), want %q", got.Error, got.Message, tt.code)
			}
		})
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv.URL+"/v1/render/svg", tilesBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("svg status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if n := strings.Count(buf.String(), `class="tile"`); n != 4 {
		t.Errorf("svg tiles = %d, want 4", n)
	}

	resp = post(t, srv.URL+"/v1/render/png", tilesBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("png status = %d", resp.StatusCode)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 600 {
		t.Errorf("png width = %d, want 600 at the default 2x scale", img.Bounds().Dx())
	}

	resp = post(t, srv.URL+"/v1/render/pdf", tilesBody)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("pdf status = %d, want 400", resp.StatusCode)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	store := settings.NewMemoryStore(nil)
	srv := newTestServer(t, store)

	put := func(key, body string) *http.Response {
		req, _ := http.NewRequest(http.MethodPut, srv.URL+"/v1/settings/"+key, strings.NewReader(body))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := put(settings.KeyTilesPerRow, `{"value": "5"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[settingsResponse](t, resp)
	if got.Snapshot.Columns != 5 || got.Snapshot.TextSize != 7 {
		t.Errorf("snapshot = %+v", got.Snapshot)
	}
	if v, _, _ := store.Get(context.Background(), settings.KeyTilesPerRow); v != "5" {
		t.Errorf("store value = %q, want 5", v)
	}

	tests := []struct {
		key, body string
		status    int
	}{
		{settings.KeyTilesPerRow, `{"value": "0"}`, http.StatusBadRequest},
		{settings.KeyDuplicateLandscape, `{"value": "yes"}`, http.StatusBadRequest},
		{settings.KeyCellGap, `{"value": "8"}`, http.StatusBadRequest},
		{"screen_brightness", `{"value": "1"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		if resp := put(tt.key, tt.body); resp.StatusCode != tt.status {
			t.Errorf("PUT %s %s: status = %d, want %d", tt.key, tt.body, resp.StatusCode, tt.status)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	h.statuses = append(h.statuses, status)
	h.mu.Unlock()
}

func TestHTTPHooks(t *testing.T) {
	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/v1/textsize/0")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	// The hook runs after the response is flushed.
	deadline := time.Now().Add(time.Second)
	for {
		h.mu.Lock()
		got := append([]int(nil), h.statuses...)
		h.mu.Unlock()
		if len(got) > 0 || time.Now().After(deadline) {
			if len(got) != 1 || got[0] != http.StatusBadRequest {
				t.Errorf("statuses = %v, want [400]", got)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(context.DeadlineExceeded); got != http.StatusGatewayTimeout {
		t.Errorf("deadline = %d", got)
	}
	if got := statusFor(bytes.ErrTooLarge); got != http.StatusInternalServerError {
		t.Errorf("plain error = %d", got)
	}
}
