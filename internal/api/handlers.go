package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/quicktiles/pkg/buildinfo"
	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/observability"
	"github.com/matzehuels/quicktiles/pkg/pipeline"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type textSizeResponse struct {
	Columns  int `json:"columns"`
	TextSize int `json:"text_size"`
}

type layoutResponse struct {
	ID        string      `json:"id"`
	TilesHash string      `json:"tiles_hash"`
	Cached    bool        `json:"cached"`
	TextSize  int         `json:"text_size"`
	Layout    grid.Result `json:"layout"`
}

type settingsResponse struct {
	Snapshot settings.Snapshot `json:"snapshot"`
	Values   map[string]string `json:"values"`
}

type putSettingRequest struct {
	Value string `json:"value"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleTextSize(w http.ResponseWriter, r *http.Request) {
	cols, err := strconv.Atoi(chi.URLParam(r, "columns"))
	if err != nil || cols <= 0 {
		s.writeError(w, r, qterrors.New(qterrors.ErrCodeInvalidInput,
			"columns must be a positive integer, got %q", chi.URLParam(r, "columns")))
		return
	}
	writeJSON(w, http.StatusOK, textSizeResponse{Columns: cols, TextSize: grid.TileTextSizeFor(cols)})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tiles, err := pipeline.LoadTiles(&opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), tiles, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		ID:        uuid.NewString(),
		TilesHash: pipeline.HashTiles(tiles),
		Cached:    hit,
		TextSize:  opts.LabelSize(),
		Layout:    res,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cache := "miss"
	if result.CacheInfo.RenderHit {
		cache = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Result-Id", uuid.NewString())
	w.Header().Set("X-Tiles-Hash", result.TilesHash)
	w.Header().Set("X-Cache", cache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	snap, err := s.readSnapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	values, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, qterrors.Wrap(qterrors.ErrCodeSettings, err, "list settings"))
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Snapshot: snap, Values: values})
}

func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var req putSettingRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, qterrors.Wrap(qterrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := settings.ValidateValue(key, req.Value); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !settings.IsKnownKey(key) {
		s.writeError(w, r, qterrors.New(qterrors.ErrCodeNotFound, "unknown setting %q", key))
		return
	}
	if err := s.store.Put(r.Context(), key, req.Value); err != nil {
		s.writeError(w, r, qterrors.Wrap(qterrors.ErrCodeSettings, err, "write %s", key))
		return
	}
	observability.Settings().OnSettingsChange(r.Context(), key)
	s.handleGetSettings(w, r)
}

// decodeOptions reads the request body into pipeline options. The body also
// serves as the tile document, and settings it leaves unset are taken from
// the store.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return pipeline.Options{}, qterrors.Wrap(qterrors.ErrCodeInvalidInput, err, "read request")
	}
	var opts pipeline.Options
	if err := json.Unmarshal(body, &opts); err != nil {
		return pipeline.Options{}, qterrors.Wrap(qterrors.ErrCodeInvalidInput, err, "decode request")
	}
	if opts.Document == "" {
		opts.Document = string(body)
		opts.DocumentFormat = "json"
	}

	snap, err := s.readSnapshot(r.Context())
	if err != nil {
		return pipeline.Options{}, err
	}
	if opts.Columns == 0 {
		opts.Columns = snap.Columns
	}
	if opts.DuplicateColumnsInLandscape == nil {
		opts.DuplicateColumnsInLandscape = &snap.DuplicateColumnsInLandscape
	}
	if opts.CellGap == nil {
		opts.CellGap = &snap.CellGap
	}
	opts.Logger = s.logger
	return opts, nil
}

func (s *Server) readSnapshot(ctx context.Context) (settings.Snapshot, error) {
	start := time.Now()
	snap, err := settings.Read(ctx, s.store, s.theme)
	observability.Settings().OnSettingsRead(ctx, time.Since(start), err)
	return snap, err
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return qterrors.GetCode(err).Status()
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(qterrors.GetCode(err))
	if code == "" {
		code = string(qterrors.ErrCodeInternal)
	}
	msg := qterrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
