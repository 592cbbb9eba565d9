package webui

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bookforge/catalog"
	"bookforge/core"
	"bookforge/cover"
	"bookforge/metrics"
	"bookforge/sampling"

	"go.uber.org/zap"
)

// Tracker registers in-flight requests so shutdown can wait for them.
// ok is false once shutdown has begun.
type Tracker interface {
	Track() (done func(), ok bool)
}

// CatalogAPIConfig holds the limits the API enforces.
type CatalogAPIConfig struct {
	Limits         PageLimits
	MaxExportPages int
	CoverWidth     int
	CoverHeight    int
}

// DefaultCatalogAPIConfig mirrors the core configuration defaults.
func DefaultCatalogAPIConfig() CatalogAPIConfig {
	return CatalogAPIConfig{
		Limits:         PageLimits{DefaultSize: core.DefaultPageSize, MaxSize: core.DefaultMaxPageSize},
		MaxExportPages: core.DefaultMaxExportPages,
		CoverWidth:     core.DefaultCoverWidth,
		CoverHeight:    core.DefaultCoverHeight,
	}
}

// CatalogAPI serves generated books, covers and CSV exports over HTTP.
type CatalogAPI struct {
	gen       *catalog.Generator
	collector metrics.Collector
	tracker   Tracker
	config    CatalogAPIConfig
	logger    *zap.Logger

	// wsClients reports connected websocket clients for /api/status.
	wsClients func() int
}

// NewCatalogAPI creates the API. collector and tracker may be nil.
func NewCatalogAPI(gen *catalog.Generator, collector metrics.Collector, tracker Tracker, config CatalogAPIConfig, logger *zap.Logger) *CatalogAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultCatalogAPIConfig()
	if config.Limits.MaxSize < 1 {
		config.Limits.MaxSize = def.Limits.MaxSize
	}
	if config.Limits.DefaultSize < 1 {
		config.Limits.DefaultSize = min(def.Limits.DefaultSize, config.Limits.MaxSize)
	}
	if config.MaxExportPages < 1 {
		config.MaxExportPages = def.MaxExportPages
	}
	if config.CoverWidth < 1 {
		config.CoverWidth = def.CoverWidth
	}
	if config.CoverHeight < 1 {
		config.CoverHeight = def.CoverHeight
	}
	return &CatalogAPI{
		gen:       gen,
		collector: collector,
		tracker:   tracker,
		config:    config,
		logger:    logger,
		wsClients: func() int { return 0 },
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (api *CatalogAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/books", api.HandleBooks)
	mux.HandleFunc("GET /api/books/export.csv", api.HandleExport)
	mux.HandleFunc("GET /api/cover", api.HandleCover)
	mux.HandleFunc("GET /api/locales", api.HandleLocales)
	mux.HandleFunc("GET /api/status", api.HandleStatus)
	mux.HandleFunc("GET /api/metrics", api.HandleMetrics)
}

// HandleBooks serves one page of books as a JSON array.
func (api *CatalogAPI) HandleBooks(w http.ResponseWriter, r *http.Request) {
	done, ok := api.begin(w)
	if !ok {
		return
	}
	defer done()

	start := time.Now()
	q, err := parseBookQuery(r.URL.Query(), api.config.Limits)
	if err != nil {
		api.fail(w, r, metrics.KindBooks, start, q.Params, err)
		return
	}

	books, err := api.gen.GeneratePage(q.Params, q.Page)
	if err != nil {
		api.fail(w, r, metrics.KindBooks, start, q.Params, err)
		return
	}

	api.record(r, metrics.KindBooks, start, q.Params, len(books), nil)
	writeJSON(w, http.StatusOK, books)
}

// HandleExport serves the first N pages as a CSV attachment.
func (api *CatalogAPI) HandleExport(w http.ResponseWriter, r *http.Request) {
	done, ok := api.begin(w)
	if !ok {
		return
	}
	defer done()

	start := time.Now()
	q, err := parseBookQuery(r.URL.Query(), api.config.Limits)
	if err != nil {
		api.fail(w, r, metrics.KindExport, start, q.Params, err)
		return
	}
	pages, err := parseIntParam(r.URL.Query(), "pages", 1)
	if err != nil {
		api.fail(w, r, metrics.KindExport, start, q.Params, err)
		return
	}
	pages = max(1, min(pages, api.config.MaxExportPages))

	var all []catalog.Book
	for n := 0; n < pages; n++ {
		books, err := api.gen.GeneratePage(q.Params, catalog.Page{Number: n, Size: q.Page.Size})
		if err != nil {
			api.fail(w, r, metrics.KindExport, start, q.Params, err)
			return
		}
		all = append(all, books...)
	}

	var buf bytes.Buffer
	if err := catalog.WriteCSV(&buf, all); err != nil {
		api.fail(w, r, metrics.KindExport, start, q.Params, err)
		return
	}

	api.record(r, metrics.KindExport, start, q.Params, len(all), nil)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=books_export.csv")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// HandleCover renders a PNG cover. Errors are plain text.
func (api *CatalogAPI) HandleCover(w http.ResponseWriter, r *http.Request) {
	done, ok := api.begin(w)
	if !ok {
		return
	}
	defer done()

	start := time.Now()
	q := r.URL.Query()
	req := cover.Request{
		Title:  q.Get("title"),
		Author: q.Get("author"),
		Seed:   q.Get("seed"),
	}
	params := catalog.Params{Seed: req.Seed}

	if req.Title == "" || req.Author == "" || req.Seed == "" {
		api.record(r, metrics.KindCover, start, params, 0, errors.New("missing parameters"))
		http.Error(w, "Missing required query parameters: title, author, seed", http.StatusBadRequest)
		return
	}

	var err error
	if req.Width, err = parseIntParam(q, "width", api.config.CoverWidth); err == nil {
		req.Height, err = parseIntParam(q, "height", api.config.CoverHeight)
	}
	if err != nil {
		api.record(r, metrics.KindCover, start, params, 0, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	png, err := cover.Render(req)
	if err != nil {
		api.record(r, metrics.KindCover, start, params, 0, err)
		status := statusFor(err)
		if status == http.StatusBadRequest {
			http.Error(w, err.Error(), status)
			return
		}
		api.logger.Error("Cover render failed", zap.String("seed", req.Seed), zap.Error(err))
		http.Error(w, "Failed to generate cover", status)
		return
	}

	api.record(r, metrics.KindCover, start, params, 0, nil)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// LocalesResponse lists the supported locales.
type LocalesResponse struct {
	Locales []string `json:"locales"`
	Default string   `json:"default"`
}

// HandleLocales lists supported locale codes and the fallback.
func (api *CatalogAPI) HandleLocales(w http.ResponseWriter, r *http.Request) {
	reg := api.gen.Locales()
	writeJSON(w, http.StatusOK, LocalesResponse{
		Locales: reg.Codes(),
		Default: reg.Fallback(),
	})
}

// StatusResponse is returned by /api/status.
type StatusResponse struct {
	Health        string   `json:"health"`
	Version       string   `json:"version"`
	BuildTime     string   `json:"build_time"`
	GitCommit     string   `json:"git_commit"`
	Uptime        string   `json:"uptime"`
	UptimeSeconds int64    `json:"uptime_seconds"`
	Locales       []string `json:"locales"`
	WSClients     int      `json:"ws_clients"`
}

// HandleStatus reports health, version and uptime.
func (api *CatalogAPI) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Health:    metrics.SystemHealthRunning,
		Version:   core.GetVersion(),
		BuildTime: core.GetBuildTime(),
		GitCommit: core.GetGitCommit(),
		Locales:   api.gen.Locales().Codes(),
		WSClients: api.wsClients(),
	}
	if api.collector != nil {
		sys := api.collector.GetSystemStatus()
		resp.Health = sys.Health
		resp.Uptime = FormatDuration(sys.Uptime)
		resp.UptimeSeconds = int64(sys.Uptime / time.Second)
	}
	writeJSON(w, http.StatusOK, resp)
}

// MetricsResponse is returned by /api/metrics.
type MetricsResponse struct {
	Requests metrics.RequestMetrics  `json:"requests"`
	Recent   []metrics.RequestRecord `json:"recent"`
}

// HandleMetrics returns aggregated counters and the most recent requests.
func (api *CatalogAPI) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if api.collector == nil {
		writeError(w, http.StatusServiceUnavailable, "metrics not available")
		return
	}

	limit, err := parseIntParam(r.URL.Query(), "limit", 20)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit = max(0, min(limit, 100))

	writeJSON(w, http.StatusOK, MetricsResponse{
		Requests: api.collector.GetRequestMetrics(),
		Recent:   api.collector.GetRecentRequests(limit),
	})
}

// begin registers the request with the tracker and rejects it with 503
// during shutdown.
func (api *CatalogAPI) begin(w http.ResponseWriter) (func(), bool) {
	if api.tracker == nil {
		return func() {}, true
	}
	done, ok := api.tracker.Track()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "server is shutting down")
		return nil, false
	}
	return done, true
}

// fail records err and writes it as a JSON error response.
func (api *CatalogAPI) fail(w http.ResponseWriter, r *http.Request, kind string, start time.Time, p catalog.Params, err error) {
	api.record(r, kind, start, p, 0, err)

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		api.logger.Error("Catalog request failed",
			zap.String("kind", kind),
			zap.String("seed", p.Seed),
			zap.Error(err),
		)
		writeJSON(w, status, ErrorResponse{Error: "Failed to generate books", Details: err.Error()})
		return
	}
	writeError(w, status, err.Error())
}

func (api *CatalogAPI) record(r *http.Request, kind string, start time.Time, p catalog.Params, books int, err error) {
	if api.collector == nil {
		return
	}
	rec := metrics.RequestRecord{
		ID:        RequestIDFromContext(r.Context()),
		Kind:      kind,
		Status:    metrics.StatusSuccess,
		Seed:      p.Seed,
		Locale:    p.Locale,
		Books:     books,
		StartTime: start,
		Duration:  time.Since(start),
	}
	if err != nil {
		rec.ErrorMsg = err.Error()
		rec.Status = metrics.StatusError
		if statusFor(err) < http.StatusInternalServerError {
			rec.Status = metrics.StatusClientError
		}
	}
	api.collector.RecordRequest(rec)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errMissingParams),
		errors.Is(err, catalog.ErrInvalidArgument),
		errors.Is(err, sampling.ErrInvalidArgument),
		errors.Is(err, cover.ErrMissingField),
		errors.Is(err, cover.ErrInvalidDimensions):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, fmt.Sprintf("encoding response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
