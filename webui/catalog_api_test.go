package webui

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"bookforge/catalog"
	"bookforge/cover"
	"bookforge/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const booksQuery = "seed=42&language=en-US&likes=2&reviews=1"

func decodeBooks(t *testing.T, body []byte) []catalog.Book {
	t.Helper()
	var books []catalog.Book
	require.NoError(t, json.Unmarshal(body, &books))
	return books
}

func TestHandleBooks(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/api/books?"+booksQuery+"&page=1&count=5")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	books := decodeBooks(t, rec.Body.Bytes())
	require.Len(t, books, 5)
	for i, b := range books {
		assert.Equal(t, 6+i, b.Index, "1-based index continues across pages")
	}

	// Same request, same bytes.
	again := get(t, srv.Handler(), "/api/books?"+booksQuery+"&page=1&count=5")
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestHandleBooks_MatchesGenerator(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	gen := newTestGenerator()

	rec := get(t, srv.Handler(), "/api/books?seed=abc&locale=de-DE&likes=3.5&reviews=0.5&count=3")
	require.Equal(t, http.StatusOK, rec.Code)

	want, err := gen.GeneratePage(
		catalog.Params{Seed: "abc", Locale: "de-DE", AvgLikes: 3.5, AvgReviews: 0.5},
		catalog.Page{Number: 0, Size: 3},
	)
	require.NoError(t, err)
	assert.Equal(t, want, decodeBooks(t, rec.Body.Bytes()))
}

func TestHandleBooks_Errors(t *testing.T) {
	srv, store := newTestServer(t, nil)

	tests := []struct {
		name   string
		query  string
		status int
		errMsg string
	}{
		{"missing all", "", http.StatusBadRequest, "Missing required query parameters: seed, language, likes, reviews"},
		{"missing reviews", "seed=1&language=en-US&likes=1", http.StatusBadRequest, "Missing required query parameters: seed, language, likes, reviews"},
		{"non-numeric likes", "seed=1&language=en-US&likes=abc&reviews=1", http.StatusBadRequest, ""},
		{"negative likes", "seed=1&language=en-US&likes=-1&reviews=1", http.StatusBadRequest, ""},
		{"negative page", "seed=1&language=en-US&likes=1&reviews=1&page=-1", http.StatusBadRequest, ""},
		{"likes far above cap", "seed=1&language=en-US&likes=1e20&reviews=1", http.StatusBadRequest, ""},
		{"likes just above cap", "seed=1&language=en-US&likes=100.5&reviews=1", http.StatusBadRequest, ""},
		{"reviews above cap", "seed=1&language=en-US&likes=1&reviews=21", http.StatusBadRequest, ""},
		{"page index overflows", "seed=1&language=en-US&likes=1&reviews=1&page=9223372036854775807", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv.Handler(), "/api/books?"+tt.query)
			require.Equal(t, tt.status, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, body.Error)
			}
		})
	}

	m := store.GetRequestMetrics()
	require.Contains(t, m.ByKind, metrics.KindBooks)
	assert.Equal(t, int64(len(tests)), m.ByKind[metrics.KindBooks].ClientErrors)
	assert.Zero(t, m.ByKind[metrics.KindBooks].ServerErrors, "bad input is not a server error")
}

func TestHandleBooks_RatesAtCap(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/api/books?seed=42&language=en-US&likes=100&reviews=20&count=1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	books := decodeBooks(t, rec.Body.Bytes())
	require.Len(t, books, 1)
	assert.Equal(t, int(catalog.MaxAvgLikes), books[0].Likes)
	assert.Len(t, books[0].Reviews, int(catalog.MaxAvgReviews))
}

func TestHandleBooks_UnknownLocaleFallsBack(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/api/books?seed=42&language=xx-XX&likes=1&reviews=1&count=1")
	require.Equal(t, http.StatusOK, rec.Code)
	books := decodeBooks(t, rec.Body.Bytes())
	require.Len(t, books, 1)
	assert.Equal(t, "en-US", books[0].Locale)
}

func TestHandleBooks_RecordsMetrics(t *testing.T) {
	srv, store := newTestServer(t, nil)

	req := get(t, srv.Handler(), "/api/books?"+booksQuery+"&count=7")
	require.Equal(t, http.StatusOK, req.Code)

	m := store.GetRequestMetrics()
	assert.Equal(t, int64(1), m.TotalRequests)
	assert.Equal(t, int64(7), m.BooksGenerated)

	recent := store.GetRecentRequests(10)
	require.Len(t, recent, 1)
	assert.Equal(t, req.Header().Get(RequestIDHeader), recent[0].ID)
	assert.Equal(t, "42", recent[0].Seed)
	assert.Equal(t, metrics.StatusSuccess, recent[0].Status)
}

func TestHandleBooks_ShuttingDown(t *testing.T) {
	tracker := &fakeTracker{}
	srv, _ := newTestServer(t, tracker)

	rec := get(t, srv.Handler(), "/api/books?"+booksQuery)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, tracker.started)
	assert.Equal(t, 1, tracker.done)

	tracker.close()
	rec = get(t, srv.Handler(), "/api/books?"+booksQuery)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleExport(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/api/books/export.csv?"+booksQuery+"&count=10&pages=3")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=books_export.csv", rec.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 31)
	assert.Equal(t, catalog.CSVHeader, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "30", records[30][0])

	// The exported rows are the books the JSON API serves.
	page := decodeBooks(t, get(t, srv.Handler(), "/api/books?"+booksQuery+"&count=10&page=2").Body.Bytes())
	assert.Equal(t, page[0].ISBN, records[21][1])
	assert.Equal(t, page[0].Title, records[21][2])
}

func TestHandleExport_PageLimits(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/api/books/export.csv?"+booksQuery+"&count=1&pages=1000")
	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1+DefaultCatalogAPIConfig().MaxExportPages)

	rec = get(t, srv.Handler(), "/api/books/export.csv?"+booksQuery+"&pages=nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCover(t *testing.T) {
	srv, store := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/api/cover?title=The+Long+Road&author=Jane+Doe&seed=42-0")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, cover.IsPNG(rec.Body.Bytes()))

	want, err := cover.Render(cover.Request{Title: "The Long Road", Author: "Jane Doe", Seed: "42-0", Width: 120, Height: 180})
	require.NoError(t, err)
	assert.Equal(t, want, rec.Body.Bytes())

	assert.Equal(t, int64(1), store.GetRequestMetrics().ByKind[metrics.KindCover].Count)
}

func TestHandleCover_Errors(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing title", "author=a&seed=s", http.StatusBadRequest},
		{"missing seed", "title=t&author=a", http.StatusBadRequest},
		{"bad width", "title=t&author=a&seed=s&width=wide", http.StatusBadRequest},
		{"zero height", "title=t&author=a&seed=s&height=0", http.StatusBadRequest},
		{"too large", "title=t&author=a&seed=s&width=99999", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv.Handler(), "/api/cover?"+tt.query)
			assert.Equal(t, tt.status, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
		})
	}
}

func TestHandleLocales(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/api/locales")
	require.Equal(t, http.StatusOK, rec.Code)

	var body LocalesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"de-DE", "en-US", "ja-JP"}, body.Locales)
	assert.Equal(t, "en-US", body.Default)
}

func TestHandleStatus(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var body StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, metrics.SystemHealthRunning, body.Health)
	assert.NotEmpty(t, body.Version)
	assert.GreaterOrEqual(t, body.UptimeSeconds, int64(90))
	assert.True(t, strings.HasPrefix(body.Uptime, "1m "), "uptime %q", body.Uptime)
	assert.Len(t, body.Locales, 3)
	assert.Zero(t, body.WSClients)
}

func TestHandleMetrics(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	get(t, srv.Handler(), "/api/books?"+booksQuery+"&count=2")
	get(t, srv.Handler(), "/api/books?seed=1")

	rec := get(t, srv.Handler(), "/api/metrics?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body MetricsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Requests.TotalRequests)
	assert.Equal(t, int64(1), body.Requests.TotalSuccess)
	require.Len(t, body.Recent, 1)
	assert.Equal(t, metrics.StatusClientError, body.Recent[0].Status)

	rec = get(t, srv.Handler(), "/api/metrics?limit=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusFor(nil))
	assert.Equal(t, http.StatusBadRequest, statusFor(errMissingParams))
	assert.Equal(t, http.StatusBadRequest, statusFor(cover.ErrInvalidDimensions))
	assert.Equal(t, http.StatusInternalServerError, statusFor(cover.ErrEncodeFailed))
}
