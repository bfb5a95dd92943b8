package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/damoang/angple-notes/internal/common"
	"github.com/damoang/angple-notes/internal/domain"
	"github.com/damoang/angple-notes/internal/handler"
	"github.com/damoang/angple-notes/internal/migration"
	"github.com/damoang/angple-notes/internal/repository"
	"github.com/damoang/angple-notes/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testOrigin = "http://localhost:5173"

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

func setupRouter(t *testing.T, opts Options) (*gin.Engine, repository.NoteRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migration.Run(db))

	repo := repository.NewNoteRepository(db)
	h := handler.NewNoteHandler(service.NewNoteService(repo))

	if opts.AllowOrigin == "" {
		opts.AllowOrigin = testOrigin
	}
	return NewRouter(h, opts), repo
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchRouteTakesPriorityOverID(t *testing.T) {
	r, repo := setupRouter(t, Options{})
	require.NoError(t, repo.Create(context.Background(), &domain.Note{NoteTitle: "search", NoteText: "the word"}))

	req := httptest.NewRequest(http.MethodGet, "/api/notes/search?q=WORD", nil)
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var notes []domain.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "search", notes[0].NoteTitle)
}

func TestUnknownAPIRouteIsJSON(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/unknown", nil),
		httptest.NewRequest(http.MethodPatch, "/api/notes/1", nil),
		httptest.NewRequest(http.MethodPost, "/api/notes/1", bytes.NewBufferString(`{}`)),
	} {
		w := serve(r, req)

		assert.Equal(t, http.StatusNotFound, w.Code, req.Method+" "+req.URL.Path)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var body common.ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, common.MsgRouteNotFound, body.Error)
		assert.Equal(t, common.MsgRouteNotExists, body.Message)
	}
}

func TestUnknownNonAPIRouteIsPlainText(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "Not Found", w.Body.String())
}

func TestPreflight(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	for _, tc := range []struct {
		name, origin, path string
	}{
		{"allowed origin", testOrigin, "/api/notes/7"},
		{"foreign origin", "http://evil.example", "/api/notes/7"},
		{"no origin", "", "/api/notes"},
		{"outside api", testOrigin, "/nowhere"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, tc.path, nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
				req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			}

			w := serve(r, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Body.String())
			assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
		})
	}
}

func TestCORSHeaderOnSimpleRequest(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Origin", testOrigin)
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCORSHeadersWithoutOrigin(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSForeignOriginStillServed(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTrailingSlashIsNotRedirected(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/notes/", nil),
		httptest.NewRequest(http.MethodPost, "/api/notes/", bytes.NewBufferString(`{"note_title":"a","note_text":"b"}`)),
	} {
		w := serve(r, req)

		assert.Equal(t, http.StatusNotFound, w.Code, req.Method)
		assert.Empty(t, w.Header().Get("Location"), req.Method)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json", req.Method)

		var body common.ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, common.MsgRouteNotFound, body.Error)
	}
}

func TestGlobalMiddleware(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestHealth(t *testing.T) {
	t.Run("database up", func(t *testing.T) {
		r, _ := setupRouter(t, Options{Health: handler.NewHealthHandler(fakePinger{})})

		w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["database"])
	})

	t.Run("database down", func(t *testing.T) {
		r, _ := setupRouter(t, Options{Health: handler.NewHealthHandler(fakePinger{err: errors.New("down")})})

		w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "unavailable", body["database"])
	})

	t.Run("not mounted", func(t *testing.T) {
		r, _ := setupRouter(t, Options{})

		w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setupRouter(t, Options{})
	serve(r, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "notes_api_requests_total")
	assert.Contains(t, w.Body.String(), `route="/api/notes"`)
}

func TestRecoveryReturnsJSON500(t *testing.T) {
	r, _ := setupRouter(t, Options{})
	r.GET("/api/panic", func(c *gin.Context) { panic("kaboom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
