package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev/bravebird/ui-check-go/pkg/checks"
	"dev/bravebird/ui-check-go/pkg/models"
)

func testRouter(t *testing.T, screenshotDir string) *mux.Router {
	t.Helper()

	theme := checks.ThemeSuite("http://localhost:8000")
	suites := map[string]models.CheckSuite{theme.Name: theme}

	h := NewHandlers(nil, nil, suites, screenshotDir)

	router := mux.NewRouter()
	router.HandleFunc("/api/suites", h.ListSuites).Methods("GET")
	router.HandleFunc("/api/suites/{name}", h.GetSuite).Methods("GET")
	router.HandleFunc("/api/runs", h.ListRuns).Methods("GET")
	router.HandleFunc("/api/runs/{id}", h.GetRun).Methods("GET")
	router.HandleFunc("/api/screenshots/{filename}", h.ServeScreenshot).Methods("GET")
	return router
}

func TestListSuites(t *testing.T) {
	router := testRouter(t, t.TempDir())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/suites", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var suites []models.CheckSuite
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suites))
	require.Len(t, suites, 1)
	assert.Equal(t, "theme-toggle", suites[0].Name)
	assert.Len(t, suites[0].Checks, 5)
}

func TestGetSuite(t *testing.T) {
	router := testRouter(t, t.TempDir())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/suites/theme-toggle", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var suite models.CheckSuite
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suite))
	assert.Equal(t, models.CheckNavigate, suite.Checks[0].Type)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/suites/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunEndpointsWithoutDatabase(t *testing.T) {
	router := testRouter(t, t.TempDir())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/runs", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/runs/some-id", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeScreenshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run_check_2_failure.png"), []byte("png"), 0644))

	router := testRouter(t, dir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/screenshots/run_check_2_failure.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/screenshots/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
