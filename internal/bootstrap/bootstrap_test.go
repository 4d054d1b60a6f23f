package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magallanes/coursecatalog/internal/config"
	"github.com/magallanes/coursecatalog/internal/middleware"
)

const introToDBDoc = `[{
  "1st Year": [{"description": "Intro to DB", "tags": ["CS101", "Systems", "Database"]}],
  "2nd Year": [],
  "3rd Year": [],
  "4th Year": []
}]`

var courseRoutes = []string{
	"/api/courses",
	"/api/courses/bsis",
	"/api/courses/bsit",
	"/api/backend-courses",
	"/api/course-details",
}

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T, doc string, failFast bool) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	cfg.Catalog.Path = path
	cfg.Catalog.FailFast = failFast
	return cfg
}

func newTestRouter(t *testing.T, doc string, failFast bool) http.Handler {
	t.Helper()
	cfg := testConfig(t, doc, failFast)

	repo, err := LoadCatalog(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	deps := BuildDependencies(cfg, repo, nil, zerolog.Nop())
	return SetupRouter(cfg, deps, zerolog.Nop())
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestRouter_EndToEnd(t *testing.T) {
	h := newTestRouter(t, introToDBDoc, true)

	rr := get(t, h, "/api/backend-courses")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"description":"Intro to DB","tags":["CS101","Systems","Database"]}]`, rr.Body.String())

	rr = get(t, h, "/api/course-details")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"name":"CS101","specialization":"Systems"}]`, rr.Body.String())

	rr = get(t, h, "/api/courses")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, introToDBDoc, rr.Body.String())

	rr = get(t, h, "/api/courses/bsis")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}

func TestRouter_Greeting(t *testing.T) {
	rr := get(t, newTestRouter(t, introToDBDoc, true), "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Hello World!", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_Health(t *testing.T) {
	rr := get(t, newTestRouter(t, introToDBDoc, true), "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = get(t, newTestRouter(t, `{broken`, false), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rr.Body.String())
}

func TestRouter_MalformedDocumentFailsEveryRoute(t *testing.T) {
	h := newTestRouter(t, `[{"1st Year": [`, false)

	for _, path := range courseRoutes {
		t.Run(path, func(t *testing.T) {
			rr := get(t, h, path)

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": "Internal server error"}, body)
		})
	}
}

func TestLoadCatalog_FailFast(t *testing.T) {
	cfg := testConfig(t, `not json`, true)

	_, err := LoadCatalog(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), cfg.Catalog.Path)
}

func TestBuildDependencies_ImporterOnlyWithSink(t *testing.T) {
	cfg := testConfig(t, introToDBDoc, true)
	repo, err := LoadCatalog(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	deps := BuildDependencies(cfg, repo, nil, zerolog.Nop())
	assert.Nil(t, deps.Importer)
	assert.NotNil(t, deps.CourseController)
}

func TestSetupDatabase_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t, introToDBDoc, true)
	cfg.Database.Driver = "sqlite"

	_, _, err := SetupDatabase(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestRouter_AllCoursesKeepsEveryLabel(t *testing.T) {
	doc := `[
  {"2nd Year": [{"description": "B", "tags": ["B1", "Track", "BSIT"]}],
   "1st Year": [{"description": "A", "tags": ["A1", "Track", "BSIS"]}]},
  {"Summer": [{"description": "S", "tags": ["S1", "Track"]}]}
]`
	h := newTestRouter(t, doc, true)

	rr := get(t, h, "/api/courses")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, doc, rr.Body.String())

	// labels inside a year object are re-encoded in sorted order
	first := get(t, h, "/api/courses").Body.String()
	assert.Less(t, strings.Index(first, `"1st Year"`), strings.Index(first, `"2nd Year"`))
	assert.Equal(t, rr.Body.String(), first)
}
