package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testStaticEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.NoRoute(staticHandler(staticAssets()))
	return engine
}

func TestStaticServesIndexAtRoot(t *testing.T) {
	engine := testStaticEngine()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<html>")
}

func TestStaticFallsBackToIndexForExtensionlessPath(t *testing.T) {
	engine := testStaticEngine()
	req := httptest.NewRequest(http.MethodGet, "/traces/abc123", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<html>")
}

func TestStaticMissingAssetWithExtensionIs404(t *testing.T) {
	engine := testStaticEngine()
	req := httptest.NewRequest(http.MethodGet, "/missing.js", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticRejectsDotDotPaths(t *testing.T) {
	engine := testStaticEngine()
	req := httptest.NewRequest(http.MethodGet, "/../../etc/passwd", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
