package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.html":    "<html>app</html>",
		"goodnews.html": "<html>goodnews</html>",
		"style.css":     "body{}",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return root
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestStaticHandler_ServesFiles(t *testing.T) {
	h := NewStaticHandler(newStaticRoot(t))

	rr := get(h, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<html>app</html>", rr.Body.String())

	rr = get(h, "/goodnews.html")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<html>goodnews</html>", rr.Body.String())

	rr = get(h, "/style.css")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "body{}", rr.Body.String())
}

func TestStaticHandler_SubsetFallback(t *testing.T) {
	h := NewStaticHandler(newStaticRoot(t))

	// Digit-bearing extensionless paths are client routes.
	for _, path := range []string{"/6_9", "/9-10-11", "/3", "/6_9/extra"} {
		rr := get(h, path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "<html>app</html>", rr.Body.String(), path)
	}
}

func TestStaticHandler_NonSubsetMisses(t *testing.T) {
	h := NewStaticHandler(newStaticRoot(t))

	// No digits: not a subset route, falls through to a plain 404.
	rr := get(h, "/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Extension present: a real (missing) file, never index.html.
	rr = get(h, "/tile9.png")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLooksLikeSubset(t *testing.T) {
	assert.True(t, looksLikeSubset("6_9"))
	assert.True(t, looksLikeSubset("9-10-11"))
	assert.True(t, looksLikeSubset("3/anything"))

	assert.False(t, looksLikeSubset(""))
	assert.False(t, looksLikeSubset("about"))
	assert.False(t, looksLikeSubset("index.html"))
	assert.False(t, looksLikeSubset("goodnews.html"))
	assert.False(t, looksLikeSubset("tile9.png"))
}
