package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// knownPages are top-level HTML entry points served as-is.
var knownPages = map[string]bool{
	"index.html":    true,
	"goodnews.html": true,
	"about.html":    true,
	"404.html":      true,
}

// StaticHandler serves the front-end assets with an SPA fallback: subset
// style paths such as /6_9 or /9-10-11 (no extension, contains a digit)
// serve index.html so the client router can parse the indices.
type StaticHandler struct {
	root string
	fs   http.Handler
}

// NewStaticHandler serves files from root.
func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{
		root: root,
		fs:   http.FileServer(http.Dir(root)),
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" {
		http.ServeFile(w, r, filepath.Join(h.root, "index.html"))
		return
	}

	if fi, err := os.Stat(filepath.Join(h.root, filepath.Clean(path))); err == nil && !fi.IsDir() {
		h.fs.ServeHTTP(w, r)
		return
	}

	if looksLikeSubset(path) {
		http.ServeFile(w, r, filepath.Join(h.root, "index.html"))
		return
	}

	h.fs.ServeHTTP(w, r)
}

// looksLikeSubset reports whether the first path segment is a client-side
// subset route rather than a file or known page.
func looksLikeSubset(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	if first == "" || knownPages[first] || strings.Contains(first, ".") {
		return false
	}
	return strings.ContainsAny(first, "0123456789")
}
