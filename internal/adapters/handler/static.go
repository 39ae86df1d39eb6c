package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexPage = "/index.html"

// StaticHandler serves a read-only directory tree with GET semantics
// Path cleaning, MIME types, directory listings, range and conditional
// requests are delegated to net/http
type StaticHandler struct {
	root  http.FileSystem
	files http.Handler
}

// NewStaticHandler creates a handler serving files under root
// root should be an absolute path; it is never changed after construction
func NewStaticHandler(root string) *StaticHandler {
	dir := http.Dir(root)
	return &StaticHandler{
		root:  dir,
		files: http.FileServer(dir),
	}
}

// ServeHTTP serves GET and HEAD requests; every other method gets 405
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// net/http redirects ".../index.html" to ".../"; the entry page URL
	// printed at startup must load directly
	if strings.HasSuffix(r.URL.Path, indexPage) && h.serveIndex(w, r) {
		return
	}

	h.files.ServeHTTP(w, r)
}

// serveIndex serves an index.html file in place
// Returns false when the path is a directory, leaving it to the file server
func (h *StaticHandler) serveIndex(w http.ResponseWriter, r *http.Request) bool {
	name := path.Clean("/" + r.URL.Path)

	f, err := h.root.Open(name)
	if err != nil {
		msg, code := toHTTPError(err)
		http.Error(w, msg, code)
		return true
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		msg, code := toHTTPError(err)
		http.Error(w, msg, code)
		return true
	}
	if info.IsDir() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// toHTTPError maps filesystem errors the same way net/http's file server does
func toHTTPError(err error) (string, int) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "404 page not found", http.StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		return "403 Forbidden", http.StatusForbidden
	default:
		return "500 Internal Server Error", http.StatusInternalServerError
	}
}
