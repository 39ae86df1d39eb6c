// Package handler implements the HTTP adapters: static file serving and response header injection
package handler

import (
	"io"
	"net/http"

	"hpc-timeline/internal/core/domain"
)

// WithResponseHeaders adds headers to every response produced by next
// Headers are added when the status line is written, so they survive handlers
// that reset headers before writing an error (net/http's file server does this
// for Cache-Control). Values already set by next are kept; ours are appended.
func WithResponseHeaders(headers []domain.ResponseHeader, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hw := &headerWriter{ResponseWriter: w, headers: headers}
		next.ServeHTTP(hw, r)

		// A handler that never writes still gets an implicit 200
		hw.inject()
	})
}

// headerWriter injects headers right before the response header is sent
type headerWriter struct {
	http.ResponseWriter
	headers  []domain.ResponseHeader
	injected bool
}

func (w *headerWriter) inject() {
	if w.injected {
		return
	}
	w.injected = true

	h := w.ResponseWriter.Header()
	for _, hdr := range w.headers {
		h.Add(hdr.Name, hdr.Value)
	}
}

func (w *headerWriter) WriteHeader(code int) {
	w.inject()
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) Write(b []byte) (int, error) {
	w.inject()
	return w.ResponseWriter.Write(b)
}

// ReadFrom keeps the sendfile fast path of the underlying writer
func (w *headerWriter) ReadFrom(r io.Reader) (int64, error) {
	w.inject()
	if rf, ok := w.ResponseWriter.(io.ReaderFrom); ok {
		return rf.ReadFrom(r)
	}
	return io.Copy(writerOnly{w.ResponseWriter}, r)
}

func (w *headerWriter) Flush() {
	w.inject()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController
func (w *headerWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// writerOnly hides ReadFrom so io.Copy does not recurse
type writerOnly struct {
	io.Writer
}
