package httpx

import (
	"compress/gzip"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// CompressionConfig configures Compression.
type CompressionConfig struct {
	Level  int // gzip level, 1 to 9
	Logger *slog.Logger
}

// Compression gzips HTML, CSS, JS, JSON and SVG bodies for clients that accept
// it. HEAD requests, bodiless statuses and pre-encoded responses pass through.
func Compression(cfg CompressionConfig) func(http.Handler) http.Handler {
	level := cfg.Level
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	writers := &gzipPool{level: level}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Encoding")

			cw := &compressWriter{ResponseWriter: w, writers: writers}
			next.ServeHTTP(cw, r)
			if err := cw.finish(); err != nil {
				logger.ErrorContext(r.Context(), "finish gzip body", "error", err)
			}
		})
	}
}

type gzipPool struct {
	level int
	pool  sync.Pool
}

func (p *gzipPool) get(dst io.Writer) *gzip.Writer {
	if zw, ok := p.pool.Get().(*gzip.Writer); ok {
		zw.Reset(dst)
		return zw
	}
	// level was clamped to a valid value, so this cannot fail.
	zw, _ := gzip.NewWriterLevel(dst, p.level)
	return zw
}

func (p *gzipPool) put(zw *gzip.Writer) {
	zw.Reset(io.Discard)
	p.pool.Put(zw)
}

// acceptsGzip reports whether Accept-Encoding lists gzip without q=0.
func acceptsGzip(header string) bool {
	for part := range strings.SplitSeq(header, ",") {
		coding, params, _ := strings.Cut(part, ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v == 0 {
				return false
			}
		}
		return true
	}
	return false
}

func compressible(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mt {
	case "text/html", "text/css", "text/plain", "text/javascript",
		"application/javascript", "application/json", "image/svg+xml":
		return true
	}
	return false
}

// compressWriter picks compression once, when the status line goes out.
type compressWriter struct {
	http.ResponseWriter
	writers *gzipPool
	zw      *gzip.Writer
	started bool
}

func (w *compressWriter) WriteHeader(status int) {
	if w.started {
		return
	}
	w.started = true

	h := w.Header()
	bodiless := status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified
	if !bodiless && h.Get("Content-Encoding") == "" && compressible(h.Get("Content-Type")) {
		w.zw = w.writers.get(w.ResponseWriter)
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *compressWriter) Write(b []byte) (int, error) {
	if !w.started {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.zw == nil {
		return w.ResponseWriter.Write(b)
	}
	return w.zw.Write(b)
}

// Flush implements http.Flusher.
func (w *compressWriter) Flush() {
	if w.zw != nil {
		_ = w.zw.Flush()
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *compressWriter) finish() error {
	if w.zw == nil {
		return nil
	}
	err := w.zw.Close()
	w.writers.put(w.zw)
	w.zw = nil
	return err
}
