// Package server is a fixture catalog API speaking the same HTTP surface
// as the production catalog, for demos and end-to-end tests.
package server

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/zeebo/blake3"

	"prodsearch/internal/domain"
)

// Options configures the fixture server.
type Options struct {
	// ImagesDir holds files served for /products/{image path}.
	ImagesDir string
	// Latency delays every API response; Jitter adds up to that much
	// more at random so responses can arrive out of order.
	Latency time.Duration
	Jitter  time.Duration
	Logger  *slog.Logger
}

// Server serves /products from a catalog.
type Server struct {
	catalog domain.Catalog
	opts    Options
	logger  *slog.Logger
	mux     *http.ServeMux
}

// New builds a server over catalog.
func New(catalog domain.Catalog, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{
		catalog: catalog,
		opts:    opts,
		logger:  opts.Logger.With("component", "server"),
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /products", s.handleSearch)
	s.mux.HandleFunc("GET /products/{path...}", s.handleProduct)
	return s
}

// Handler returns the gzip-capable root handler.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.logRequests(s.mux))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !s.delay(r.Context()) {
		return
	}
	items, err := s.catalog.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.logger.Error("search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleProduct serves a record for a numeric path and an image file for
// anything else.
func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	rest := r.PathValue("path")
	if id, err := strconv.ParseInt(rest, 10, 64); err == nil {
		s.handleDetail(w, r, id)
		return
	}
	s.handleImage(w, r, rest)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request, id int64) {
	if !s.delay(r.Context()) {
		return
	}
	item, err := s.catalog.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "no product with id "+strconv.FormatInt(id, 10))
		return
	}
	if err != nil {
		s.logger.Error("detail failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "detail_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request, rel string) {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if s.opts.ImagesDir == "" || rel == "" || !filepath.IsLocal(rel) {
		writeError(w, http.StatusNotFound, "not_found", "no such image")
		return
	}
	data, err := os.ReadFile(filepath.Join(s.opts.ImagesDir, filepath.FromSlash(rel)))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "no such image")
		return
	}
	sum := blake3.Sum256(data)
	w.Header().Set("ETag", `"`+hex.EncodeToString(sum[:16])+`"`)
	w.Header().Set("Cache-Control", "public, max-age=300")
	// ServeContent answers If-None-Match with 304 against the ETag above
	http.ServeContent(w, r, rel, time.Time{}, bytes.NewReader(data))
}

// delay waits out the configured latency. It reports false when the
// client went away first.
func (s *Server) delay(ctx context.Context) bool {
	d := s.opts.Latency
	if s.opts.Jitter > 0 {
		d += rand.N(s.opts.Jitter)
	}
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if id := r.Header.Get("X-Request-ID"); id != "" {
			w.Header().Set("X-Request-ID", id)
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", rec.status,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func writeError(w http.ResponseWriter, status int, errStr, message string) {
	writeJSON(w, status, apiError{Error: errStr, Message: message, Code: status})
}
