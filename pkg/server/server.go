// Package server exposes the table pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz   liveness and build version
//	GET  /presets   built-in presets and configured themes
//	POST /render    CSV request body, rendered table response body
//
// /render takes its options from the query string: preset, format, scale,
// dpi, font (an embedded font family), quality (JPEG, 1-100) and svg_font
// (CSS font-family for SVG and PDF). The response carries the
// format's content type and an X-Cache header of "hit" or "miss".
//
// Errors are JSON objects of the form {"code": "...", "message": "..."}
// with a status derived from the error code: 400 for invalid parameters,
// 422 for a CSV without rows.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/csvtable/pkg/buildinfo"
	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/pipeline"
	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/sink"
)

// DefaultMaxUpload is the largest accepted CSV body in bytes.
const DefaultMaxUpload int64 = 8 << 20

// Server renders tables for HTTP clients. It is safe for concurrent use.
type Server struct {
	runner    *pipeline.Runner
	logger    *log.Logger
	themes    map[string]table.Theme
	maxUpload int64
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithThemes makes custom themes available by name.
func WithThemes(themes map[string]table.Theme) Option {
	return func(s *Server) { s.themes = themes }
}

// WithMaxUpload sets the request body limit in bytes.
func WithMaxUpload(n int64) Option {
	return func(s *Server) { s.maxUpload = n }
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:    runner,
		logger:    logger,
		maxUpload: DefaultMaxUpload,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/presets", s.handlePresets)
	r.Post("/render", s.handleRender)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

type presetInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Theme       bool   `json:"theme,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	out := make([]presetInfo, 0, len(table.Presets)+len(s.themes))
	for _, name := range table.Presets {
		out = append(out, presetInfo{Name: name, Description: table.Describe(name)})
	}
	themes := make([]string, 0, len(s.themes))
	for name := range s.themes {
		themes = append(themes, name)
	}
	sort.Strings(themes)
	for _, name := range themes {
		out = append(out, presetInfo{Name: name, Theme: true})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload+1))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = errors.ValidateUploadSize(tooLarge.Limit, s.maxUpload)
		} else {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
		}
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateUploadSize(int64(len(body)), s.maxUpload); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.CSV = body

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := sink.Format(opts.Formats[0])
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Cache", cacheStatus(res.CacheHit))
	w.Header().Set("X-Table-Width", strconv.Itoa(res.Stats.Width))
	w.Header().Set("X-Table-Height", strconv.Itoa(res.Stats.Height))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[opts.Formats[0]])
}

// renderOptions builds pipeline options from the query string.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Preset:     q.Get("preset"),
		FontFamily: q.Get("font"),
		SVGFont:    q.Get("svg_font"),
		Themes:     s.themes,
		Logger:     loggerFrom(r.Context(), s.logger),
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	f, err := sink.ParseFormat(format)
	if err != nil {
		return opts, err
	}
	opts.Formats = []string{string(f)}

	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || !(scale > 0) {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "scale must be a positive number, got %q", v)
		}
		opts.Scale = scale
	}
	if v := q.Get("dpi"); v != "" {
		dpi, err := strconv.Atoi(v)
		if err != nil || dpi <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "dpi must be a positive integer, got %q", v)
		}
		opts.DPI = dpi
	}
	if v := q.Get("quality"); v != "" {
		quality, err := strconv.Atoi(v)
		if err != nil || quality < 1 || quality > 100 {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "quality must be an integer from 1 to 100, got %q", v)
		}
		opts.Quality = quality
	}
	return opts, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	logger := loggerFrom(r.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		logger.Error("render failed", "error", err)
	} else {
		logger.Debug("request rejected", "code", code, "error", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
