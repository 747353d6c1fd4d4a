// Package server exposes the pie chart renderer over HTTP.
//
// Every path that is not a service endpoint is treated as a chart path and
// answered with a PNG. Unparseable paths and render failures are answered
// with a small error image instead, so the response is always displayable
// where an image was expected.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/piechart"
	"github.com/gogpu/piechart/internal/config"
	"github.com/gogpu/piechart/internal/errimage"
	"github.com/gogpu/piechart/internal/request"
)

const contentTypePNG = "image/png"

// ChartEncoder renders a request as PNG.
type ChartEncoder interface {
	EncodePNG(w io.Writer, req piechart.Request) error
}

// Options configures a Server.
type Options struct {
	Parser    *request.Parser // nil uses request.DefaultDefaults
	Encoder   ChartEncoder    // nil uses a default piechart.Renderer
	CacheSize int             // rendered charts kept in memory; 0 disables caching
	Logger    *slog.Logger    // nil discards logs
}

type cachedChart struct {
	png   []byte
	title string
}

// Server serves charts over HTTP.
type Server struct {
	router   chi.Router
	parser   *request.Parser
	encoder  ChartEncoder
	cache    *lru.Cache[string, cachedChart]
	registry *prometheus.Registry
	metrics  *metrics
	log      *slog.Logger
}

// New creates a Server with all routes and middleware.
func New(opts Options) (*Server, error) {
	s := &Server{
		parser:   opts.Parser,
		encoder:  opts.Encoder,
		registry: prometheus.NewRegistry(),
		log:      opts.Logger,
	}
	if s.parser == nil {
		s.parser = request.NewParser(request.DefaultDefaults())
	}
	if s.encoder == nil {
		s.encoder = piechart.NewRenderer()
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if opts.CacheSize < 0 {
		return nil, fmt.Errorf("server: negative cache size %d", opts.CacheSize)
	}
	if opts.CacheSize > 0 {
		c, err := lru.New[string, cachedChart](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("server: create cache: %w", err)
		}
		s.cache = c
	}
	s.metrics = newMetrics(s.registry)
	s.router = s.buildRouter()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully
// within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", cfg.Addr, err)
	}
	return s.serve(ctx, ln, cfg)
}

func (s *Server) serve(ctx context.Context, ln net.Listener, cfg config.ServerConfig) error {
	httpSrv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", "addr", ln.Addr().String())
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	r.Get("/*", s.handleChart)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")

	if s.cache != nil {
		if c, ok := s.cache.Get(path); ok {
			s.metrics.cacheHits.Inc()
			s.metrics.requests.WithLabelValues(outcomeCached).Inc()
			writePNG(w, c)
			return
		}
	}

	req, err := s.parser.Parse(path)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	err = s.encoder.EncodePNG(&buf, req)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	c := cachedChart{png: buf.Bytes(), title: req.Title}
	if s.cache != nil {
		s.cache.Add(path, c)
	}
	s.metrics.requests.WithLabelValues(outcomeRendered).Inc()
	writePNG(w, c)
}

// fail answers with an error image. Input errors map to 400, anything else
// to 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusBadRequest {
		s.metrics.requests.WithLabelValues(outcomeBadRequest).Inc()
		s.log.Debug("rejected chart request", "path", r.URL.Path, "err", err)
	} else {
		s.metrics.requests.WithLabelValues(outcomeError).Inc()
		s.log.Error("chart render failed", "path", r.URL.Path, "err", err)
	}
	s.writeError(w, r, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	var buf bytes.Buffer
	if encErr := errimage.Encode(&buf, err.Error()); encErr != nil {
		s.log.Error("encode error image", "request_id", middleware.GetReqID(r.Context()), "err", encErr)
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", contentTypePNG)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func statusFor(err error) int {
	var inputErr *request.InputError
	switch {
	case errors.As(err, &inputErr),
		errors.Is(err, request.ErrUnrecognizedInput),
		errors.Is(err, request.ErrTooLarge),
		errors.Is(err, piechart.ErrInvalidSize),
		errors.Is(err, piechart.ErrInvalidValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writePNG(w http.ResponseWriter, c cachedChart) {
	h := w.Header()
	h.Set("Content-Type", contentTypePNG)
	h.Set("Content-Length", strconv.Itoa(len(c.png)))
	if c.title != "" {
		h.Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": c.title}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(c.png)
}
