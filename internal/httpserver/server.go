// Package httpserver exposes the dashboard's transformed views as a small
// JSON API. Every request is one upstream fetch; nothing is cached.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/outbreak/internal/logger"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/series"
)

// Server provides an HTTP API over a StatsSource.
type Server struct {
	addr      string
	source    model.StatsSource
	gatherer  prometheus.Gatherer
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
	log       zerolog.Logger
}

// NewServer creates a new HTTP API server. A nil gatherer serves the
// default Prometheus registry on /metrics.
func NewServer(addr string, source model.StatsSource, gatherer prometheus.Gatherer) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		source:    source,
		gatherer:  gatherer,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
		log:       logger.Get().Component("httpserver"),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/summary", s.handleSummary)
	api.GET("/history", s.handleHistory)
	api.GET("/continents", s.handleContinents)
	api.GET("/countries", s.handleCountries)
	api.GET("/countries/:name", s.handleCountry)
	api.GET("/countries/:name/history", s.handleCountryHistory)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("http server stopped")
		}
	}()
	s.log.Info().Str("addr", listener.Addr().String()).Msg("http api listening")
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	rec, err := s.source.WorldSummary(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	summary, err := series.Summary(rec)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleHistory(c *gin.Context) {
	rec, err := s.source.WorldHistory(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	chart, err := series.HistoryChart(rec, decimate(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (s *Server) handleContinents(c *gin.Context) {
	recs, err := s.source.Continents(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	chart, err := series.ContinentChart(recs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (s *Server) handleCountries(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a non-negative integer"})
		return
	}

	recs, err := s.source.Countries(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	table, err := series.CountryTable(recs)
	if err != nil {
		s.fail(c, err)
		return
	}

	rows := series.Page(table.Rows, page, model.TablePageSize)
	if rows == nil {
		rows = []model.CountryRow{}
	}
	c.JSON(http.StatusOK, gin.H{
		"page":    page,
		"pages":   series.PageCount(len(table.Rows), model.TablePageSize),
		"total":   len(table.Rows),
		"columns": table.Columns,
		"rows":    rows,
	})
}

func (s *Server) handleCountry(c *gin.Context) {
	rec, err := s.source.Country(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	snap, err := series.Snapshot(rec)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleCountryHistory(c *gin.Context) {
	rec, err := s.source.CountryHistory(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	chart, err := series.HistoryChart(rec, decimate(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

// decimate reads the optional ?full=true switch; history is decimated
// unless it is set.
func decimate(c *gin.Context) bool {
	full, _ := strconv.ParseBool(c.Query("full"))
	return !full
}

// fail maps an upstream or transform error to a response status.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	s.log.Warn().Err(err).Str("path", c.FullPath()).Int("status", status).Msg("request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case model.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
