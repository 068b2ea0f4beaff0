package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/melatron/hft-service/internal/apierr"
	"github.com/melatron/hft-service/internal/metrics"
	"github.com/melatron/hft-service/internal/registry"
)

// Server wires the Symbol Registry core into an HTTP surface. It holds no
// mutable state of its own beyond what its collaborators (registry,
// metrics, logger) already own, mirroring the teacher's cmd/coordinator
// server type, which is itself a thin holder of shared state for its
// handler methods.
type Server struct {
	registry *registry.Registry
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewServer constructs a Server. logger and m may be nil in tests that
// don't care about observability side effects.
func NewServer(reg *registry.Registry, m *metrics.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{registry: reg, metrics: m, logger: logger}
}

// Router builds the gin.Engine exposing spec.md §6's HTTP surface plus the
// /metrics endpoint from SPEC_FULL.md §3.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.observe())

	r.GET("/health", s.handleHealth)
	r.POST("/add_batch/", s.handleAddBatch)
	r.GET("/stats/", s.handleStats)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	return r
}

// observe is gin middleware recording request counts and latency. It plays
// the same role as the teacher's ReadHeaderTimeout-configured http.Server
// (request-bounding at the transport edge) but for metrics rather than
// slowloris protection.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		route := c.FullPath()
		c.Next()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.metrics.RequestsTotal.WithLabelValues(route, statusClass(c.Writer.Status())).Inc()
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// addBatchRequest mirrors spec.md §6's POST /add_batch/ body.
type addBatchRequest struct {
	Symbol string    `json:"symbol"`
	Values []float64 `json:"values"`
}

func (s *Server) handleAddBatch(c *gin.Context) {
	var req addBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}
	if req.Symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	if err := s.registry.Record(req.Symbol, req.Values); err != nil {
		s.respondError(c, err, req.Symbol)
		return
	}

	if s.metrics != nil {
		s.metrics.Appends.Inc()
		s.metrics.LiveSymbols.Set(float64(s.registry.Stats().LiveSymbols))
	}
	c.Status(http.StatusOK)
}

// statsResponse mirrors spec.md §6's GET /stats/ success body exactly,
// including the "avg" field name (the registry/aggregate packages call the
// same quantity Mean internally).
type statsResponse struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Last float64 `json:"last"`
	Avg  float64 `json:"avg"`
	Var  float64 `json:"var"`
}

func (s *Server) handleStats(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	exponent, err := parseExponent(c.Query("exponent"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := s.registry.Query(symbol, exponent)
	if err != nil {
		s.respondError(c, err, symbol)
		return
	}

	if s.metrics != nil {
		s.metrics.Queries.Inc()
	}
	c.JSON(http.StatusOK, statsResponse{
		Min:  stats.Min,
		Max:  stats.Max,
		Last: stats.Last,
		Avg:  stats.Mean,
		Var:  stats.Var,
	})
}

// respondError maps a core error Kind to the HTTP status spec.md §7
// specifies. An error that is not an *apierr.Error indicates an internal
// invariant violation: it is logged at Error level (the core itself never
// logs) and answered with 500, rather than crashing the whole process over
// one bad request — gin's Recovery() middleware, already installed in
// Router, applies the same containment to an outright panic.
func (s *Server) respondError(c *gin.Context, err error, symbol string) {
	kind, ok := apierr.KindOf(err)
	if !ok {
		s.logger.Error("internal invariant violation", zap.String("symbol", symbol), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusBadRequest
	switch kind {
	case apierr.CapacityExceeded:
		status = http.StatusInsufficientStorage
	case apierr.UnknownSymbol:
		status = http.StatusNotFound
	case apierr.InvalidValue, apierr.EmptyBatch, apierr.InsufficientData, apierr.InvalidExponent:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": string(kind)})
}
