package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripplanner/database"
	"tripplanner/logger"
	"tripplanner/metrics"
	"tripplanner/planner"
	"tripplanner/session"
)

type Options struct {
	Engine   *planner.Engine
	Store    *database.SessionStore
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	// PublicBaseURL overrides the scheme and host used in share links.
	PublicBaseURL  string
	AllowedOrigins []string

	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-*
	// headers are honoured. Empty trusts nobody.
	TrustedProxies []string

	// MaxDays caps the trip length; zero means DefaultMaxDays.
	MaxDays int
}

// DefaultMaxDays bounds trip length when Options.MaxDays is unset.
const DefaultMaxDays = 60

type Handler struct {
	engine         *planner.Engine
	store          *database.SessionStore
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
	logger         *slog.Logger
	publicBaseURL  string
	allowedOrigins []string
	trustedProxies []string
	trustedNets    []*net.IPNet
	maxDays        int
}

func New(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Engine == nil {
		opts.Engine = planner.NewEngine(nil)
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = DefaultMaxDays
	}
	h := &Handler{
		engine:         opts.Engine,
		store:          opts.Store,
		metrics:        opts.Metrics,
		gatherer:       opts.Gatherer,
		logger:         opts.Logger,
		publicBaseURL:  opts.PublicBaseURL,
		allowedOrigins: opts.AllowedOrigins,
		maxDays:        opts.MaxDays,
	}
	for _, p := range opts.TrustedProxies {
		ipNet, err := parseProxy(p)
		if err != nil {
			h.logger.Warn("Ignoring trusted proxy", slog.String("proxy", p), slog.Any("error", err))
			continue
		}
		h.trustedProxies = append(h.trustedProxies, p)
		h.trustedNets = append(h.trustedNets, ipNet)
	}
	return h
}

// parseProxy accepts a CIDR or a bare IP address.
func parseProxy(p string) (*net.IPNet, error) {
	if strings.Contains(p, "/") {
		_, ipNet, err := net.ParseCIDR(p)
		return ipNet, err
	}
	ip := net.ParseIP(p)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address %q", p)
	}
	bits := 8 * net.IPv6len
	if ip4 := ip.To4(); ip4 != nil {
		ip, bits = ip4, 8*net.IPv4len
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}

// fromTrustedProxy reports whether the direct peer is a configured proxy.
func (h *Handler) fromTrustedProxy(c *gin.Context) bool {
	ip := net.ParseIP(c.RemoteIP())
	if ip == nil {
		return false
	}
	for _, n := range h.trustedNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// Router wires every API route onto a new gin engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(h.trustedProxies); err != nil {
		h.logger.Error("Failed to set trusted proxies", slog.Any("error", err))
	}
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(logger.StructuredLogger(h.logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", logger.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", logger.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		api.POST("/plans", h.GeneratePlan)
		api.POST("/plans/export", h.ExportPlan)

		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions/:id", h.GetSession)
		api.DELETE("/sessions/:id", h.DeleteSession)
		api.POST("/sessions/:id/start", h.StartSession)
		api.POST("/sessions/:id/submit", h.SubmitSession)
		api.POST("/sessions/:id/back", h.BackSession)
		api.GET("/sessions/:id/export", h.ExportSessionJSON)
		api.GET("/sessions/:id/pdf", h.ExportSessionPDF)
		api.GET("/sessions/:id/share", h.ShareSession)
	}

	if h.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

// Synthesize runs the engine and records the outcome. It satisfies
// session.Synthesizer so session submissions are observed the same way.
func (h *Handler) Synthesize(req planner.TripRequest) (*planner.TripPlan, error) {
	start := time.Now()
	plan, err := h.engine.Synthesize(req)
	if h.metrics != nil {
		h.metrics.SynthesisDuration.Observe(time.Since(start).Seconds())
	}

	var verr *planner.ValidationError
	switch {
	case err == nil:
		h.count(func(m *metrics.Metrics) { m.PlansSynthesized.Inc() })
		h.logger.Info("Trip plan synthesized",
			slog.String("destination", plan.Destination),
			slog.Int("days", len(plan.Itinerary)),
			slog.String("total", plan.TotalEstimatedCost))
	case errors.As(err, &verr):
		h.count(func(m *metrics.Metrics) { m.ValidationFailures.Inc() })
		h.logger.Warn("Trip request rejected", slog.Any("missing", verr.Missing))
	default:
		h.count(func(m *metrics.Metrics) { m.SynthesisFailures.Inc() })
		h.logger.Error("Trip synthesis failed", slog.Any("error", err))
	}
	return plan, err
}

// withinDayLimit answers 422 when the requested trip is longer than the
// configured cap. Synthesis allocates one DayPlan per day.
func (h *Handler) withinDayLimit(c *gin.Context, req planner.TripRequest) bool {
	if days := req.Days.Int(); days > h.maxDays {
		h.logger.Warn("Trip request too long",
			slog.Int("days", days), slog.Int("max_days", h.maxDays))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("Trips can be at most %d days long", h.maxDays),
		})
		return false
	}
	return true
}

func (h *Handler) count(f func(*metrics.Metrics)) {
	if h.metrics != nil {
		f(h.metrics)
	}
}

var _ session.Synthesizer = (*Handler)(nil)

// respondError maps domain errors onto status codes with the {"error": ...} body.
func respondError(c *gin.Context, err error) {
	var verr *planner.ValidationError
	var serr *planner.SynthesisError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.UserMessage(), "missing": verr.Missing})
	case errors.As(err, &serr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": serr.UserMessage()})
	case errors.Is(err, database.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, session.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
