package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Candra0x6/Roca-sub001/api/handlers"
	"github.com/Candra0x6/Roca-sub001/api/middleware"
	"github.com/Candra0x6/Roca-sub001/api/types"
	"github.com/Candra0x6/Roca-sub001/api/websocket"
	"github.com/Candra0x6/Roca-sub001/metrics"
)

// Server is the HTTP gateway for pool and lottery operations
type Server struct {
	config     *Config
	httpServer *http.Server
	wsServer   *websocket.Server

	poolService    types.PoolService
	lotteryService types.LotteryService

	poolHandler    *handlers.PoolHandler
	lotteryHandler *handlers.LotteryHandler

	rateLimiter *middleware.RateLimiter

	mockMode bool
}

// Config contains server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MockMode serves in-memory data instead of chain state
	MockMode bool

	// DisableRateLimit turns off rate limiting (for testing)
	DisableRateLimit bool
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		MockMode:     true,
	}
}

// NewServer creates a new API server backed by the mock service
func NewServer(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	mock := NewMockService()
	return NewServerWithServices(config, mock, mock)
}

// NewServerWithServices creates a new API server with custom services
func NewServerWithServices(config *Config, poolSvc types.PoolService, lotterySvc types.LotteryService) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	wsConfig := websocket.DefaultServerConfig()
	wsConfig.Port = config.Port

	s := &Server{
		config:         config,
		wsServer:       websocket.NewServer(wsConfig),
		mockMode:       config.MockMode,
		poolService:    poolSvc,
		lotteryService: lotterySvc,
		rateLimiter:    middleware.NewRateLimiter(middleware.DefaultRateLimitConfig()),
	}

	s.poolHandler = handlers.NewPoolHandler(s.poolService)
	s.lotteryHandler = handlers.NewLotteryHandler(s.lotteryService)

	return s
}

// router builds the HTTP handler with the full middleware chain
func (s *Server) router() http.Handler {
	mux := http.NewServeMux()

	// Health check (support both /health and /v1/health for compatibility)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/health", s.handleHealth)

	// Pool endpoints
	mux.HandleFunc("/v1/pools", s.poolHandler.HandlePools)
	mux.HandleFunc("/v1/pools/stats", s.poolHandler.HandleStats)
	mux.Handle("/v1/pools/", s.txLimited(http.HandlerFunc(s.poolHandler.HandlePool)))

	// Lottery endpoints
	mux.HandleFunc("/v1/lottery/draws", s.lotteryHandler.HandleDraws)
	mux.HandleFunc("/v1/lottery/draws/", s.lotteryHandler.HandleDraw)
	mux.HandleFunc("/v1/lottery/leaderboard", s.lotteryHandler.HandleLeaderboard)
	mux.HandleFunc("/v1/lottery/treasury", s.lotteryHandler.HandleTreasury)

	// WebSocket
	mux.HandleFunc("/ws", s.wsServer.GetHub().ServeWS)

	// Prometheus scrape endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Apply middleware chain: CORS -> Metrics -> RateLimit -> Handler
	var handler http.Handler
	if s.config.DisableRateLimit {
		handler = corsMiddleware(metricsMiddleware(mux))
	} else {
		handler = corsMiddleware(
			metricsMiddleware(
				middleware.RateLimitMiddleware(s.rateLimiter)(mux),
			),
		)
	}
	return handler
}

// Start starts the API server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	// Start WebSocket hub
	go s.wsServer.GetHub().Run()

	// Keep the broadcast leaderboard in sync with the service
	go s.leaderboardRefreshLoop()

	log.Printf("API server starting on %s (mock mode: %v)", addr, s.mockMode)
	if s.config.DisableRateLimit {
		log.Printf("Rate limiting DISABLED (for testing)")
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.rateLimiter.Stop()
	return s.httpServer.Shutdown(ctx)
}

// txLimited wraps a handler with the pool transaction rate limit unless disabled
func (s *Server) txLimited(next http.Handler) http.Handler {
	if s.config.DisableRateLimit {
		return next
	}
	return middleware.TxRateLimitMiddleware(s.rateLimiter)(next)
}

// leaderboardRefreshLoop periodically refreshes the leaderboard snapshot
// that the WebSocket hub pushes to subscribers
func (s *Server) leaderboardRefreshLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		entries, err := s.lotteryService.GetLeaderboard(context.Background(), 10)
		if err != nil {
			continue
		}
		rows := make([]websocket.LeaderboardRow, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, websocket.LeaderboardRow{
				Address:       e.Address,
				Wins:          e.Wins,
				TotalWinnings: e.TotalWinnings,
			})
		}
		s.wsServer.BroadcastLeaderboard(&websocket.LeaderboardMessage{
			Entries:   rows,
			Timestamp: types.NowMillis(),
		})
	}
}

// GetWSServer returns the embedded WebSocket server for event publishing
func (s *Server) GetWSServer() *websocket.Server {
	return s.wsServer
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "chain"
	modeDescription := "Serving state from a running node"
	if s.mockMode {
		mode = "mock"
		modeDescription = "Using mock data for development/testing"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"mode":        mode,
		"description": modeDescription,
		"timestamp":   types.NowMillis(),
	})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// statusRecorder captures the response status for instrumentation
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(next http.Handler) http.Handler {
	collector := metrics.GetCollector()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		timer := metrics.NewTimer()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		status := fmt.Sprintf("%d", rec.status)
		collector.RecordAPIRequest(r.Method, r.URL.Path, status, timer.ElapsedMs())
		if rec.status == http.StatusTooManyRequests {
			collector.RecordRateLimitHit("http")
		}
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Member-Address")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
