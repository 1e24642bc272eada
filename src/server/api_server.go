package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"market-simulator/src/dashboard"
	"market-simulator/src/helpers"
	"market-simulator/src/interfaces"
	"market-simulator/src/logger"
	"market-simulator/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer serves the REST API and the dashboard websocket.
// -----------------------------------------------------------------------------

type APIServer struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Service   interfaces.IMarketService
	Processor *dashboard.Processor
	Errors    *helpers.ErrorHandler
	engine    *gin.Engine
	httpSrv   *http.Server

	// WebSocket clients, owned by the hub goroutine
	clients     map[*Client]struct{}
	broadcast   chan *models.MTickerState
	register    chan *Client
	unregister  chan *Client
	done        chan struct{}
	stopOnce    sync.Once
	connections atomic.Int64

	latestState *models.MTickerState
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, svc interfaces.IMarketService, proc *dashboard.Processor, log *logger.Logger) *APIServer {
	if !strings.EqualFold(cfg.LogLevel, "DEBUG") {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.NewLogger(cfg, "APIServer")
	}

	s := &APIServer{
		Config:     cfg,
		Logger:     log,
		Service:    svc,
		Processor:  proc,
		Errors:     helpers.NewErrorHandler(log),
		engine:     gin.New(),
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan *models.MTickerState, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		latestState: &models.MTickerState{
			Type:      models.StateInitial,
			Snapshots: make(map[string]models.MMarketSnapshot),
			Order:     []string{},
		},
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.requestLogger())

	// CORS for the local dashboard
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------

func (s *APIServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	api := s.engine.Group("/api")

	api.GET("/search", s.getSearch)
	api.GET("/snapshot", s.getSnapshot)
	api.GET("/history/*symbol", s.getHistory)

	api.GET("/watchlist", s.getWatchlist)
	api.POST("/watchlist", s.postWatchlist)
	api.DELETE("/watchlist", s.deleteWatchlist)
	api.POST("/watchlist/select", s.postSelect)
	api.GET("/portfolio", s.getPortfolio)

	api.GET("/alerts", s.getAlerts)
	api.POST("/alerts", s.postAlert)
	api.DELETE("/alerts/:id", s.deleteAlert)
	api.POST("/alerts/:id/rearm", s.postRearm)

	api.GET("/chart", s.getChart)
	api.GET("/markets", s.getMarkets)
	api.GET("/config", s.getConfig)
	api.GET("/health", s.getHealth)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mainly for httptest.
func (s *APIServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	s.stateMutex.Lock()
	s.httpSrv = &http.Server{Addr: addr, Handler: s.engine}
	srv := s.httpSrv
	s.stateMutex.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)

		s.stateMutex.RLock()
		srv := s.httpSrv
		s.stateMutex.RUnlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = srv.Shutdown(ctx)
	})
	return err
}
