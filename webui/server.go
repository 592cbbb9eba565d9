// Package webui serves the catalog over HTTP: a JSON API, PNG covers, CSV
// export, a websocket page stream and the embedded browser UI.
package webui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"bookforge/catalog"
	"bookforge/core"
	"bookforge/metrics"

	"go.uber.org/zap"
)

// Server wires the catalog API, the websocket stream and static assets
// behind the request logging middleware.
type Server struct {
	httpServer    *http.Server
	mux           *http.ServeMux
	config        ServerConfig
	logger        *zap.Logger
	loggingMw     *LoggingMiddleware
	api           *CatalogAPI
	stream        *BookStream
	staticHandler *StaticAssetHandler
}

// ServerConfig configures the Server.
type ServerConfig struct {
	// Host and Port to bind to (default: localhost:3000)
	Host string
	Port int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// IdleTimeout for keep-alive connections (default: 120s)
	IdleTimeout time.Duration

	StaticConfig StaticAssetConfig
	API          CatalogAPIConfig
	Stream       StreamConfig

	// LogSkipPaths are paths to skip logging
	LogSkipPaths []string
}

// DefaultServerConfig returns a ServerConfig with the core defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         core.DefaultHost,
		Port:         core.DefaultPort,
		ReadTimeout:  core.DefaultReadTimeoutSec * time.Second,
		WriteTimeout: core.DefaultWriteTimeoutSec * time.Second,
		IdleTimeout:  120 * time.Second,
		StaticConfig: DefaultStaticAssetConfig(),
		API:          DefaultCatalogAPIConfig(),
		Stream:       DefaultStreamConfig(),
		LogSkipPaths: []string{"/health", "/api/status"},
	}
}

// ServerConfigFromCore derives the server settings from the loaded
// configuration.
func ServerConfigFromCore(cfg *core.Config) ServerConfig {
	sc := DefaultServerConfig()
	sc.Host = cfg.Host
	sc.Port = cfg.Port
	sc.ReadTimeout = cfg.ReadTimeout
	sc.WriteTimeout = cfg.WriteTimeout
	sc.StaticConfig.EnableCache = !cfg.DevMode
	sc.API = CatalogAPIConfig{
		Limits:         PageLimits{DefaultSize: cfg.PageSize, MaxSize: cfg.MaxPageSize},
		MaxExportPages: cfg.MaxExportPages,
		CoverWidth:     cfg.CoverWidth,
		CoverHeight:    cfg.CoverHeight,
	}
	return sc
}

// NewServer creates a Server. collector and tracker may be nil.
func NewServer(
	config ServerConfig,
	gen *catalog.Generator,
	collector metrics.Collector,
	tracker Tracker,
	logger *zap.Logger,
) (*Server, error) {
	if gen == nil {
		return nil, errors.New("webui: generator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	api := NewCatalogAPI(gen, collector, tracker, config.API, logger.Named("api"))
	stream := NewBookStream(gen, collector, tracker, api.config.Limits, config.Stream, logger.Named("ws"))
	api.wsClients = stream.ClientCount

	s := &Server{
		mux:           http.NewServeMux(),
		config:        config,
		logger:        logger,
		loggingMw:     NewLoggingMiddleware(logger.Named("http"), config.LogSkipPaths...),
		api:           api,
		stream:        stream,
		staticHandler: NewStaticAssetHandler(config.StaticConfig),
	}
	s.setupRoutes()

	addr := net.JoinHostPort(config.Host, fmt.Sprint(config.Port))
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	logger.Info("Web server created", zap.String("addr", addr))
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.api.RegisterRoutes(s.mux)
	s.mux.HandleFunc("GET /ws/books", s.stream.HandleConnection)
	s.staticHandler.RegisterRoutes(s.mux)
	s.mux.HandleFunc("GET /", s.staticHandler.ServeIndex())
}

// Handler returns the mux wrapped with middleware.
func (s *Server) Handler() http.Handler {
	return s.loggingMw.Handler(s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start listens on the configured address and blocks until the server is
// shut down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until the server is shut down.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Web server listening", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and closes
// websocket clients.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.stream.Close()
	if err != nil {
		return fmt.Errorf("http shutdown error: %w", err)
	}
	s.logger.Info("Web server stopped")
	return nil
}

// HTTPServer exposes the underlying server for the shutdown registry.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// Stream returns the websocket page stream.
func (s *Server) Stream() *BookStream {
	return s.stream
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
