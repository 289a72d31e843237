package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pulseboard/internal/config"
	"pulseboard/internal/fetchers"
	"pulseboard/internal/logger"
	"pulseboard/internal/metrics"
	"pulseboard/internal/presets"
	"pulseboard/internal/reports"

	"github.com/gin-gonic/gin"
)

// Dependencies are the components a Server routes requests to
type Dependencies struct {
	Presets   presets.Presets
	Fetcher   *fetchers.DataFetcher
	Generator *reports.Generator
	Exporter  *reports.Exporter
	Monitor   *metrics.Monitor
}

// Server represents the dashboard web server
type Server struct {
	Config    *config.Config
	Presets   presets.Presets
	Fetcher   *fetchers.DataFetcher
	Generator *reports.Generator
	Exporter  *reports.Exporter
	Monitor   *metrics.Monitor

	log *logger.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	return &Server{
		Config:    cfg,
		Presets:   deps.Presets,
		Fetcher:   deps.Fetcher,
		Generator: deps.Generator,
		Exporter:  deps.Exporter,
		Monitor:   deps.Monitor,
		log:       logger.GetGlobalLogger().WithComponent("server"),
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *gin.Engine {
	if s.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.HandleIndex)
	r.GET("/health", s.HandleHealth)
	r.GET("/metrics", gin.WrapH(s.Monitor.Handler()))

	r.GET("/crypto", s.HandleCryptoDashboard)
	r.GET("/seismic", s.HandleSeismicDashboard)

	api := r.Group("/api")
	api.GET("/crypto", s.HandleCryptoAPI)
	api.GET("/seismic", s.HandleSeismicAPI)

	r.GET("/charts/crypto-mean.png", s.HandleCryptoPNG)
	r.GET("/charts/seismic-epicentres.png", s.HandleSeismicPNG)

	r.GET("/reports", s.HandleListReports)
	r.GET("/files/*path", s.HandleFileProxy)

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         ":" + s.Config.Port,
		Handler:      s.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server listening", map[string]interface{}{"port": s.Config.Port, "environment": s.Config.Environment})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("Server stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		s.Monitor.RecordRequest(route, statusCode(status))
		s.log.Debug("Request served", map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}
