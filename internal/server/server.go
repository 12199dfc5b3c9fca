package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mealcraft/wellness-backend/config"
	"github.com/mealcraft/wellness-backend/internal/api"
	"github.com/mealcraft/wellness-backend/internal/middleware"
)

// Server wraps the gin engine with lifecycle management.
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// NewServer builds the router, mounts middleware and registers all routes.
func NewServer(cfg *config.Config, deps api.Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	api.SetupAPI(router, deps)

	return &Server{
		router: router,
		logger: deps.Logger,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Stop shuts the HTTP server down, releasing the listener.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
