package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"myapp_backend/internal/auth"
	"myapp_backend/internal/common"
	"myapp_backend/internal/config"
	"myapp_backend/internal/jobs"
	"myapp_backend/internal/middleware"
	"myapp_backend/internal/profile"
	"myapp_backend/internal/profileform"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	avatarAuditJob *jobs.AvatarAuditJob
}

// NewServer builds the router and mounts every route.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authService auth.Service,
	authHandler *auth.Handler,
	profileHandler *profile.Handler,
	formHandler *profileform.Handler,
	avatarAuditJob *jobs.AvatarAuditJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		common.UseJSONFieldNames(v)
	}

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg.IsRelease()))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	router.Use(cors.New(newCORSConfig(cfg.CORSAllowedOrigins, logger)))

	authMW := middleware.SessionAuth(authService, cfg.SessionCookieName, logger.Named("SessionAuth"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Profile API is healthy!"})
	})
	router.Static(cfg.UploadPublicPath, cfg.UploadDir)

	api := router.Group("/api")
	authHandler.RegisterRoutes(api, authMW)
	profileHandler.RegisterRoutes(api, authMW, middleware.RequireUser())
	formHandler.RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		avatarAuditJob: avatarAuditJob,
	}, nil
}

// newCORSConfig allows credentialed requests from origins only. With no
// origins configured any origin may call, but cookies are not shared.
func newCORSConfig(origins []string, logger *zap.Logger) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}

	if len(origins) == 0 {
		logger.Warn("CORS_ALLOWED_ORIGINS is empty. Allowing all origins without credentials; cross-origin session cookies will not work.")
		corsConfig.AllowAllOrigins = true
		return corsConfig
	}
	corsConfig.AllowOrigins = origins
	// the session travels in a cookie
	corsConfig.AllowCredentials = true
	return corsConfig
}

// Router exposes the engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	if s.avatarAuditJob != nil {
		if err := s.avatarAuditJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start avatar audit job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
		zap.String("store_driver", s.cfg.StoreDriver),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.avatarAuditJob != nil {
		s.avatarAuditJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
