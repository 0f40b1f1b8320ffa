package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/AakashShah07/Web-Development-Assesment/internal/config"
	"github.com/AakashShah07/Web-Development-Assesment/internal/handler"
	"github.com/AakashShah07/Web-Development-Assesment/internal/repository"
	"github.com/AakashShah07/Web-Development-Assesment/internal/service"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

// New wires repositories, services and routes on top of db. The database
// handle stays owned by the caller.
func New(ctx context.Context, cfg *config.Config, db *sqlx.DB, log *zap.Logger) (*Server, error) {
	blobs, err := newBlobStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	schoolRepo := repository.NewSchoolRepository(db, log)
	if err := schoolRepo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	imageService := service.NewImageService(blobs, cfg, log)
	schoolService := service.NewSchoolService(schoolRepo, imageService, log)

	h := handler.NewHandler(schoolService, imageService, cfg.Upload.MaxSize, log)

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:        newRouter(cfg, h, log),
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver))

	return server, nil
}

func newBlobStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.BlobStore, error) {
	switch cfg.Storage.Driver {
	case "s3":
		blobs, err := repository.NewS3Repository(ctx, &cfg.S3, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 repository: %w", err)
		}
		return blobs, nil
	default:
		if err := config.EnsureDirs(cfg); err != nil {
			return nil, err
		}
		return repository.NewLocalRepository(cfg.Storage.LocalDir, log), nil
	}
}

func newRouter(cfg *config.Config, h *handler.Handler, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	corsCfg := cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))
	router.MaxMultipartMemory = cfg.Upload.MaxSize

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/schools", h.ListSchools)
		api.POST("/schools", h.CreateSchool)
		api.POST("/upload", h.UploadImage)
	}

	if cfg.Storage.Driver == "local" {
		router.Static(cfg.Storage.PublicPrefix, cfg.Storage.LocalDir)
	} else {
		router.GET(cfg.Storage.PublicPrefix+"/:name", h.ServeImage)
	}

	return router
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
