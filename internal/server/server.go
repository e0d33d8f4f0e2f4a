package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"ortofrutticola/internal/admin"
	"ortofrutticola/internal/cart"
	"ortofrutticola/internal/catalog"
	"ortofrutticola/internal/config"
	custommiddleware "ortofrutticola/internal/middleware"
	"ortofrutticola/internal/repository"
	"ortofrutticola/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config  *config.Config
	logger  *zap.Logger
	db      *sql.DB
	redis   *redis.Client
	Catalog *catalog.Store
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	router := chi.NewRouter()

	// Basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Core state
	productRepo := repository.NewProductRepository(db)
	catalogStore := catalog.NewStore(productRepo, logger)
	cartRegistry := cart.NewRegistry(cart.DefaultIdleTTL)
	gate := admin.NewStaticAuthenticator(cfg.Admin.Credential)
	sessions := admin.NewSessions(gate, cfg.Admin.JWTSecret, time.Duration(cfg.Admin.SessionTTL)*time.Minute)

	// Handlers
	storefrontHandler := transport.NewStorefrontHandler(catalogStore, logger)
	cartHandler := transport.NewCartHandler(cartRegistry, catalogStore, logger)
	adminHandler := transport.NewAdminHandler(catalogStore, sessions, logger)

	adminAuth := custommiddleware.AdminAuthMiddleware(sessions, logger)
	loginLimiter := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "admin_login",
	}, logger)

	storefrontHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router, adminAuth, loginLimiter)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:  cfg,
		logger:  logger,
		db:      db,
		redis:   redisClient,
		Catalog: catalogStore,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
