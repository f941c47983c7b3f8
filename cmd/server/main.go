package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Erik-List/ranked-capital/internal/config"
	"github.com/Erik-List/ranked-capital/internal/infrastructure/linkedin"
	"github.com/Erik-List/ranked-capital/internal/infrastructure/repositories"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/handlers"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/middleware"
	"github.com/Erik-List/ranked-capital/internal/usecases"
	"github.com/Erik-List/ranked-capital/pkg/jwt"
	"github.com/Erik-List/ranked-capital/pkg/logger"
	"github.com/Erik-List/ranked-capital/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	investorRepo := repositories.NewInvestorRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	logRepo := repositories.NewLogRepository(db)
	uow := repositories.NewUnitOfWork(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	rankingCache := redis.NewRankingCache(cfg.Redis.RankingTTL)

	linkedinClient := linkedin.NewClient(linkedin.Config{
		ClientID:     cfg.LinkedIn.ClientID,
		ClientSecret: cfg.LinkedIn.ClientSecret,
		RedirectURI:  cfg.LinkedIn.RedirectURI,
	})

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, linkedinClient, jwtService, sessionStore, cfg.Security.SessionTTL)
	ratingUsecase := usecases.NewRatingUsecase(userRepo, investorRepo, ratingRepo, logRepo, uow, rankingCache)
	moderationUsecase := usecases.NewModerationUsecase(investorRepo, ratingRepo, logRepo, uow, rankingCache)
	leaderboardUsecase := usecases.NewLeaderboardUsecase(investorRepo, ratingRepo, logRepo, rankingCache)
	investorUsecase := usecases.NewInvestorUsecase(investorRepo, rankingCache)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	ratingHandler := handlers.NewRatingHandler(ratingUsecase)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardUsecase)
	investorHandler := handlers.NewInvestorHandler(investorUsecase)
	adminHandler := handlers.NewAdminHandler(investorUsecase, moderationUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", middleware.MetricsHandler())
	registerAPIV1Routes(r, routeDeps{
		authHandler:        authHandler,
		ratingHandler:      ratingHandler,
		leaderboardHandler: leaderboardHandler,
		investorHandler:    investorHandler,
		adminHandler:       adminHandler,
		authMiddleware:     authMiddleware,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			log.Println("🛑 Shutting down server...")
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Printf("🚀 Ranked Capital backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
