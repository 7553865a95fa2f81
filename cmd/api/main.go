package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/veredas/veredas-backend/internal/config"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/handler"
	"github.com/veredas/veredas-backend/internal/middleware"
	"github.com/veredas/veredas-backend/internal/migration"
	"github.com/veredas/veredas-backend/internal/repository"
	"github.com/veredas/veredas-backend/internal/routes"
	"github.com/veredas/veredas-backend/internal/service"
	pkgcache "github.com/veredas/veredas-backend/pkg/cache"
	"github.com/veredas/veredas-backend/pkg/jwt"
	pkglogger "github.com/veredas/veredas-backend/pkg/logger"
	pkgredis "github.com/veredas/veredas-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	logg := pkglogger.GetLogger()
	logg.Info().Str("env", env).Strs("dotenv", dotenvFiles).Msg("starting")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	logg.Info().Msg("connected to MySQL")

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis is optional; tip reads fall back to the database without it.
	var tipCache pkgcache.DocumentCache
	if cfg.Redis.Enabled {
		redisClient, redisErr := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if redisErr != nil {
			logg.Warn().Err(redisErr).Msg("redis unavailable, continuing without tip cache")
		} else {
			tipCache = pkgcache.NewDocumentCache(redisClient)
			logg.Info().Msg("connected to Redis")
		}
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	// Repositories
	docRepo := repository.NewDocumentRepository(db)
	revRepo := repository.NewRevisionRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	lifeRepo := repository.NewLifeNodeRepository(db)
	occRepo := repository.NewOccurrenceRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Versioned stores, one per content kind
	memberStore := service.NewStore[domain.Member](db, docRepo, revRepo, *logg)
	lifeStore := service.NewStore[domain.LifeNode](db, docRepo, revRepo, *logg)
	nameStore := service.NewStore[domain.CommonName](db, docRepo, revRepo, *logg)
	occStore := service.NewStore[domain.Occurrence](db, docRepo, revRepo, *logg)
	suggestionStore := service.NewStore[domain.Suggestion](db, docRepo, revRepo, *logg)
	commentStore := service.NewStore[domain.Comment](db, docRepo, revRepo, *logg)
	imageStore := service.NewStore[domain.Image](db, docRepo, revRepo, *logg)
	if tipCache != nil {
		memberStore.WithCache(tipCache)
		lifeStore.WithCache(tipCache)
		nameStore.WithCache(tipCache)
		occStore.WithCache(tipCache)
		suggestionStore.WithCache(tipCache)
		commentStore.WithCache(tipCache)
		imageStore.WithCache(tipCache)
	}

	// Services
	permSvc := service.NewPermissionService(service.PermissionConfig{
		EditMinReputation:   cfg.Permissions.EditMinReputation,
		DeleteMinReputation: cfg.Permissions.DeleteMinReputation,
	})
	memberSvc := service.NewMemberService(memberStore, memberRepo, jwtManager)
	docSvc := service.NewDocumentService(docRepo, revRepo,
		memberStore, lifeStore, nameStore, occStore, suggestionStore, commentStore, imageStore)
	lifeSvc := service.NewLifeNodeService(lifeStore, nameStore, lifeRepo, docRepo, permSvc)
	occSvc := service.NewOccurrenceService(occStore, suggestionStore, occRepo, docRepo, permSvc)
	commentSvc := service.NewCommentService(commentStore, commentRepo, docRepo, permSvc)
	imageSvc := service.NewImageService(imageStore, imageRepo, docRepo, permSvc)

	// Router
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RevisionMessageHeader},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		MaxAge:           86400,
	}))
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "veredas-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(router, routes.Handlers{
		Auth:       handler.NewAuthHandler(memberSvc),
		Document:   handler.NewDocumentHandler(docSvc),
		LifeNode:   handler.NewLifeNodeHandler(lifeSvc),
		Occurrence: handler.NewOccurrenceHandler(occSvc),
		Comment:    handler.NewCommentHandler(commentSvc),
		Image:      handler.NewImageHandler(imageSvc),
	}, jwtManager, memberRepo)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logg.Info().Str("addr", addr).Msg("server listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func splitAndTrim(s, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// initDB opens the MySQL connection and configures the pool. TranslateError
// maps driver duplicate-key errors onto gorm.ErrDuplicatedKey, which the
// revision chain relies on to detect concurrent writers.
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	logMode := gormlogger.Warn
	if os.Getenv("APP_ENV") == "local" {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
