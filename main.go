package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkmark/linkmark-api/handlers"
	"github.com/linkmark/linkmark-api/internal/bookmarks/handler"
	"github.com/linkmark/linkmark-api/internal/bookmarks/repository"
	"github.com/linkmark/linkmark-api/internal/bookmarks/service"
	"github.com/linkmark/linkmark-api/internal/config"
	"github.com/linkmark/linkmark-api/internal/database"
	"github.com/linkmark/linkmark-api/internal/identity"
	"github.com/linkmark/linkmark-api/internal/users"
	"github.com/linkmark/linkmark-api/pkg/logger"
	"github.com/linkmark/linkmark-api/pkg/metrics"
	"github.com/linkmark/linkmark-api/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: oidc=%v postgres=%v redis=%v", cfg.OIDC.IssuerURL != "", cfg.Database.DSN != "", cfg.Redis.Host != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Connect to Redis early; only used to cache verified identities, so a
	// failed connection just means every request pays the provider round trip.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v — identity cache disabled", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis for identity caching: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Connect to Postgres with retry/backoff to tolerate startup races
	const maxAttempts = 5
	backoff := time.Second
	var db *gorm.DB
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, errConn = database.ConnectPostgres(ctx, cfg.Database.DSN, cfg.Database.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to Postgres: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to Postgres after %d attempts: %v", maxAttempts, errConn)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatalf("schema migrate failed: %v", err)
	}

	// OIDC verifier; insecure fallback for integration tests only
	var verifier middleware.Verifier
	if cfg.OIDC.IssuerURL != "" && cfg.OIDC.ClientID != "" {
		ver, err := identity.NewOIDCVerifier(ctx, cfg.OIDC.IssuerURL, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil {
		val := strings.ToLower(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")))
		if val == "true" {
			logger.Warn("enabling insecure token verifier (integration mode)")
			verifier = identity.NewInsecureVerifier()
		}
	}
	if verifier != nil && redisClient != nil {
		verifier = identity.NewCachedVerifier(verifier, redisClient, cfg.Redis.IdentityTTL)
	}

	// Wire repositories, registrar and the bookmark API
	userSvc := users.NewService(users.NewGormUserRepository(db))
	bookmarkSvc := service.NewService(repository.NewGormRepo(db), userSvc)
	if verifier != nil {
		handler.NewHandler(bookmarkSvc).Register(r, verifier)
	} else {
		logger.Warnf("bookmark routes not registered because no token verifier is available")
	}

	// Swagger UI + JSON for API documentation
	handlers.RegisterSwagger(r)

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		sqlDB, err := db.DB()
		deps["database"] = err == nil && sqlDB.Ping() == nil
		if !deps["database"] {
			ready = false
		}

		// verifier is required for every bookmark route
		deps["verifier"] = verifier != nil
		if verifier == nil {
			ready = false
		}

		// Redis is optional; report it but never gate readiness on it
		deps["redis"] = redisClient != nil

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting bookmark service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
