package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crossingbook/crossingbook/handlers"
	"github.com/crossingbook/crossingbook/internal/config"
	"github.com/crossingbook/crossingbook/internal/database"
	"github.com/crossingbook/crossingbook/internal/recipes"
	"github.com/crossingbook/crossingbook/internal/sessions"
	"github.com/crossingbook/crossingbook/internal/storage"
	"github.com/crossingbook/crossingbook/internal/taxonomy"
	"github.com/crossingbook/crossingbook/internal/users"
	"github.com/crossingbook/crossingbook/pkg/logger"
	"github.com/crossingbook/crossingbook/pkg/metrics"
	"github.com/crossingbook/crossingbook/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Connect to Redis early so sessions and the rate limiter can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
			mongoClient = nil
		}
	}

	// Repositories: Mongo-backed when connected, in-memory for local runs
	var (
		userRepo   users.Repository
		recipeRepo recipes.Repository
		typeRepo   taxonomy.Repository
	)
	if mongoClient != nil {
		defer func() { _ = mongoClient.Disconnect(ctx) }()
		db := mongoClient.Database(cfg.MongoDB.Database)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			logger.Warnf("failed to ensure indexes: %v", err)
		}
		userRepo = users.NewMongoRepository(db.Collection("users"))
		recipeRepo = recipes.NewMongoRepository(db.Collection("recipes"))
		typeRepo = taxonomy.NewMongoRepository(db.Collection("types"))
	} else {
		logger.Warnf("running with in-memory repositories; data will not survive a restart")
		userRepo = users.NewMemoryRepository()
		recipeRepo = recipes.NewMemoryRepository()
		typeRepo = taxonomy.NewMemoryRepository()
	}

	// Session store: prefer Redis (fast, TTL handled by the store), fall back to Mongo
	var sessionsSvc *sessions.Service
	switch {
	case redisClient != nil:
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, "session:"))
		logger.Infof("using Redis for session storage")
	case mongoClient != nil:
		sessionsSvc = sessions.NewService(sessions.NewMongoRepository(mongoClient.Database(cfg.MongoDB.Database).Collection("sessions")))
		logger.Infof("using MongoDB for session storage")
	default:
		logger.Fatalf("no session store available: configure REDIS_HOST or MONGODB_URI")
	}

	userSvc := users.NewService(userRepo)
	recipeSvc := recipes.NewService(recipeRepo)
	typeSvc := taxonomy.NewService(typeRepo)

	// identity resolution runs on every request; route gates decide access
	r.Use(middleware.ResolveIdentity(cfg, sessionsSvc))

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["sessions"] = sessionsSvc != nil
		deps["mongo"] = mongoClient != nil
		if cfg.MongoDB.URI != "" && mongoClient == nil {
			ready = false
		}
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		}

		status := http.StatusOK
		label := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			label = "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Optional MinIO-backed image storage for /upload_image
	var imageStore *storage.ImageStore
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		imageStore, err = storage.NewImageStore(mcfg)
		if err != nil {
			logger.Warnf("image storage unavailable: %v", err)
		} else {
			logger.Infof("image storage ready (bucket=%s)", mcfg.Bucket)
		}
	}

	// Route registration
	handlers.RegisterPages(r, sessionsSvc)
	handlers.NewAuthHandler(cfg, userSvc, sessionsSvc, recipeSvc).Register(r)
	handlers.NewRecipeHandler(recipeSvc, typeSvc, sessionsSvc).Register(r)
	handlers.NewTypeHandler(typeSvc, sessionsSvc).Register(r)
	handlers.NewUploadHandler(imageStore).Register(r)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting crossingbook on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
