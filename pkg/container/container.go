package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"mangable-backend/internal/config"
	"mangable-backend/internal/domains/auth"
	infraCache "mangable-backend/internal/infrastructure/cache"
	"mangable-backend/internal/infrastructure/database"
	"mangable-backend/pkg/apikey"
	"mangable-backend/pkg/cache"
	"mangable-backend/pkg/jwt"

	apikeyDomain "mangable-backend/internal/domains/apikey"
	apikeyHandler "mangable-backend/internal/domains/apikey/handler"
	apikeyRepo "mangable-backend/internal/domains/apikey/repository"
	apikeyService "mangable-backend/internal/domains/apikey/service"
	"mangable-backend/internal/domains/comic"
	comicHandler "mangable-backend/internal/domains/comic/handler"
	comicRepo "mangable-backend/internal/domains/comic/repository"
	comicService "mangable-backend/internal/domains/comic/service"
	"mangable-backend/internal/domains/user"
	userHandler "mangable-backend/internal/domains/user/handler"
	userRepo "mangable-backend/internal/domains/user/repository"
	userService "mangable-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph. Everything in here is a
// singleton built once at startup; nothing reads the environment after
// config.Load.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	UserRepo  user.Repository
	KeyRepo   apikeyDomain.Repository
	ComicRepo comic.Repository

	// Services
	UserService  user.Service
	KeyService   apikeyDomain.Service
	ComicService comic.Service

	// Credential resolution (shared by the auth middleware)
	AuthResolver *auth.Resolver

	// Handlers
	UserHandler  *userHandler.UserHandler
	KeyHandler   *apikeyHandler.KeyHandler
	ComicHandler *comicHandler.ComicHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the dependency graph in order: config, then
// infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// STEP 1: configuration
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// STEP 2: database
	log.Println("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(&database.DBConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Database,
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),

		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,

		MaxRetries:     5,
		RetryDelay:     time.Second,
		ConnectTimeout: 10 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	if err := db.CreateSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// STEP 3: cache
	log.Println("🔴 Connecting to Redis...")

	redisClient := infraCache.NewRedisClient(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// Redis failure is non-critical: repositories degrade to DB-only.
	if err := redisClient.Connect(context.Background()); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}

	c.Cache = redisClient

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	// STEP 4-6: repositories, services, handlers
	log.Println("📦 Initializing repositories...")
	c.initRepositories()

	log.Println("⚙️  Initializing services...")
	c.initServices()

	log.Println("🎯 Initializing handlers...")
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.KeyRepo = apikeyRepo.NewPostgresRepository(c.DB)
	c.ComicRepo = comicRepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	generator := apikey.NewGenerator(c.Config.APIKey.Prefix)
	c.KeyService = apikeyService.NewKeyService(c.KeyRepo, generator, c.Config.APIKey.MaxActiveKeys)

	c.ComicService = comicService.NewComicService(c.ComicRepo)

	c.AuthResolver = auth.NewResolver(c.UserRepo, c.KeyRepo, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.KeyHandler = apikeyHandler.NewKeyHandler(c.KeyService)
	c.ComicHandler = comicHandler.NewComicHandler(c.ComicService)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup releases connections during graceful shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisClient); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			} else {
				log.Println("✅ Redis connections closed")
			}
		}
	}

	log.Println("✅ Container cleanup completed")
}
