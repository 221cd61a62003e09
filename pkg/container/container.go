package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"diary-backend/internal/config"
	infraCache "diary-backend/internal/infrastructure/cache"
	"diary-backend/internal/infrastructure/database"
	"diary-backend/pkg/cache"
	"diary-backend/pkg/jwt"

	authorHandler "diary-backend/internal/domains/author/handler"
	authorRepo "diary-backend/internal/domains/author/repository"
	authorService "diary-backend/internal/domains/author/service"
	entryHandler "diary-backend/internal/domains/entry/handler"
	entryRepo "diary-backend/internal/domains/entry/repository"
	entryService "diary-backend/internal/domains/entry/service"
	licenseHandler "diary-backend/internal/domains/license/handler"
	licenseRepo "diary-backend/internal/domains/license/repository"
	licenseService "diary-backend/internal/domains/license/service"
	moderationHandler "diary-backend/internal/domains/moderation/handler"
	moderationRepo "diary-backend/internal/domains/moderation/repository"
	moderationService "diary-backend/internal/domains/moderation/service"
	storyHandler "diary-backend/internal/domains/story/handler"
	storyRepo "diary-backend/internal/domains/story/repository"
	storyService "diary-backend/internal/domains/story/service"
	userHandler "diary-backend/internal/domains/user/handler"
	userRepo "diary-backend/internal/domains/user/repository"
	userService "diary-backend/internal/domains/user/service"
)

// Container holds the full dependency graph. Everything in it is a
// singleton wired once at startup; initialization order matters
// (config, infrastructure, repositories, services, handlers).
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	UserRepo       userRepo.Repository
	AuthorRepo     authorRepo.Repository
	StoryRepo      storyRepo.StoryRepository
	EntryRepo      entryRepo.EntryRepository
	LicenseRepo    licenseRepo.LicenseRepository
	ModerationRepo moderationRepo.ModerationRepository

	UserService       userService.Service
	AuthorService     authorService.Service
	StoryService      storyService.StoryService
	EntryService      entryService.EntryService
	LicenseService    licenseService.LicenseService
	ModerationService moderationService.ModerationService

	UserHandler       *userHandler.UserHandler
	AuthorHandler     *authorHandler.AuthorHandler
	StoryHandler      *storyHandler.StoryHandler
	EntryHandler      *entryHandler.EntryHandler
	LicenseHandler    *licenseHandler.LicenseHandler
	ModerationHandler *moderationHandler.ModerationHandler
}

func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")
	c := &Container{}

	log.Println("📋 Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	log.Println("🗄️  Connecting to PostgreSQL...")
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	log.Println("🔴 Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Ping(context.Background()); err != nil {
		// Redis failure is non-critical: repositories fall through to
		// the database on cache errors.
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.StoryRepo = storyRepo.NewPostgresStoryRepository(pool, c.Cache)
	c.EntryRepo = entryRepo.NewPostgresEntryRepository(pool)
	c.LicenseRepo = licenseRepo.NewPostgresLicenseRepository(pool, c.Cache)
	c.ModerationRepo = moderationRepo.NewPostgresModerationRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.LicenseService = licenseService.NewLicenseService(c.LicenseRepo)

	// Story service reaches into the author and license domains for
	// ownership and license-activity checks.
	c.StoryService = storyService.NewStoryService(c.StoryRepo, c.AuthorRepo, c.LicenseRepo)
	c.EntryService = entryService.NewEntryService(c.EntryRepo, c.AuthorRepo)
	c.ModerationService = moderationService.NewModerationService(c.ModerationRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.StoryService)
	c.StoryHandler = storyHandler.NewStoryHandler(c.StoryService)
	c.EntryHandler = entryHandler.NewEntryHandler(c.EntryService)
	c.LicenseHandler = licenseHandler.NewLicenseHandler(c.LicenseService)
	c.ModerationHandler = moderationHandler.NewModerationHandler(c.ModerationService)
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("✅ Cleanup complete")
}
