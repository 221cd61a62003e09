package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"diary-backend/internal/shared/middleware"
	"diary-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupStoryRoutes(v1, c)
		setupEntryRoutes(v1, c)
		setupLicenseRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.GET("/:id", c.AuthorHandler.GetByID)

		// The explainer target for the pseudonym-required redirect.
		authors.GET("/new", middleware.AuthMiddleware(c.JWTManager), c.AuthorHandler.NewForm)

		authors.POST("", middleware.AuthMiddleware(c.JWTManager), c.AuthorHandler.Create)
		authors.PUT("/:id", middleware.AuthMiddleware(c.JWTManager), c.AuthorHandler.Update)
		authors.GET("/mine", middleware.AuthMiddleware(c.JWTManager), c.AuthorHandler.Mine)
	}
}

func setupStoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	stories := v1.Group("/stories")
	{
		// Read paths are public; ownership only widens what is visible.
		stories.GET("", c.StoryHandler.Recent)
		stories.GET("/:id", middleware.OptionalAuth(c.JWTManager), c.StoryHandler.Read)
		stories.GET("/:id/inspired", c.StoryHandler.Inspired)

		// Write paths need a signed-in user with at least one pseudonym.
		write := stories.Group("")
		write.Use(middleware.AuthMiddleware(c.JWTManager), middleware.RequirePseudonym(c.AuthorService))
		{
			write.GET("/new", c.StoryHandler.NewForm)
			write.GET("/:id/edit", c.StoryHandler.EditForm)
			write.POST("", c.StoryHandler.Create)
			write.PUT("/:id", c.StoryHandler.Update)
			write.POST("/:id/publish", c.StoryHandler.Publish)
		}

		stories.POST("/:id/flags", middleware.OptionalAuth(c.JWTManager), c.ModerationHandler.FlagStory)
		stories.POST("/:id/votes", middleware.OptionalAuth(c.JWTManager), c.ModerationHandler.VoteStory)
		stories.GET("/:id/votes", c.ModerationHandler.StoryVotes)
	}
}

func setupEntryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	entries := v1.Group("/entries")
	{
		entries.GET("", c.EntryHandler.Recent)
		entries.GET("/:id", middleware.OptionalAuth(c.JWTManager), c.EntryHandler.Read)

		write := entries.Group("")
		write.Use(middleware.AuthMiddleware(c.JWTManager), middleware.RequirePseudonym(c.AuthorService))
		{
			write.POST("", c.EntryHandler.Create)
			write.PUT("/:id", c.EntryHandler.Update)
		}

		entries.POST("/:id/flags", middleware.OptionalAuth(c.JWTManager), c.ModerationHandler.FlagEntry)
		entries.POST("/:id/votes", middleware.OptionalAuth(c.JWTManager), c.ModerationHandler.VoteEntry)
		entries.GET("/:id/votes", c.ModerationHandler.EntryVotes)
	}
}

func setupLicenseRoutes(v1 *gin.RouterGroup, c *container.Container) {
	licenses := v1.Group("/licenses")
	{
		licenses.GET("", c.LicenseHandler.ListActive)
		licenses.GET("/:id", c.LicenseHandler.GetByID)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		health := gin.H{"status": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "degraded"
			health["database"] = err.Error()
		} else {
			health["database"] = "up"
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			health["cache"] = "down"
		} else {
			health["cache"] = "up"
		}

		ctx.JSON(status, health)
	}
}
