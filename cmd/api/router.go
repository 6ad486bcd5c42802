package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mangable-backend/internal/shared/middleware"
	"mangable-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Service banner, useful for smoke checks.
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
			"docs":    "/api/v1",
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupAPIKeyRoutes(v1, c)
		setupComicRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/me", middleware.Authenticate(c.AuthResolver), c.UserHandler.Me)
	}
}

// ========================================
// API KEY ROUTES
// ========================================
func setupAPIKeyRoutes(v1 *gin.RouterGroup, c *container.Container) {
	keys := v1.Group("/api-keys")
	keys.Use(middleware.Authenticate(c.AuthResolver))
	{
		keys.POST("", c.KeyHandler.Create)
		keys.GET("", c.KeyHandler.List)
		keys.DELETE("/:id", c.KeyHandler.Revoke)
	}
}

// ========================================
// COMIC ROUTES
// ========================================
func setupComicRoutes(v1 *gin.RouterGroup, c *container.Container) {
	comics := v1.Group("/comics")
	comics.Use(middleware.Authenticate(c.AuthResolver))
	{
		comics.POST("", c.ComicHandler.Create)
		comics.GET("", c.ComicHandler.List)
		comics.GET("/:id", c.ComicHandler.Get)
		comics.PATCH("/:id", c.ComicHandler.Update)
		comics.DELETE("/:id", c.ComicHandler.Delete)

		comics.GET("/:id/comicinfo.xml", c.ComicHandler.ExportComicInfo)
		comics.GET("/:id/cover", c.ComicHandler.Cover)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis. Redis is a soft dependency, so a failure degrades
		// the report but not the status code.
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
