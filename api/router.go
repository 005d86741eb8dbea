package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vladyslavplus/KosherClouds-sub000/api/health"
	"github.com/vladyslavplus/KosherClouds-sub000/api/middleware"
	"github.com/vladyslavplus/KosherClouds-sub000/api/order"
	"github.com/vladyslavplus/KosherClouds-sub000/config"
)

// Router wires the gin engine, middleware chain and controllers.
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	healthController *health.Controller
	orderController  *order.Controller
}

func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	orderController *order.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request ID must exist before anything
	// that logs, and recovery must wrap everything below it.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:           engine,
		config:           cfg,
		healthController: healthController,
		orderController:  orderController,
	}
}

// SetupRoutes registers all routes.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the gin engine for the HTTP server.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
