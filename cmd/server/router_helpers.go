package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/config"
	"mercato.backend/internal/interfaces/http/middleware"
	"mercato.backend/pkg/metrics"
	"mercato.backend/pkg/redis"
)

const (
	serviceName    = "mercato-backend"
	serviceVersion = "0.1.0"

	healthProbeTimeout = time.Second
)

var pingRedis = redis.Ping

func buildRouter(d routeDeps, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware("/health", "/metrics"))
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, d)
	return r
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, "+
			middleware.SessionHeader+", "+middleware.IdempotencyHeader+", "+middleware.RequestIDHeader)
		c.Header("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

// registerHealthRoute serves liveness. A Redis outage is reported but stays 200,
// since order placement degrades to non-idempotent processing rather than failing.
func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
		defer cancel()

		cache := "ok"
		if err := pingRedis(ctx); err != nil {
			cache = "unavailable"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
			"redis":   cache,
		})
	})
}
