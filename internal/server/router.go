// Package server wires the HTTP surface: routing, auth, metrics, and the
// JSON handlers for sessions and lesson plans.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/cache"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/store"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/teaching"
)

// Options collects the dependencies of the router.
type Options struct {
	Teaching  *teaching.Service
	Plans     store.LessonPlanRepo
	PlanCache *cache.PlanCache
	JWTSecret string
}

// NewRouter builds the gin engine with all routes registered. Everything
// under /api requires a valid access token; /health and /metrics do not.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(metricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	teachingHandler := NewTeachingHandler(opts.Teaching)
	planHandler := NewLessonPlanHandler(opts.Plans, opts.PlanCache)

	api := r.Group("/api")
	api.Use(authMiddleware(opts.JWTSecret))
	{
		api.POST("/teaching/sessions", teachingHandler.Start)
		api.GET("/teaching/sessions", teachingHandler.ListActive)
		api.GET("/teaching/sessions/:id", teachingHandler.Get)
		api.POST("/teaching/sessions/:id/answers", teachingHandler.Answer)
		api.DELETE("/teaching/sessions/:id", teachingHandler.Delete)

		api.GET("/lesson-plans", planHandler.List)
		api.GET("/lesson-plans/:id", planHandler.Get)
		api.DELETE("/lesson-plans/:id", planHandler.Delete)
	}

	return r
}
