package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stylescout-go/internal/repository"
	"stylescout-go/internal/service"
)

// Handlers holds the HTTP layer's dependencies.
type Handlers struct {
	repo      *repository.Repository
	scans     *service.ScanService
	items     *service.ItemService
	jwtSecret string
	now       func() time.Time
}

// New creates the HTTP handlers.
func New(repo *repository.Repository, scans *service.ScanService, items *service.ItemService, jwtSecret string) *Handlers {
	return &Handlers{
		repo:      repo,
		scans:     scans,
		items:     items,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

// SetupRoutes registers all routes. Everything under /api/v1 requires a
// bearer token; health and metrics do not.
func (h *Handlers) SetupRoutes(router *gin.Engine) {
	router.GET("/healthz", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(AuthRequired(h.jwtSecret))
	{
		api.POST("/mail/credential", h.PutCredential)
		api.POST("/mail/scan", h.ScanMail)
		api.GET("/messages", h.ListMessages)

		api.POST("/items", h.CreateItem)
		api.GET("/items", h.ListItems)

		api.GET("/brands/suppressed", h.ListSuppressedBrands)
		api.POST("/brands/suppressed", h.SuppressBrand)
		api.DELETE("/brands/suppressed/:brand", h.UnsuppressBrand)
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
