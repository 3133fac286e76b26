package v1

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := APIKeyAuthMiddleware(h.cfg, h.logger)

	api.GET("/", h.root)

	// Маршруты для управления инцидентами
	incidents := api.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/stats", h.getStats)
		incidents.GET("/export", auth, h.exportIncidents)
		incidents.POST("/classify", h.classifyReport)
		incidents.GET("/:id", h.getIncident)
		incidents.PUT("/:id", h.updateIncident)
		incidents.DELETE("/:id", auth, h.deleteIncident)
	}

	users := api.Group("/users")
	{
		users.POST("", auth, h.createUser)
		users.GET("/:userId", h.getUser)
		users.PUT("/:userId", auth, h.updateUser)
	}

	// Gemini
	api.POST("/classify-audio", h.classifyAudio)
	api.GET("/safety-tips", h.getSafetyTips)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}

// NewCORSMiddleware настраивает CORS; "*" или пустой список разрешают все источники
func NewCORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-API-Key", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
