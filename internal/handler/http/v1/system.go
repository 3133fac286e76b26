package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Greeting
// @Tags System
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "Hello, world!"})
}

// @Summary Health check
// @Description Check if the service is running.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "status: ok"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
