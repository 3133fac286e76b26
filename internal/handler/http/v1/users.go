package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_reporting_system/internal/models"
)

// @Summary Get user by ID
// @Description Get a user's role and block status.
// @Tags Users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/{userId} [get]
func (h *Handler) getUser(c *gin.Context) {
	userID := c.Param("userId")
	log := h.requestLogger(c, "getUser").WithField("user_id", userID)

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, log, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, ModelToUserResponse(user))
}

// @Summary Register a user
// @Description Register a user. Role defaults to public. Requires API key.
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user body CreateUserRequest true "User"
// @Success 201 {object} UserResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "User already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var input CreateUserRequest
	log := h.requestLogger(c, "createUser")

	if err := bindCamelJSON(c, &input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		ID:        input.ID,
		Role:      models.Role(input.Role),
		IsBlocked: input.IsBlocked,
	}
	if err := h.userService.CreateUser(c.Request.Context(), user); err != nil {
		respondServiceError(c, log, err, "User not found")
		return
	}
	c.JSON(http.StatusCreated, ModelToUserResponse(user))
}

// @Summary Update a user
// @Description Change a user's role or block status. Requires API key.
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "User ID"
// @Param user body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/{userId} [put]
func (h *Handler) updateUser(c *gin.Context) {
	userID := c.Param("userId")
	log := h.requestLogger(c, "updateUser").WithField("user_id", userID)

	var input UpdateUserRequest
	if err := bindCamelJSON(c, &input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, UpdateUserRequestToPatch(input))
	if err != nil {
		respondServiceError(c, log, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, ModelToUserResponse(user))
}
