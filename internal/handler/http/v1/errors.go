package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultNotFoundMessage = "resource not found"

// respondServiceError переводит ошибку сервиса в HTTP ответ.
// Пустой notFound передают операции, которые не ищут ресурс по идентификатору.
func respondServiceError(c *gin.Context, log *logrus.Entry, err error, notFound string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		if notFound == "" {
			notFound = defaultNotFoundMessage
		}
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, models.ErrUserBlocked):
		log.WithError(err).Warn("Blocked user rejected")
		c.JSON(http.StatusForbidden, gin.H{"error": "user is blocked"})
	case errors.Is(err, models.ErrAlreadyExists):
		log.WithError(err).Warn("Resource already exists")
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, models.ErrClassifierUnavailable):
		log.WithError(err).Warn("Classifier is not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "classification service unavailable"})
	case errors.Is(err, models.ErrInvalidClassification):
		log.WithError(err).Error("Classifier returned unusable response")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to interpret classification"})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
