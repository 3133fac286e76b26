package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/incident_reporting_system/internal/config"
	"github.com/shenikar/incident_reporting_system/internal/export"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service"
	"github.com/sirupsen/logrus"
)

// DefaultRadiusMeters радиус поиска рядом с точкой, если radius не указан
const DefaultRadiusMeters = 5000

type Handler struct {
	incidentService  service.IncidentService
	userService      service.UserService
	assistantService service.AssistantService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(
	incidentService service.IncidentService,
	userService service.UserService,
	assistantService service.AssistantService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService:  incidentService,
		userService:      userService,
		assistantService: assistantService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

func (h *Handler) requestLogger(c *gin.Context, method string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"method":     method,
		"request_id": c.GetString(requestIDKey),
	})
}

// @Summary Create a new incident
// @Description Create a new incident. Keys may be camelCase or snake_case.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 403 {object} map[string]string "User is blocked"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.requestLogger(c, "createIncident")

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

	model := CreateRequestToIncident(input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), model); err != nil {
		respondServiceError(c, log, err, "")
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Get a list of incidents
// @Description List incidents, newest first. Unpaged unless page or pageSize is given.
// @Tags Incidents
// @Produce json
// @Param status query string false "Status filter" Enums(pending, in-progress, resolved)
// @Param type query []string false "Incident types, repeat the parameter to match several" collectionFormat(multi)
// @Param urgency query string false "Urgency filter" Enums(low, medium, high, critical)
// @Param userId query string false "Reporter id"
// @Param unresolved query bool false "Only incidents that are not resolved"
// @Param lat query number false "Latitude of the search center"
// @Param lon query number false "Longitude of the search center"
// @Param radius query number false "Search radius in meters" default(5000)
// @Param page query int false "Page number"
// @Param pageSize query int false "Number of items per page (max 100)"
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.requestLogger(c, "listIncidents")

	filter, err := parseIncidentFilter(c)
	if err != nil {
		log.WithError(err).Warn("Invalid list filter")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID.
// @Tags Incidents
// @Produce json
// @Param id path int true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	log := h.requestLogger(c, "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err, "incident not found")
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Update an existing incident
// @Description Partially update an incident. Only supplied fields change.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path int true "Incident ID"
// @Param incident body UpdateIncidentRequest true "Incident update request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [put]
func (h *Handler) updateIncident(c *gin.Context) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	log := h.requestLogger(c, "updateIncident").WithField("id", id)

	var input UpdateIncidentRequest
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

	updated, err := h.incidentService.UpdateIncident(c.Request.Context(), id, UpdateRequestToPatch(input))
	if err != nil {
		respondServiceError(c, log, err, "incident not found")
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(updated))
}

// @Summary Delete an incident
// @Description Delete an incident by ID. Requires API key.
// @Tags Incidents
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	log := h.requestLogger(c, "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeleteIncident(c.Request.Context(), id); err != nil {
		respondServiceError(c, log, err, "incident not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get incident statistics
// @Description Incident counts by status, urgency and type.
// @Tags Incidents
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.requestLogger(c, "getStats")

	stats, err := h.incidentService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToStatsResponse(stats))
}

// @Summary Export incidents
// @Description Export the filtered incident list as an XLSX workbook. Requires API key.
// @Tags Incidents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param status query string false "Status filter"
// @Param type query []string false "Incident types, repeat the parameter to match several" collectionFormat(multi)
// @Param urgency query string false "Urgency filter"
// @Param unresolved query bool false "Only incidents that are not resolved"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/export [get]
func (h *Handler) exportIncidents(c *gin.Context) {
	log := h.requestLogger(c, "exportIncidents")

	filter, err := parseIncidentFilter(c)
	if err != nil {
		log.WithError(err).Warn("Invalid export filter")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents for export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	data, err := export.IncidentsXLSX(incidents)
	if err != nil {
		log.WithError(err).Error("Failed to build workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	filename := fmt.Sprintf("incidents-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentTypeXLSX, data)
}

// incidentID разбирает :id; при ошибке сам отвечает 400
func incidentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return 0, false
	}
	return id, true
}

func parseIncidentFilter(c *gin.Context) (models.IncidentFilter, error) {
	filter := models.IncidentFilter{
		UserID: c.Query("userId"),
	}
	for _, t := range c.QueryArray("type") {
		if t = strings.TrimSpace(t); t != "" {
			filter.Types = append(filter.Types, t)
		}
	}
	if filter.UserID == "" {
		filter.UserID = c.Query("user_id")
	}

	if v := c.Query("status"); v != "" {
		filter.Status = models.Status(v)
		if !filter.Status.Valid() {
			return filter, fmt.Errorf("invalid status %q", v)
		}
	}
	if v := c.Query("urgency"); v != "" {
		filter.Urgency = models.Urgency(v)
		if !filter.Urgency.Valid() {
			return filter, fmt.Errorf("invalid urgency %q", v)
		}
	}
	if v := c.Query("unresolved"); v != "" {
		unresolved, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("invalid unresolved %q", v)
		}
		filter.Unresolved = unresolved
	}

	near, radius, err := parseNear(c)
	if err != nil {
		return filter, err
	}
	filter.Near = near
	filter.RadiusMeters = radius

	if filter.Page, err = queryInt(c, "page"); err != nil {
		return filter, err
	}
	if filter.PageSize, err = queryInt(c, "pageSize"); err != nil {
		return filter, err
	}
	if filter.Page > 0 && filter.PageSize == 0 {
		filter.PageSize = 10
	}
	filter.Normalize()
	return filter, nil
}

func parseNear(c *gin.Context) (*models.Point, float64, error) {
	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	if latRaw == "" && lonRaw == "" {
		return nil, 0, nil
	}
	if latRaw == "" || lonRaw == "" {
		return nil, 0, errors.New("lat and lon must be given together")
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, 0, fmt.Errorf("invalid lat %q", latRaw)
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, 0, fmt.Errorf("invalid lon %q", lonRaw)
	}

	radius := float64(DefaultRadiusMeters)
	if v := c.Query("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			return nil, 0, fmt.Errorf("invalid radius %q", v)
		}
	}
	return &models.Point{Latitude: lat, Longitude: lon}, radius, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}
