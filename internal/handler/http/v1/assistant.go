package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_reporting_system/internal/models"
)

// AudioFormField имя поля multipart формы с записью
const AudioFormField = "audio"

// @Summary Classify a text report
// @Description Classify free text with Gemini. With report=true an incident is created from the result.
// @Tags Assistant
// @Accept json
// @Produce json
// @Param report body ClassifyReportRequest true "Report text"
// @Success 200 {object} ClassifyReportResponse "Classified, nothing stored"
// @Success 201 {object} ClassifyReportResponse "Classified and incident created"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 403 {object} map[string]string "User is blocked"
// @Failure 502 {object} map[string]string "Unusable classifier response"
// @Failure 503 {object} map[string]string "Classifier not configured"
// @Router /incidents/classify [post]
func (h *Handler) classifyReport(c *gin.Context) {
	var input ClassifyReportRequest
	log := h.requestLogger(c, "classifyReport")

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

	classification, incident, err := h.assistantService.ClassifyReport(c.Request.Context(), models.TextReport{
		Text:      input.Text,
		UserID:    input.UserID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Report:    input.Report,
	})
	if err != nil {
		respondServiceError(c, log, err, "")
		return
	}

	resp := ClassifyReportResponse{Classification: ModelToClassificationResponse(classification)}
	status := http.StatusOK
	if incident != nil {
		resp.Incident = ModelToIncidentResponse(incident)
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// @Summary Classify an audio recording
// @Description Classify the sound in an uploaded recording with Gemini.
// @Tags Assistant
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio recording"
// @Success 200 {object} AudioClassificationResponse
// @Failure 400 {object} map[string]string "No audio file provided"
// @Failure 413 {object} map[string]string "Audio file too large"
// @Failure 415 {object} map[string]string "Unsupported audio format"
// @Failure 503 {object} map[string]string "Classifier not configured"
// @Router /classify-audio [post]
func (h *Handler) classifyAudio(c *gin.Context) {
	log := h.requestLogger(c, "classifyAudio")

	if h.cfg.MaxAudioBytes > 0 {
		// запас на заголовки multipart
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxAudioBytes+1<<20)
	}
	fileHeader, err := c.FormFile(AudioFormField)
	if err != nil {
		if isBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "audio file too large"})
			return
		}
		log.WithError(err).Warn("Audio file missing")
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
		return
	}
	if h.cfg.MaxAudioBytes > 0 && fileHeader.Size > h.cfg.MaxAudioBytes {
		log.WithField("size", fileHeader.Size).Warn("Audio file too large")
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "audio file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.WithError(err).Error("Failed to open uploaded audio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.WithError(err).Error("Failed to read uploaded audio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
		return
	}

	mimeType, ok := audioMIMEType(data, fileHeader.Header.Get("Content-Type"))
	if !ok {
		log.WithField("mime", mimeType).Warn("Unsupported audio format")
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported audio format"})
		return
	}

	classification, err := h.assistantService.ClassifyAudio(c.Request.Context(), data, mimeType)
	if err != nil {
		respondServiceError(c, log, err, "")
		return
	}
	c.JSON(http.StatusOK, AudioClassificationResponse{
		Classification: classification.Sound,
		Details:        ModelToClassificationResponse(classification),
		Status:         "success",
	})
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// audioMIMEType определяет тип записи по содержимому, затем по заголовку части
func audioMIMEType(data []byte, declared string) (string, bool) {
	detected := mimetype.Detect(data)
	switch {
	case strings.HasPrefix(detected.String(), "audio/"):
		return detected.String(), true
	case detected.Is("video/webm"):
		// браузерный MediaRecorder пишет audio/webm
		return "audio/webm", true
	case strings.HasPrefix(declared, "audio/"):
		return declared, true
	}
	return detected.String(), false
}

// @Summary Get safety tips
// @Description General safety tips generated by Gemini and cached.
// @Tags Assistant
// @Produce json
// @Param refresh query bool false "Regenerate tips instead of using the cache"
// @Success 200 {object} SafetyTipsResponse
// @Failure 400 {object} map[string]string "Invalid refresh flag"
// @Failure 503 {object} map[string]string "Classifier not configured"
// @Router /safety-tips [get]
func (h *Handler) getSafetyTips(c *gin.Context) {
	log := h.requestLogger(c, "getSafetyTips")

	refresh := false
	if v := c.Query("refresh"); v != "" {
		var err error
		if refresh, err = strconv.ParseBool(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid refresh flag"})
			return
		}
	}

	tips, err := h.assistantService.GetSafetyTips(c.Request.Context(), refresh)
	if err != nil {
		respondServiceError(c, log, err, "")
		return
	}
	c.JSON(http.StatusOK, SafetyTipsResponse{Tips: tips})
}
