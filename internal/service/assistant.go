package service

//go:generate mockgen -source=assistant.go -destination=mocks/mock_assistant.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/shenikar/incident_reporting_system/internal/config"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Classifier определяет контракт внешней модели классификации (Gemini)
type Classifier interface {
	ClassifyText(ctx context.Context, text string) (*models.Classification, error)
	ClassifyAudio(ctx context.Context, audio []byte, mimeType string) (*models.Classification, error)
	SafetyTips(ctx context.Context, count int) ([]string, error)
}

// TipsCache хранит последние сгенерированные советы по безопасности
type TipsCache interface {
	GetSafetyTips(ctx context.Context) ([]string, error)
	SetSafetyTips(ctx context.Context, tips []string) error
}

// AssistantService классификация сообщений и советы по безопасности
type AssistantService interface {
	ClassifyReport(ctx context.Context, report models.TextReport) (*models.Classification, *models.Incident, error)
	ClassifyAudio(ctx context.Context, audio []byte, mimeType string) (*models.Classification, error)
	GetSafetyTips(ctx context.Context, refresh bool) ([]string, error)
	RefreshSafetyTips(ctx context.Context) error
}

type assistantService struct {
	classifier Classifier
	tips       TipsCache
	incidents  IncidentService
	logger     *logrus.Logger
	cfg        *config.Config
}

// NewAssistantService создает сервис. classifier может быть nil, тогда операции возвращают ErrClassifierUnavailable.
func NewAssistantService(classifier Classifier, tips TipsCache, incidents IncidentService, logger *logrus.Logger, cfg *config.Config) AssistantService {
	return &assistantService{
		classifier: classifier,
		tips:       tips,
		incidents:  incidents,
		logger:     logger,
		cfg:        cfg,
	}
}

// ClassifyReport классифицирует текст и при report=true создает инцидент
func (s *assistantService) ClassifyReport(ctx context.Context, report models.TextReport) (*models.Classification, *models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "assistant",
		"method":  "ClassifyReport",
		"user_id": report.UserID,
	})
	if s.classifier == nil {
		return nil, nil, models.ErrClassifierUnavailable
	}

	classification, err := s.classifier.ClassifyText(ctx, report.Text)
	if err != nil {
		log.WithError(err).Error("Failed to classify report text")
		return nil, nil, fmt.Errorf("service: could not classify report: %w", err)
	}
	normalizeClassification(classification)
	log.WithFields(logrus.Fields{
		"incident_type": classification.IncidentType,
		"urgency":       classification.Urgency,
	}).Info("Report classified")

	if !report.Report {
		return classification, nil, nil
	}

	incident := IncidentFromClassification(classification, report)
	if err := s.incidents.CreateIncident(ctx, incident); err != nil {
		return classification, nil, err
	}
	return classification, incident, nil
}

// ClassifyAudio определяет тип звукового события
func (s *assistantService) ClassifyAudio(ctx context.Context, audio []byte, mimeType string) (*models.Classification, error) {
	if s.classifier == nil {
		return nil, models.ErrClassifierUnavailable
	}
	classification, err := s.classifier.ClassifyAudio(ctx, audio, mimeType)
	if err != nil {
		s.logger.WithError(err).WithField("method", "ClassifyAudio").Error("Failed to classify audio")
		return nil, fmt.Errorf("service: could not classify audio: %w", err)
	}
	normalizeClassification(classification)
	return classification, nil
}

// GetSafetyTips возвращает советы из кеша или запрашивает новые
func (s *assistantService) GetSafetyTips(ctx context.Context, refresh bool) ([]string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "assistant",
		"method":  "GetSafetyTips",
		"refresh": refresh,
	})

	// без ключа Gemini советы не отдаются, даже если в кеше что-то осталось
	if s.classifier == nil {
		return nil, models.ErrClassifierUnavailable
	}
	if !refresh {
		tips, err := s.tips.GetSafetyTips(ctx)
		if err != nil {
			log.WithError(err).Warn("Failed to read safety tips from cache")
		}
		if len(tips) > 0 {
			return tips, nil
		}
	}

	tips, err := s.classifier.SafetyTips(ctx, s.cfg.SafetyTipsCount)
	if err != nil {
		log.WithError(err).Error("Failed to generate safety tips")
		return nil, fmt.Errorf("service: could not get safety tips: %w", err)
	}
	if err := s.tips.SetSafetyTips(ctx, tips); err != nil {
		log.WithError(err).Warn("Failed to cache safety tips")
	}
	return tips, nil
}

// RefreshSafetyTips принудительно обновляет кеш советов
func (s *assistantService) RefreshSafetyTips(ctx context.Context) error {
	tips, err := s.GetSafetyTips(ctx, true)
	if err != nil {
		return err
	}
	s.logger.WithField("count", len(tips)).Info("Safety tips refreshed")
	return nil
}

// IncidentFromClassification собирает инцидент по результату классификации
func IncidentFromClassification(c *models.Classification, report models.TextReport) *models.Incident {
	return &models.Incident{
		UserID:      report.UserID,
		Type:        c.IncidentType,
		Title:       "Detected " + c.IncidentType,
		Description: "Reason: " + c.Reason,
		Latitude:    report.Latitude,
		Longitude:   report.Longitude,
		Urgency:     c.Urgency,
		Status:      models.StatusPending,
	}
}

// normalizeClassification приводит тип к известному списку, срочность к перечислению
func normalizeClassification(c *models.Classification) {
	c.IncidentType = canonicalType(c.IncidentType)
	urgency := models.Urgency(strings.ToLower(strings.TrimSpace(string(c.Urgency))))
	if !urgency.Valid() {
		urgency = models.UrgencyMedium
	}
	c.Urgency = urgency
}

func canonicalType(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, t := range models.IncidentTypes {
		if strings.EqualFold(t, raw) {
			return t
		}
	}
	return models.TypeOther
}
