package service

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/incident_reporting_system/internal/config"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id int64) (*models.Incident, error)
	Update(ctx context.Context, incident *models.Incident) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	Stats(ctx context.Context) (*models.IncidentStats, error)
	GetIncidentFromCache(ctx context.Context, id int64) (*models.Incident, error)
	AddIncidentCache(ctx context.Context, incident *models.Incident) error
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id int64) error
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident) error
	GetIncident(ctx context.Context, id int64) (*models.Incident, error)
	UpdateIncident(ctx context.Context, id int64, patch models.IncidentPatch) (*models.Incident, error)
	DeleteIncident(ctx context.Context, id int64) error
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	GetStats(ctx context.Context) (*models.IncidentStats, error)
}

type incidentService struct {
	repo      IncidentRepository
	users     UserRepository
	logger    *logrus.Logger
	cfg       *config.Config
	publisher webhook.WebhookPublisher
}

func NewIncidentService(repo IncidentRepository, users UserRepository, logger *logrus.Logger, cfg *config.Config, publisher webhook.WebhookPublisher) IncidentService {
	return &incidentService{
		repo:      repo,
		users:     users,
		logger:    logger,
		cfg:       cfg,
		publisher: publisher,
	}
}

// CreateIncident создает инцидент. Заблокированные пользователи не могут сообщать об инцидентах.
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"type":    incident.Type,
		"user_id": incident.UserID,
	})
	log.Info("Attempting to create a new incident")

	if err := s.ensureReporterAllowed(ctx, incident.UserID); err != nil {
		log.WithError(err).Warn("Reporter is not allowed to create incidents")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	if incident.Status == "" {
		incident.Status = models.StatusPending
	}
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	s.publish(ctx, log, webhook.EventIncidentCreated, incident.ID, incident)
	return nil
}

func (s *incidentService) ensureReporterAllowed(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		// Анонимные и незарегистрированные отправители допускаются
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	if user.IsBlocked {
		return models.ErrUserBlocked
	}
	return nil
}

// GetIncident получает инцидент по ID, сначала из кеша
func (s *incidentService) GetIncident(ctx context.Context, id int64) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Debug("Fetching incident by ID")

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident from cache, falling back to database")
	}
	if cached != nil {
		log.Debug("Incident served from cache")
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	// строка могла устареть, пока шло чтение; AddIncidentCache не перетирает копию из UpdateIncident
	if err := s.repo.AddIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// UpdateIncident частично обновляет инцидент. Переходы статусов не ограничиваются.
func (s *incidentService) UpdateIncident(ctx context.Context, id int64, patch models.IncidentPatch) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncident",
		"incident_id": id,
	})
	log.Info("Attempting to update incident")

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent incident")
		return nil, fmt.Errorf("service: incident %d not found for update: %w", id, err)
	}

	if patch.IsEmpty() {
		return existing, nil
	}
	patch.Apply(existing)

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update incident in repository")
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}
	if err := s.repo.SetIncidentCache(ctx, existing); err != nil {
		log.WithError(err).Warn("Failed to refresh incident cache, invalidating")
		if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
			log.WithError(err).Warn("Failed to invalidate incident cache")
		}
	}

	log.WithField("status", existing.Status).Info("Incident updated successfully")
	s.publish(ctx, log, webhook.EventIncidentUpdated, id, existing)
	return existing, nil
}

// DeleteIncident удаляет инцидент
func (s *incidentService) DeleteIncident(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
	})
	log.Info("Attempting to delete incident")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to delete incident in repository")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}
	// чтение, начатое до удаления, может вернуть копию в кеш; она живет не дольше INCIDENT_CACHE_TTL
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	log.Info("Incident deleted successfully")
	s.publish(ctx, log, webhook.EventIncidentDeleted, id, nil)
	return nil
}

// ListIncidents возвращает инциденты по фильтру, новые первыми
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	filter.Normalize()

	log := s.logger.WithFields(logrus.Fields{
		"service":   "incident",
		"method":    "ListIncidents",
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
	log.Debug("Listing incidents")

	incidents, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Debug("Incidents listed successfully")
	return incidents, nil
}

// GetStats возвращает агрегированную статистику по инцидентам
func (s *incidentService) GetStats(ctx context.Context) (*models.IncidentStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("method", "GetStats").Error("Failed to get incident stats")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}
	return stats, nil
}

// publish отправляет событие в очередь вебхуков; ошибка не прерывает операцию
func (s *incidentService) publish(ctx context.Context, log *logrus.Entry, eventType webhook.EventType, id int64, incident *models.Incident) {
	if s.publisher == nil {
		return
	}
	event := webhook.WebhookEvent{
		Event:      eventType,
		IncidentID: id,
		Incident:   incident,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Error("Failed to publish webhook event")
	}
}
