package service

//go:generate mockgen -source=user.go -destination=mocks/mock_user.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/sirupsen/logrus"
)

// UserRepository определяет контракт для хранения пользователей
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// UserService определяет контракт для управления пользователями
type UserService interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
}

type userService struct {
	repo   UserRepository
	logger *logrus.Logger
}

func NewUserService(repo UserRepository, logger *logrus.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

// GetUser возвращает пользователя по идентификатору
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "user",
			"method":  "GetUser",
			"user_id": id,
		}).WithError(err).Warn("Failed to get user in repository")
		return nil, fmt.Errorf("service: could not get user: %w", err)
	}
	return user, nil
}

// CreateUser регистрирует пользователя; роль по умолчанию public
func (s *userService) CreateUser(ctx context.Context, user *models.User) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "CreateUser",
		"user_id": user.ID,
	})

	if user.Role == "" {
		user.Role = models.RolePublic
	}
	if err := s.repo.Create(ctx, user); err != nil {
		log.WithError(err).Error("Failed to create user in repository")
		return fmt.Errorf("service: could not create user: %w", err)
	}

	log.WithField("role", user.Role).Info("User created successfully")
	return nil
}

// UpdateUser меняет роль и/или признак блокировки
func (s *userService) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "UpdateUser",
		"user_id": id,
	})

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent user")
		return nil, fmt.Errorf("service: user %s not found for update: %w", id, err)
	}

	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.IsBlocked != nil {
		user.IsBlocked = *patch.IsBlocked
	}

	if err := s.repo.Update(ctx, user); err != nil {
		log.WithError(err).Error("Failed to update user in repository")
		return nil, fmt.Errorf("service: could not update user: %w", err)
	}

	log.WithFields(logrus.Fields{"role": user.Role, "is_blocked": user.IsBlocked}).Info("User updated successfully")
	return user, nil
}
