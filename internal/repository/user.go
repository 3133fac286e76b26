package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) service.UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет пользователя; повторный id дает ErrAlreadyExists
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, role, is_blocked)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query, user.ID, string(user.Role), user.IsBlocked).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("user %s: %w", user.ID, models.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID возвращает пользователя по идентификатору
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, role, is_blocked, created_at, updated_at
		FROM users
		WHERE id = $1;
	`
	var (
		user models.User
		role string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&role,
		&user.IsBlocked,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	user.Role = models.Role(role)
	return &user, nil
}

// Update сохраняет роль и признак блокировки
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			role = $1,
			is_blocked = $2,
			updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query, string(user.Role), user.IsBlocked, user.ID).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("user with id %s not found for update: %w", user.ID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
