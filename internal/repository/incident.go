package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service"
)

const incidentColumns = `
			id,
			user_id,
			type,
			title,
			COALESCE(description, '') AS description,
			ST_Y(location::geometry) AS latitude,
			ST_X(location::geometry) AS longitude,
			urgency,
			status,
			created_at,
			updated_at`

type IncidentRepository struct {
	db          DB
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db DB, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (user_id, type, title, description, location, urgency, status)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography, $7, $8)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.UserID,
		incident.Type,
		incident.Title,
		incident.Description,
		incident.Longitude,
		incident.Latitude,
		string(incident.Urgency),
		string(incident.Status),
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по идентификатору
func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	query := `SELECT` + incidentColumns + `
		FROM incidents
		WHERE id = $1;
	`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// Update сохраняет все изменяемые поля инцидента
func (r *IncidentRepository) Update(ctx context.Context, incident *models.Incident) error {
	query := `
		UPDATE incidents SET
			type = $1,
			title = $2,
			description = $3,
			location = ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography,
			urgency = $6,
			status = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.Type,
		incident.Title,
		incident.Description,
		incident.Longitude,
		incident.Latitude,
		string(incident.Urgency),
		string(incident.Status),
		incident.ID,
	).Scan(&incident.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("incident with id %d not found for update: %w", incident.ID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update incident: %w", err)
	}
	return nil
}

// Delete удаляет инцидент
func (r *IncidentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM incidents WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete incident: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %d not found for delete: %w", id, models.ErrNotFound)
	}
	return nil
}

// List возвращает инциденты по фильтру
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	query, args := buildListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// buildListQuery собирает SELECT с условиями фильтра и позиционными аргументами
func buildListQuery(filter models.IncidentFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(string(filter.Status)))
	}
	if filter.Unresolved {
		conditions = append(conditions, "status <> 'resolved'")
	}
	if len(filter.Types) > 0 {
		conditions = append(conditions, "type = ANY("+arg(filter.Types)+")")
	}
	if filter.Urgency != "" {
		conditions = append(conditions, "urgency = "+arg(string(filter.Urgency)))
	}
	if filter.UserID != "" {
		conditions = append(conditions, "user_id = "+arg(filter.UserID))
	}
	if filter.Near != nil {
		lon := arg(filter.Near.Longitude)
		lat := arg(filter.Near.Latitude)
		radius := arg(filter.RadiusMeters)
		conditions = append(conditions, fmt.Sprintf(
			"ST_DWithin(location, ST_SetSRID(ST_MakePoint(%s, %s), 4326)::geography, %s)", lon, lat, radius))
	}

	var b strings.Builder
	b.WriteString("SELECT")
	b.WriteString(incidentColumns)
	b.WriteString("\n\t\tFROM incidents")
	if len(conditions) > 0 {
		b.WriteString("\n\t\tWHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString("\n\t\tORDER BY created_at DESC, id DESC")
	if filter.PageSize > 0 {
		limit := arg(filter.PageSize)
		offset := arg(filter.Offset())
		b.WriteString(fmt.Sprintf("\n\t\tLIMIT %s OFFSET %s", limit, offset))
	}
	b.WriteString(";")
	return b.String(), args
}

// Stats считает инциденты по статусу, срочности и типу
func (r *IncidentRepository) Stats(ctx context.Context) (*models.IncidentStats, error) {
	query := `
		SELECT type, status, urgency, COUNT(*)
		FROM incidents
		GROUP BY type, status, urgency;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get incident stats: %w", err)
	}
	defer rows.Close()

	stats := &models.IncidentStats{
		ByStatus:  make(map[string]int),
		ByUrgency: make(map[string]int),
		ByType:    make(map[string]int),
	}
	for rows.Next() {
		var (
			incidentType, status, urgency string
			count                         int
		)
		if err := rows.Scan(&incidentType, &status, &urgency, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats.Total += count
		stats.ByType[incidentType] += count
		stats.ByStatus[status] += count
		stats.ByUrgency[urgency] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error stats iteration: %w", err)
	}
	return stats, nil
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	var (
		incident        models.Incident
		urgency, status string
	)
	err := row.Scan(
		&incident.ID,
		&incident.UserID,
		&incident.Type,
		&incident.Title,
		&incident.Description,
		&incident.Latitude,
		&incident.Longitude,
		&urgency,
		&status,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	incident.Urgency = models.Urgency(urgency)
	incident.Status = models.Status(status)
	return &incident, nil
}

func incidentCacheKey(id int64) string {
	return fmt.Sprintf("incident:%d", id)
}

// GetIncidentFromCache пытается получить инцидент из Redis; промах возвращает nil, nil
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id int64) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, incidentCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, incidentCacheKey(incident.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// AddIncidentCache сохраняет инцидент, только если ключа еще нет (SETNX).
// Копия, записанная после обновления, не перетирается результатом более раннего чтения из БД.
func (r *IncidentRepository) AddIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.SetNX(ctx, incidentCacheKey(incident.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to add incident to cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id int64) error {
	if err := r.redisClient.Del(ctx, incidentCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
