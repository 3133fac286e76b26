package v1

import (
	"time"
)

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	UserID      string  `json:"userId" validate:"max=128"`
	Type        string  `json:"type" validate:"required,min=2,max=100"`
	Title       string  `json:"title" validate:"required,min=2,max=255"`
	Description string  `json:"description,omitempty" validate:"max=5000"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	Urgency     string  `json:"urgency" validate:"required,oneof=low medium high critical"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress resolved"`
}

// UpdateIncidentRequest DTO для частичного обновления инцидента
// @Description DTO для частичного обновления инцидента; передаются только изменяемые поля
type UpdateIncidentRequest struct {
	Type        *string  `json:"type,omitempty" validate:"omitempty,min=2,max=100"`
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Urgency     *string  `json:"urgency,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress resolved"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Urgency     string    `json:"urgency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"byStatus"`
	ByUrgency map[string]int `json:"byUrgency"`
	ByType    map[string]int `json:"byType"`
}

// CreateUserRequest DTO для регистрации пользователя
// @Description DTO для регистрации пользователя
type CreateUserRequest struct {
	ID        string `json:"id" validate:"required,min=1,max=128"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=public law_enforcement"`
	IsBlocked bool   `json:"isBlocked"`
}

// UpdateUserRequest DTO для изменения роли или блокировки
// @Description DTO для изменения роли или блокировки
type UpdateUserRequest struct {
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=public law_enforcement"`
	IsBlocked *bool   `json:"isBlocked,omitempty"`
}

// UserResponse DTO пользователя
// @Description DTO пользователя
type UserResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	IsBlocked bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClassifyReportRequest DTO текстового сообщения для классификации
// @Description DTO текстового сообщения для классификации
type ClassifyReportRequest struct {
	Text      string  `json:"text" validate:"required,min=3,max=2000"`
	UserID    string  `json:"userId" validate:"max=128"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Report    bool    `json:"report"`
}

// ClassificationResponse DTO результата классификации
// @Description DTO результата классификации
type ClassificationResponse struct {
	IncidentType string `json:"incidentType"`
	Urgency      string `json:"urgency"`
	Reason       string `json:"reason"`
	Sound        string `json:"sound,omitempty"`
}

// ClassifyReportResponse DTO ответа на классификацию сообщения
// @Description DTO ответа на классификацию сообщения
type ClassifyReportResponse struct {
	Classification ClassificationResponse `json:"classification"`
	Incident       *IncidentResponse      `json:"incident,omitempty"`
}

// AudioClassificationResponse DTO ответа на классификацию аудио
// @Description DTO ответа на классификацию аудио
type AudioClassificationResponse struct {
	Classification string                 `json:"classification"`
	Details        ClassificationResponse `json:"details"`
	Status         string                 `json:"status"`
}

// SafetyTipsResponse DTO со списком советов
// @Description DTO со списком советов
type SafetyTipsResponse struct {
	Tips []string `json:"tips"`
}

// MessageResponse простой ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
