package models

import (
	"time"
)

// Urgency уровень срочности инцидента
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Urgencies перечисляет допустимые значения срочности
var Urgencies = []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}

// Valid сообщает, входит ли значение в перечисление
func (u Urgency) Valid() bool {
	for _, v := range Urgencies {
		if u == v {
			return true
		}
	}
	return false
}

// Status статус обработки инцидента
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

// Statuses перечисляет допустимые статусы
var Statuses = []Status{StatusPending, StatusInProgress, StatusResolved}

// Valid сообщает, входит ли значение в перечисление
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Типы инцидентов, которые понимают клиенты
const (
	TypePothole          = "Pothole"
	TypeCrime            = "Crime"
	TypeFlooding         = "Flooding"
	TypeFire             = "Fire"
	TypeAccident         = "Accident"
	TypeMedicalEmergency = "Medical Emergency"
	TypeEarthquake       = "Earthquake"
	TypeOther            = "Other"
)

// IncidentTypes известные типы инцидентов
var IncidentTypes = []string{
	TypeCrime, TypeFire, TypePothole, TypeAccident,
	TypeFlooding, TypeMedicalEmergency, TypeEarthquake, TypeOther,
}

type Incident struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Urgency     Urgency   `json:"urgency"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IncidentPatch частичное обновление инцидента; nil означает "не менять"
type IncidentPatch struct {
	Type        *string
	Title       *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	Urgency     *Urgency
	Status      *Status
}

// Apply переносит заданные поля патча в инцидент
func (p IncidentPatch) Apply(incident *Incident) {
	if p.Type != nil {
		incident.Type = *p.Type
	}
	if p.Title != nil {
		incident.Title = *p.Title
	}
	if p.Description != nil {
		incident.Description = *p.Description
	}
	if p.Latitude != nil {
		incident.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		incident.Longitude = *p.Longitude
	}
	if p.Urgency != nil {
		incident.Urgency = *p.Urgency
	}
	if p.Status != nil {
		incident.Status = *p.Status
	}
}

// IsEmpty true, если патч ничего не меняет
func (p IncidentPatch) IsEmpty() bool {
	return p.Type == nil && p.Title == nil && p.Description == nil &&
		p.Latitude == nil && p.Longitude == nil && p.Urgency == nil && p.Status == nil
}

// IncidentStats агрегированные счетчики инцидентов
type IncidentStats struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"byStatus"`
	ByUrgency map[string]int `json:"byUrgency"`
	ByType    map[string]int `json:"byType"`
}
