package v1

import "github.com/shenikar/incident_reporting_system/internal/models"

// CreateRequestToIncident преобразует DTO создания в доменную модель
func CreateRequestToIncident(dto CreateIncidentRequest) *models.Incident {
	return &models.Incident{
		UserID:      dto.UserID,
		Type:        dto.Type,
		Title:       dto.Title,
		Description: dto.Description,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		Urgency:     models.Urgency(dto.Urgency),
		Status:      models.Status(dto.Status),
	}
}

// UpdateRequestToPatch преобразует DTO обновления в патч
func UpdateRequestToPatch(dto UpdateIncidentRequest) models.IncidentPatch {
	patch := models.IncidentPatch{
		Type:        dto.Type,
		Title:       dto.Title,
		Description: dto.Description,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
	}
	if dto.Urgency != nil {
		u := models.Urgency(*dto.Urgency)
		patch.Urgency = &u
	}
	if dto.Status != nil {
		s := models.Status(*dto.Status)
		patch.Status = &s
	}
	return patch
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:          model.ID,
		UserID:      model.UserID,
		Type:        model.Type,
		Title:       model.Title,
		Description: model.Description,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Urgency:     string(model.Urgency),
		Status:      string(model.Status),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(incidents []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(incidents))
	for i, model := range incidents {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToUserResponse преобразует пользователя в DTO
func ModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Role:      string(user.Role),
		IsBlocked: user.IsBlocked,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UpdateUserRequestToPatch преобразует DTO обновления пользователя в патч
func UpdateUserRequestToPatch(dto UpdateUserRequest) models.UserPatch {
	patch := models.UserPatch{IsBlocked: dto.IsBlocked}
	if dto.Role != nil {
		r := models.Role(*dto.Role)
		patch.Role = &r
	}
	return patch
}

// ModelToClassificationResponse преобразует результат классификации в DTO
func ModelToClassificationResponse(c *models.Classification) ClassificationResponse {
	return ClassificationResponse{
		IncidentType: c.IncidentType,
		Urgency:      string(c.Urgency),
		Reason:       c.Reason,
		Sound:        c.Sound,
	}
}

// ModelToStatsResponse преобразует статистику в DTO
func ModelToStatsResponse(stats *models.IncidentStats) StatsResponse {
	return StatsResponse{
		Total:     stats.Total,
		ByStatus:  stats.ByStatus,
		ByUrgency: stats.ByUrgency,
		ByType:    stats.ByType,
	}
}
