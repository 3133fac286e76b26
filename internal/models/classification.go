package models

// Classification результат классификации сообщения или звука
type Classification struct {
	IncidentType string  `json:"incident_type"`
	Urgency      Urgency `json:"urgency"`
	Reason       string  `json:"reason"`
	// Sound метка распознанного звука, только для аудио
	Sound string `json:"sound,omitempty"`
}

// TextReport текстовое (или расшифрованное голосовое) сообщение об инциденте
type TextReport struct {
	Text      string
	UserID    string
	Latitude  float64
	Longitude float64
	// Report включает создание инцидента по результату классификации
	Report bool
}
