package models

// MaxPageSize верхняя граница размера страницы
const MaxPageSize = 100

// IncidentFilter условия выборки инцидентов. Пустые поля не участвуют в фильтре.
type IncidentFilter struct {
	Status     Status
	Types      []string // любой из перечисленных типов
	Urgency    Urgency
	UserID     string
	Unresolved bool

	// Поиск в радиусе RadiusMeters вокруг точки; Near == nil отключает фильтр
	Near         *Point
	RadiusMeters float64

	// PageSize == 0 возвращает все записи
	Page     int
	PageSize int
}

// Point географическая точка
type Point struct {
	Latitude  float64
	Longitude float64
}

// Normalize приводит пагинацию к допустимым значениям
func (f *IncidentFilter) Normalize() {
	if f.PageSize <= 0 {
		f.PageSize = 0
		f.Page = 0
		return
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.Page < 1 {
		f.Page = 1
	}
}

// Offset смещение для текущей страницы
func (f IncidentFilter) Offset() int {
	if f.PageSize == 0 || f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
