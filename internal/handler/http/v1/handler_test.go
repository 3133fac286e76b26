package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_reporting_system/internal/config"
	"github.com/shenikar/incident_reporting_system/internal/export"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testAPIKey = "test-api-key"

type handlerMocks struct {
	incidents *mocks.MockIncidentService
	users     *mocks.MockUserService
	assistant *mocks.MockAssistantService
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := handlerMocks{
		incidents: mocks.NewMockIncidentService(ctrl),
		users:     mocks.NewMockUserService(ctrl),
		assistant: mocks.NewMockAssistantService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:       []string{testAPIKey},
		MaxAudioBytes: 1 << 10,
	}

	handler := NewHandler(m.incidents, m.users, m.assistant, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	handler.RegisterRoutes(router.Group(""))

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func withAPIKey() map[string]string {
	return map[string]string{"X-API-Key": testAPIKey}
}

func TestRoot(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello, world!"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateIncident_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			assert.Equal(t, "user-1", inc.UserID)
			assert.Equal(t, models.UrgencyHigh, inc.Urgency)
			inc.ID = 1
			inc.Status = models.StatusPending
			inc.CreatedAt, inc.UpdatedAt = now, now
			return nil
		})

	body := `{"userId":"user-1","type":"Fire","title":"Fire at the market","latitude":10.5,"longitude":20.25,"urgency":"high"}`
	w := makeRequest(router, http.MethodPost, "/incidents", strings.NewReader(body))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 10.5, resp.Latitude)
	assert.Contains(t, w.Body.String(), `"createdAt"`)
	assert.Contains(t, w.Body.String(), `"userId":"user-1"`)
}

func TestCreateIncident_SnakeCaseBody(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			assert.Equal(t, "snake-user", inc.UserID)
			return nil
		})

	body := `{"user_id":"snake-user","type":"Pothole","title":"Hole","urgency":"low"}`
	w := makeRequest(router, http.MethodPost, "/incidents", strings.NewReader(body))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateIncident_CamelKeyWinsOverSnake(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			assert.Equal(t, "camel-user", inc.UserID)
			return nil
		}).
		Times(20)

	body := `{"user_id":"snake-user","userId":"camel-user","type":"Fire","title":"Fire","urgency":"low"}`
	for range 20 {
		w := makeRequest(router, http.MethodPost, "/incidents", strings.NewReader(body))
		require.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestCreateIncident_ValidationError(t *testing.T) {
	_, _, router := newTestHandler(t)

	cases := map[string]string{
		"invalid urgency":  `{"type":"Fire","title":"Fire","urgency":"extreme"}`,
		"invalid status":   `{"type":"Fire","title":"Fire","urgency":"low","status":"closed"}`,
		"missing title":    `{"type":"Fire","urgency":"low"}`,
		"invalid latitude": `{"type":"Fire","title":"Fire","urgency":"low","latitude":123}`,
		"malformed json":   `{"type":`,
		"empty body":       ``,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := makeRequest(router, http.MethodPost, "/incidents", strings.NewReader(body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateIncident_BlockedUser(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Return(models.ErrUserBlocked)

	body := `{"userId":"troll","type":"Fire","title":"Fire","urgency":"low"}`
	w := makeRequest(router, http.MethodPost, "/incidents", strings.NewReader(body))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateIncident_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	body := `{"type":"Fire","title":"Fire","urgency":"low"}`
	w := makeRequest(router, http.MethodPost, "/incidents", strings.NewReader(body))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateIncident_NotFoundUsesGenericMessage(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Return(models.ErrNotFound)

	body := `{"type":"Fire","title":"Fire","urgency":"low"}`
	w := makeRequest(router, http.MethodPost, "/incidents", strings.NewReader(body))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"resource not found"}`, w.Body.String())
}

func TestListIncidents_Unpaged(t *testing.T) {
	_, m, router := newTestHandler(t)
	incidents := []*models.Incident{{ID: 2}, {ID: 1}}

	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), models.IncidentFilter{}).
		Return(incidents, nil)

	w := makeRequest(router, http.MethodGet, "/incidents", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(2), resp[0].ID)
}

func TestListIncidents_Filters(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
			assert.Equal(t, models.StatusPending, filter.Status)
			assert.Equal(t, models.UrgencyHigh, filter.Urgency)
			assert.Equal(t, []string{"Fire"}, filter.Types)
			assert.Equal(t, "u1", filter.UserID)
			assert.True(t, filter.Unresolved)
			require.NotNil(t, filter.Near)
			assert.Equal(t, 55.7, filter.Near.Latitude)
			assert.Equal(t, 37.6, filter.Near.Longitude)
			assert.Equal(t, float64(DefaultRadiusMeters), filter.RadiusMeters)
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, models.MaxPageSize, filter.PageSize)
			return []*models.Incident{}, nil
		})

	url := "/incidents?status=pending&urgency=high&type=Fire&user_id=u1&unresolved=true&lat=55.7&lon=37.6&page=2&pageSize=500"
	w := makeRequest(router, http.MethodGet, url, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListIncidents_RepeatedType(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), models.IncidentFilter{Types: []string{"Fire", "Crime"}}).
		Return([]*models.Incident{}, nil)

	w := makeRequest(router, http.MethodGet, "/incidents?type=Fire&type=Crime&type=", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListIncidents_InvalidFilter(t *testing.T) {
	_, _, router := newTestHandler(t)

	for _, query := range []string{"status=closed", "urgency=meh", "lat=10", "lat=100&lon=0", "page=-1", "unresolved=maybe", "lat=1&lon=1&radius=0"} {
		t.Run(query, func(t *testing.T) {
			w := makeRequest(router, http.MethodGet, "/incidents?"+query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetIncident_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().GetIncident(gomock.Any(), int64(7)).Return(&models.Incident{ID: 7, Title: "Flood"}, nil)

	w := makeRequest(router, http.MethodGet, "/incidents/7", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Flood"`)
}

func TestGetIncident_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().GetIncident(gomock.Any(), int64(7)).Return(nil, models.ErrNotFound)

	w := makeRequest(router, http.MethodGet, "/incidents/7", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"incident not found"}`, w.Body.String())
}

func TestGetIncident_InvalidID(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/incidents/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIncident_StatusOnly(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		UpdateIncident(gomock.Any(), int64(3), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id int64, patch models.IncidentPatch) (*models.Incident, error) {
			require.NotNil(t, patch.Status)
			assert.Equal(t, models.StatusResolved, *patch.Status)
			assert.Nil(t, patch.Title)
			return &models.Incident{ID: 3, Status: models.StatusResolved}, nil
		})

	w := makeRequest(router, http.MethodPut, "/incidents/3", strings.NewReader(`{"status":"resolved"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"resolved"`)
}

func TestUpdateIncident_InvalidStatus(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodPut, "/incidents/3", strings.NewReader(`{"status":"done"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIncident_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().UpdateIncident(gomock.Any(), int64(3), gomock.Any()).Return(nil, models.ErrNotFound)

	w := makeRequest(router, http.MethodPut, "/incidents/3", strings.NewReader(`{"status":"in-progress"}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteIncident_RequiresAPIKey(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodDelete, "/incidents/3", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, http.MethodDelete, "/incidents/3", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteIncident_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().DeleteIncident(gomock.Any(), int64(3)).Return(nil)

	w := makeRequest(router, http.MethodDelete, "/incidents/3", nil, map[string]string{"Authorization": "Bearer " + testAPIKey})

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetStats(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().GetStats(gomock.Any()).Return(&models.IncidentStats{
		Total:     2,
		ByStatus:  map[string]int{"pending": 2},
		ByUrgency: map[string]int{"low": 2},
		ByType:    map[string]int{"Fire": 2},
	}, nil)

	w := makeRequest(router, http.MethodGet, "/incidents/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":2,"byStatus":{"pending":2},"byUrgency":{"low":2},"byType":{"Fire":2}}`, w.Body.String())
}

func TestExportIncidents(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), models.IncidentFilter{Unresolved: true}).
		Return([]*models.Incident{{ID: 1, Type: "Fire", Title: "Fire"}}, nil)

	w := makeRequest(router, http.MethodGet, "/incidents/export?unresolved=true", nil, withAPIKey())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	// xlsx это zip-архив
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestExportIncidents_RequiresAPIKey(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/incidents/export", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/system/health", nil, map[string]string{RequestIDHeader: "req-42"})

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}
