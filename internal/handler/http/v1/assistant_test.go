package v1

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// минимальный заголовок RIFF/WAVE
var wavSample = append([]byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00"), make([]byte, 32)...)

func makeAudioRequest(t *testing.T, router *gin.Engine, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if field != "" {
		part, err := writer.CreateFormFile(field, "recording.wav")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/classify-audio", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClassifyReport_ClassificationOnly(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.assistant.EXPECT().
		ClassifyReport(gomock.Any(), models.TextReport{Text: "someone broke into the shop", UserID: "u1"}).
		Return(&models.Classification{IncidentType: "Crime", Urgency: models.UrgencyHigh, Reason: "burglary"}, nil, nil)

	body := `{"text":"someone broke into the shop","user_id":"u1"}`
	w := makeRequest(router, http.MethodPost, "/incidents/classify", strings.NewReader(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"classification":{"incidentType":"Crime","urgency":"high","reason":"burglary"}}`, w.Body.String())
}

func TestClassifyReport_CreatesIncident(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.assistant.EXPECT().
		ClassifyReport(gomock.Any(), gomock.Any()).
		Return(
			&models.Classification{IncidentType: "Fire", Urgency: models.UrgencyCritical, Reason: "smoke"},
			&models.Incident{ID: 9, Type: "Fire", Title: "Detected Fire", Status: models.StatusPending},
			nil,
		)

	body := `{"text":"smoke everywhere","latitude":1,"longitude":2,"report":true}`
	w := makeRequest(router, http.MethodPost, "/incidents/classify", strings.NewReader(body))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Detected Fire"`)
}

func TestClassifyReport_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unavailable", models.ErrClassifierUnavailable, http.StatusServiceUnavailable},
		{"bad model output", models.ErrInvalidClassification, http.StatusBadGateway},
		{"blocked", models.ErrUserBlocked, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, m, router := newTestHandler(t)
			m.assistant.EXPECT().ClassifyReport(gomock.Any(), gomock.Any()).Return(nil, nil, tc.err)

			w := makeRequest(router, http.MethodPost, "/incidents/classify", strings.NewReader(`{"text":"help me"}`))

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestClassifyReport_ValidationError(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodPost, "/incidents/classify", strings.NewReader(`{"text":""}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassifyAudio_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.assistant.EXPECT().
		ClassifyAudio(gomock.Any(), wavSample, "audio/wav").
		Return(&models.Classification{IncidentType: "Crime", Urgency: models.UrgencyCritical, Reason: "shot", Sound: "gunshot"}, nil)

	w := makeAudioRequest(t, router, AudioFormField, wavSample)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"classification":"gunshot"`)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
}

func TestClassifyAudio_MissingFile(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeAudioRequest(t, router, "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No audio file provided"}`, w.Body.String())
}

func TestClassifyAudio_TooLarge(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeAudioRequest(t, router, AudioFormField, append(wavSample, make([]byte, 2<<10)...))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestClassifyAudio_NotAudio(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeAudioRequest(t, router, AudioFormField, []byte("%PDF-1.4 definitely not audio"))

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestGetSafetyTips(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.assistant.EXPECT().GetSafetyTips(gomock.Any(), true).Return([]string{"Stay calm"}, nil)

	w := makeRequest(router, http.MethodGet, "/safety-tips?refresh=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tips":["Stay calm"]}`, w.Body.String())
}

func TestGetSafetyTips_Unavailable(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.assistant.EXPECT().GetSafetyTips(gomock.Any(), false).Return(nil, models.ErrClassifierUnavailable)

	w := makeRequest(router, http.MethodGet, "/safety-tips", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAudioMIMEType(t *testing.T) {
	mime, ok := audioMIMEType(wavSample, "application/octet-stream")
	assert.True(t, ok)
	assert.Equal(t, "audio/wav", mime)

	mime, ok = audioMIMEType([]byte{0x00, 0x01, 0x02}, "audio/mpeg")
	assert.True(t, ok)
	assert.Equal(t, "audio/mpeg", mime)

	_, ok = audioMIMEType([]byte("plain text"), "text/plain")
	assert.False(t, ok)
}
