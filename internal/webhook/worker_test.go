package webhook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/incident_reporting_system/internal/config"
	"github.com/shenikar/incident_reporting_system/pkg/logger"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkerConfig(url string) *config.Config {
	return &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
}

func TestRetryMaxWait(t *testing.T) {
	cases := []struct {
		name     string
		base     time.Duration
		attempts int
		want     time.Duration
	}{
		{"doubles per attempt", time.Second, 3, 8 * time.Second},
		{"no attempts", 100 * time.Millisecond, 0, 100 * time.Millisecond},
		{"capped", time.Second, 10, maxRetryWait},
		{"huge attempts do not overflow", time.Second, 64, maxRetryWait},
		{"negative attempts", time.Second, -1, time.Second},
		{"zero base", 0, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, retryMaxWait(tc.base, tc.attempts))
		})
	}
}

func TestNewWebhookWorker_BoundsRetryWait(t *testing.T) {
	_, client := newTestRedis(t)
	cfg := testWorkerConfig("http://example.invalid")
	cfg.WebhookBaseDelay = time.Second
	cfg.WebhookMaxRetries = 64

	worker := NewWebhookWorker(client, logger.Discard(), cfg)

	assert.Equal(t, maxRetryWait, worker.httpClient.RetryMaxWaitTime)
	assert.Equal(t, 63, worker.httpClient.RetryCount)
}

func TestGenerateHMACSHA256(t *testing.T) {
	// echo -n payload | openssl dgst -sha256 -hmac key
	assert.Equal(t, "5d98b45c90a207fa998ce639fea6f02ecc8cc3f36fef81d694fb856b4d0a28ca", generateHMACSHA256("payload", "key"))
	assert.Len(t, generateHMACSHA256("payload", "key"), 64)
	assert.NotEqual(t, generateHMACSHA256("payload", "key"), generateHMACSHA256("payload", "other"))
}

func TestProcessWebhookEvent_SignsPayload(t *testing.T) {
	payload := `{"id":"e1","event":"incident.created","incidentId":1}`
	var gotBody, gotSignature, gotEvent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotSignature = r.Header.Get("X-Webhook-Signature")
		gotEvent = r.Header.Get("X-Webhook-Event")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, client := newTestRedis(t)
	worker := NewWebhookWorker(client, logger.Discard(), testWorkerConfig(server.URL))

	ok := worker.processWebhookEvent(context.Background(), WebhookEvent{ID: "e1", Event: EventIncidentCreated, IncidentID: 1}, payload)

	require.True(t, ok)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, generateHMACSHA256(payload, "s3cret"), gotSignature)
	assert.Equal(t, string(EventIncidentCreated), gotEvent)
}

func TestProcessWebhookEvent_RetriesUntilSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	_, client := newTestRedis(t)
	worker := NewWebhookWorker(client, logger.Discard(), testWorkerConfig(server.URL))

	ok := worker.processWebhookEvent(context.Background(), WebhookEvent{ID: "e2", Event: EventIncidentUpdated}, `{}`)

	assert.True(t, ok)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestProcessWebhookEvent_GivesUp(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, client := newTestRedis(t)
	worker := NewWebhookWorker(client, logger.Discard(), testWorkerConfig(server.URL))

	ok := worker.processWebhookEvent(context.Background(), WebhookEvent{ID: "e3"}, `{}`)

	assert.False(t, ok)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestProcessWebhookEvent_NoURL(t *testing.T) {
	_, client := newTestRedis(t)
	worker := NewWebhookWorker(client, logger.Discard(), testWorkerConfig(""))

	assert.False(t, worker.processWebhookEvent(context.Background(), WebhookEvent{ID: "e4"}, `{}`))
}

func TestWebhookWorker_RunDeliversQueuedEvent(t *testing.T) {
	delivered := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delivered <- r.Header.Get("X-Webhook-Event")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, client := newTestRedis(t)
	publisher := NewRedisWebhookPublisher(client)
	worker := NewWebhookWorker(client, logger.Discard(), testWorkerConfig(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	require.NoError(t, publisher.Publish(context.Background(), WebhookEvent{Event: EventIncidentDeleted, IncidentID: 5}))

	select {
	case event := <-delivered:
		assert.Equal(t, string(EventIncidentDeleted), event)
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was not delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWebhookWorker_RunCountsDeliveries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("X-Webhook-Event") == string(EventIncidentUpdated) {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, client := newTestRedis(t)
	publisher := NewRedisWebhookPublisher(client)
	log, hook := test.NewNullLogger()
	worker := NewWebhookWorker(client, log, testWorkerConfig(server.URL))

	require.NoError(t, publisher.Publish(context.Background(), WebhookEvent{Event: EventIncidentCreated, IncidentID: 1}))
	require.NoError(t, publisher.Publish(context.Background(), WebhookEvent{Event: EventIncidentUpdated, IncidentID: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// одна успешная доставка и три попытки неудачной
	assert.Eventually(t, func() bool { return calls.Load() == 4 }, 5*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		for _, entry := range hook.AllEntries() {
			if entry.Message == "Webhook delivery failed with status code 500 after 3 attempts" {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "Stopping webhook worker.", last.Message)
	assert.Equal(t, 1, last.Data["delivered"])
	assert.Equal(t, 1, last.Data["failed"])
}
