package webhook

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisWebhookPublisher_Publish(t *testing.T) {
	mr, client := newTestRedis(t)
	publisher := NewRedisWebhookPublisher(client)

	incident := &models.Incident{ID: 12, Type: models.TypeFlooding, Status: models.StatusPending}
	err := publisher.Publish(context.Background(), WebhookEvent{
		Event:      EventIncidentCreated,
		IncidentID: incident.ID,
		Incident:   incident,
	})
	require.NoError(t, err)

	items, err := mr.List(webhookQueueKey)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var event WebhookEvent
	require.NoError(t, json.Unmarshal([]byte(items[0]), &event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, EventIncidentCreated, event.Event)
	assert.Equal(t, int64(12), event.IncidentID)
	require.NotNil(t, event.Incident)
	assert.Equal(t, models.TypeFlooding, event.Incident.Type)
}

func TestRedisWebhookPublisher_KeepsOrder(t *testing.T) {
	mr, client := newTestRedis(t)
	publisher := NewRedisWebhookPublisher(client)
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, WebhookEvent{ID: "first", Event: EventIncidentCreated, IncidentID: 1}))
	require.NoError(t, publisher.Publish(ctx, WebhookEvent{ID: "second", Event: EventIncidentDeleted, IncidentID: 1}))

	// воркер читает с хвоста: первым должен прийти первый
	items, err := mr.List(webhookQueueKey)
	require.NoError(t, err)
	require.Len(t, items, 2)
	var event WebhookEvent
	require.NoError(t, json.Unmarshal([]byte(items[len(items)-1]), &event))
	assert.Equal(t, "first", event.ID)
	assert.Nil(t, event.Incident)
}

func TestRedisWebhookPublisher_RedisDown(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.Close()

	err := NewRedisWebhookPublisher(client).Publish(context.Background(), WebhookEvent{Event: EventIncidentUpdated})

	assert.ErrorContains(t, err, "failed to publish webhook event")
}
