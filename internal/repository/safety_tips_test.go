package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafetyTipsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := NewSafetyTipsCache(client, time.Hour)
	ctx := context.Background()

	tips, err := cache.GetSafetyTips(ctx)
	require.NoError(t, err)
	assert.Nil(t, tips)

	want := []string{"Save emergency numbers", "Know your evacuation route"}
	require.NoError(t, cache.SetSafetyTips(ctx, want))
	assert.Equal(t, time.Hour, mr.TTL(safetyTipsKey))

	tips, err = cache.GetSafetyTips(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, tips)

	mr.FastForward(2 * time.Hour)
	tips, err = cache.GetSafetyTips(ctx)
	require.NoError(t, err)
	assert.Nil(t, tips)
}
