package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	client, err := NewClient(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRevocationStore(t *testing.T) {
	client := testClient(t)
	store := NewRevocationStore(client)
	ctx := context.Background()

	jti := uuid.NewString()

	revoked, err := store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, jti, time.Minute))

	revoked, err = store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, revokedKeyPrefix+jti).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRevocationStoreIgnoresExpiredTokens(t *testing.T) {
	client := testClient(t)
	store := NewRevocationStore(client)
	ctx := context.Background()

	jti := uuid.NewString()
	require.NoError(t, store.Revoke(ctx, jti, 0))

	revoked, err := store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestAuditLogAppend(t *testing.T) {
	client := testClient(t)
	audit := NewAuditLog(client)
	audit.stream = "caredesk:audit:test:" + uuid.NewString()
	ctx := context.Background()
	t.Cleanup(func() { client.Del(ctx, audit.stream) })

	id, err := audit.Append(ctx, "assignment_created", 7, map[string]int64{"patient_id": 1})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	msgs, err := client.XRevRangeN(ctx, audit.stream, "+", "-", 1).Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "assignment_created", msgs[0].Values["event"])
	assert.Equal(t, "7", msgs[0].Values["user_id"])
	assert.JSONEq(t, `{"patient_id":1}`, msgs[0].Values["data"].(string))
}

func TestAuditLogTrim(t *testing.T) {
	client := testClient(t)
	audit := NewAuditLog(client)
	audit.stream = "caredesk:audit:test:" + uuid.NewString()
	ctx := context.Background()
	t.Cleanup(func() { client.Del(ctx, audit.stream) })

	_, err := audit.Append(ctx, "patient_deleted", 1, nil)
	require.NoError(t, err)

	removed, err := audit.Trim(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = audit.Trim(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	n, err := client.XLen(ctx, audit.stream).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}
